package sanitize

import "testing"

func TestGrammarMatchLength(t *testing.T) {
	g, err := NewGrammar(DefaultOptions())
	if err != nil {
		t.Fatalf("NewGrammar: %v", err)
	}

	cases := []struct {
		in string
		n  int
		ok bool
	}{
		{"m", 1, true},
		{";;m", 3, true},
		{"31m", 3, true},
		{"31mrest", 3, true},
		{"1;31mtail", 5, true},
		{"38;5;1m", 7, true},
		{"38;2;255;0;0m", 13, true},
		{"", 0, false},
		{"31", 0, false},
		{"2J", 0, false},
		{"38;5;m", 0, false},
		{"x31m", 0, false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			n, ok := g.Match(c.in)
			if ok != c.ok || n != c.n {
				t.Fatalf("Match(%q) = (%d, %v), want (%d, %v)", c.in, n, ok, c.n, c.ok)
			}
		})
	}
}

func TestGrammarExtraColorsGating(t *testing.T) {
	g, err := NewGrammar(Options{Colors: true, ExtraColors: false})
	if err != nil {
		t.Fatalf("NewGrammar: %v", err)
	}
	if _, ok := g.Match("31m"); !ok {
		t.Fatalf("4-bit body rejected without extra colors")
	}
	if _, ok := g.Match("38;5;1m"); ok {
		t.Fatalf("8-bit body accepted with extra colors disabled")
	}
	if _, ok := g.Match("38;2;0;0;0m"); ok {
		t.Fatalf("24-bit body accepted with extra colors disabled")
	}
}

func TestGrammarExclusionPositions(t *testing.T) {
	cases := []struct {
		name    string
		exclude []string
		body    string
		ok      bool
	}{
		{"no exclusions", nil, "31m", true},
		{"direct hit", []string{"31"}, "31m", false},
		{"hit in later parameter", []string{"31"}, "1;2;31m", false},
		{"miss", []string{"32"}, "31m", true},
		{"prefix hit", []string{"3"}, "31m", false},
		{"token spans fields", []string{"38;5;1"}, "31;38;5;1m", false},
		{"selector interior ignored", []string{"5"}, "38;5;1m", true},
		{"rgb interior ignored", []string{"2"}, "38;2;2;2;2m", true},
		{"reset only never excluded", []string{"31"}, ";;m", true},
		{"empty token blocks parameters", []string{""}, "31m", false},
		{"empty token allows bare reset", []string{""}, "m", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := NewGrammar(Options{Colors: true, ExtraColors: true, ExcludeColors: c.exclude})
			if err != nil {
				t.Fatalf("NewGrammar: %v", err)
			}
			if _, ok := g.Match(c.body); ok != c.ok {
				t.Fatalf("Match(%q) with exclude %v: ok=%v, want %v", c.body, c.exclude, ok, c.ok)
			}
		})
	}
}

func TestGrammarExcludedTokensAreLiteral(t *testing.T) {
	// Tokens must not be interpreted as pattern syntax: a regex
	// metacharacter in a token cannot widen or break the grammar.
	g, err := NewGrammar(Options{Colors: true, ExtraColors: true, ExcludeColors: []string{"3[0-7]", "(31)"}})
	if err != nil {
		t.Fatalf("NewGrammar with metacharacter tokens: %v", err)
	}
	if _, ok := g.Match("31m"); !ok {
		t.Fatalf("literal token %q unexpectedly matched body 31m", "3[0-7]")
	}
}
