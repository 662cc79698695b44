package sanitize

import (
	"strings"
	"testing"
)

func mustNew(t *testing.T, opts Options) *Sanitizer {
	t.Helper()
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New(%+v): %v", opts, err)
	}
	return s
}

func TestSanitizeControlCharacters(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"\a", "_"},
		{"\b", "_"},
		{"\t", "\t"},
		{"\n", "\n"},
		{"\v", "_"},
		{"\f", "_"},
		{"\r", "_"},
		{"\x00", "_"},
		{"\x7f", "_"},
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			if got := Sanitize(c.in); got != c.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestSanitizeOSCRedacted(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"\x1b]8;;", "_]8;;"},
		{"a\x1b]8;;b", "a_]8;;b"},
		{"a\x1b]8;;", "a_]8;;"},
		{"a\x1b] 8;;", "a_] 8;;"},
		{"a\x1b ]8;;", "a_ ]8;;"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := Sanitize(c.in); got != c.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestSanitizeValidColors(t *testing.T) {
	cases := []string{
		"\x1b[m",
		"\x1b[;;m",
		"\x1b[0m",
		"\x1b[31m",
		"\x1b[;31m",
		"\x1b[1;31m",
		"\x1b[21m",
		"\x1b[25m",
		"\x1b[27m",
		"\x1b[39m",
		"\x1b[49m",
		"\x1b[90m",
		"\x1b[97m",
		"\x1b[100m",
		"\x1b[107m",
		"\x1b[38;5;1m",
		"\x1b[38;5;255m",
		"\x1b[48;5;0m",
		"\x1b[38;2;255;0;0m",
		"\x1b[48;2;1;2;3m",
		"\x1b[1;38;5;1;2m",
		"\x1b[38;5;1;m",
	}
	for _, in := range cases {
		t.Run(in[1:], func(t *testing.T) {
			if got := Sanitize(in); got != in {
				t.Fatalf("Sanitize(%q) = %q, want unchanged", in, got)
			}
		})
	}
}

func TestSanitizeInvalidSGR(t *testing.T) {
	// The ESC is redacted and the remaining characters are re-evaluated
	// individually, so printable bytes of the broken sequence survive.
	cases := []struct {
		in, want string
	}{
		{"\x1b[2J", "_[2J"},
		{"\x1b[26m", "_[26m"},
		{"\x1b[38m", "_[38m"},
		{"\x1b[98m", "_[98m"},
		{"\x1b[108m", "_[108m"},
		{"\x1b[31;m", "_[31;m"},
		{"\x1b[38;5;256m", "_[38;5;256m"},
		{"\x1b[38;2;0;0m", "_[38;2;0;0m"},
		{"\x1b[38;6;1m", "_[38;6;1m"},
		{"\x1b", "_"},
		{"\x1b[", "_["},
		{"\x1b[31", "_[31"},
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			if got := Sanitize(c.in); got != c.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestSanitizeColorsDisabled(t *testing.T) {
	s := mustNew(t, Options{Colors: false})
	in := "\x1b[38;5;0m\x1b[31m\x1b[38;2;0;0;0m"
	want := "_[38;5;0m_[31m_[38;2;0;0;0m"
	if got := s.Sanitize(in); got != want {
		t.Fatalf("Sanitize(%q) = %q, want %q", in, got, want)
	}
}

func TestSanitizeExtraColorsDisabled(t *testing.T) {
	s := mustNew(t, Options{Colors: true, ExtraColors: false})
	cases := []struct {
		in, want string
	}{
		{"\x1b[31m", "\x1b[31m"},
		{"\x1b[38;5;1m", "_[38;5;1m"},
		{"\x1b[38;2;255;0;0m", "_[38;2;255;0;0m"},
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			if got := s.Sanitize(c.in); got != c.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestSanitizeExcludeColors(t *testing.T) {
	cases := []struct {
		name    string
		exclude []string
		in      string
		want    string
	}{
		{"excluded 4bit", []string{"30", "37"}, "\x1b[30m", "_[30m"},
		{"other 4bit passes", []string{"30", "37"}, "\x1b[31m", "\x1b[31m"},
		{"whole sequence rejected", []string{"31"}, "\x1b[1;31m", "_[1;31m"},
		{"prefix semantics", []string{"3"}, "\x1b[31m", "_[31m"},
		{"excluded 8bit", []string{"38;5;1"}, "\x1b[38;5;1m", "_[38;5;1m"},
		{"8bit prefix", []string{"38;5;1"}, "\x1b[38;5;10m", "_[38;5;10m"},
		{"other 8bit passes", []string{"38;5;1"}, "\x1b[38;5;2m", "\x1b[38;5;2m"},
		{"interior value not a parameter", []string{"5"}, "\x1b[38;5;1m", "\x1b[38;5;1m"},
		{"rgb component not a parameter", []string{"0"}, "\x1b[38;2;0;0;0m", "\x1b[38;2;0;0;0m"},
		{"leading empties still excluded", []string{"31"}, "\x1b[;;31m", "_[;;31m"},
		{"reset-only untouched", []string{"31"}, "\x1b[m", "\x1b[m"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := mustNew(t, Options{Colors: true, ExtraColors: true, ExcludeColors: c.exclude})
			if got := s.Sanitize(c.in); got != c.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestSanitizePassthroughIdentity(t *testing.T) {
	in := "plain text with\ttabs,\nnewlines and [brackets] 0-9 ~!@#"
	if got := Sanitize(in); got != in {
		t.Fatalf("passthrough input changed: %q", got)
	}
}

func TestSanitizeNonASCII(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"héllo", "h_llo"},
		{"日本", "__"},
		{"\xff\xfe", "__"}, // invalid UTF-8, one mark per byte
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			if got := Sanitize(c.in); got != c.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestSanitizeMixedContent(t *testing.T) {
	in := "\x1b[2Jvulnerable: True\b\b\b\bFalse"
	want := "_[2Jvulnerable: True____False"
	if got := Sanitize(in); got != want {
		t.Fatalf("Sanitize(%q) = %q, want %q", in, got, want)
	}
}

func TestSanitizeEmpty(t *testing.T) {
	if got := Sanitize(""); got != "" {
		t.Fatalf("Sanitize(\"\") = %q, want empty", got)
	}
}

func TestSanitizeDeterministic(t *testing.T) {
	s := mustNew(t, DefaultOptions())
	in := "a\x1b[31mb\x1b]0;titlec" + strings.Repeat("\x1b[38;5;1m", 3)
	first := s.Sanitize(in)
	for i := 0; i < 5; i++ {
		if got := s.Sanitize(in); got != first {
			t.Fatalf("run %d differs: %q vs %q", i, got, first)
		}
	}
}

func TestSanitizeConcurrentUse(t *testing.T) {
	s := mustNew(t, DefaultOptions())
	in := "x\x1b[31my\x1b[2Jz"
	want := s.Sanitize(in)
	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- s.Sanitize(in) }()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; got != want {
			t.Fatalf("concurrent result %q, want %q", got, want)
		}
	}
}
