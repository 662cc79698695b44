package sanitize

import (
	"fmt"
	"regexp"
	"strings"
)

// SGR body sub-patterns, following console_codes(4). The 4-bit set is the
// enumerated attribute/color codes; the value pattern for 8-bit components
// covers 0-255.
const (
	sgr4bitCode = `([0-9]|2[1-5]|2[7-9]|3[0-7]|39|4[0-7]|49|9[0-7]|10[0-7])`
	sgrValue255 = `([0-1]?[0-9]?[0-9]|2[0-4][0-9]|25[0-5])`
)

// Grammar is a compiled matcher for the body of an SGR sequence: the text
// between "ESC [" and the terminating "m", inclusive of the "m". It is
// immutable and safe for concurrent use.
//
// Go's regexp engine (RE2) runs in linear time with no backtracking, so
// matching cost per candidate is bounded. RE2 has no negative lookahead,
// so exclusions are enforced after the match: a literal-prefix check over
// the parameter starts of the matched body, where a single hit rejects
// the whole body.
type Grammar struct {
	re      *regexp.Regexp
	exclude []string
}

// NewGrammar compiles the SGR body matcher for the given options.
// Options.Colors is not consulted here; callers gate on it before
// attempting any match.
func NewGrammar(opts Options) (*Grammar, error) {
	// 4-bit run: any number of leading/interior empty parameters are
	// allowed (";;1;;2" style), per the console convention that an empty
	// parameter means reset.
	run4 := `;*` + sgr4bitCode + `(;` + sgr4bitCode + `)*`

	// Bare "m" and semicolon-only bodies are valid (implicit reset).
	body := `(;*|` + run4 + `)?m`

	if opts.ExtraColors {
		sgr8 := `[3-4]8;5;` + sgrValue255
		sgr24 := `[3-4]8;2;` + sgrValue255 + `;` + sgrValue255 + `;` + sgrValue255
		extra := `(` + sgr8 + `|` + sgr24 + `)`
		body += `|(` + run4 + `;+)*;*` + extra + `;*(;+` + run4 + `)*m`
	}

	re, err := regexp.Compile(`\A(?:` + body + `)`)
	if err != nil {
		return nil, fmt.Errorf("sanitize: compiling SGR grammar: %w", err)
	}

	return &Grammar{
		re:      re,
		exclude: append([]string(nil), opts.ExcludeColors...),
	}, nil
}

// Match reports whether s begins with a valid SGR body and returns the
// matched length (up to and including the terminating "m"). A body whose
// parameters trip the exclusion list fails as a whole; the caller then
// redacts the entire candidate sequence.
func (g *Grammar) Match(s string) (int, bool) {
	loc := g.re.FindStringIndex(s)
	if loc == nil {
		return 0, false
	}
	if g.excluded(s[:loc[1]]) {
		return 0, false
	}
	return loc[1], true
}

// excluded checks the literal text at each parameter start of a matched
// body against the exclusion list. Parameter starts are where each 4-bit
// parameter begins and where the 38/48 selector of an 8/24-bit color spec
// begins. The interior fields of a color spec ("5;N" or "2;R;G;B") are
// not parameter starts.
func (g *Grammar) excluded(body string) bool {
	if len(g.exclude) == 0 {
		return false
	}
	params := strings.TrimSuffix(body, "m")
	skip := 0
	selector := false
	for i := 0; i < len(params); {
		end := strings.IndexByte(params[i:], ';')
		if end < 0 {
			end = len(params)
		} else {
			end += i
		}
		field := params[i:end]
		switch {
		case field == "":
			// empty parameter, implicit reset
		case selector:
			selector = false
			if field == "5" {
				skip = 1
			} else {
				skip = 3
			}
		case skip > 0:
			skip--
		default:
			for _, token := range g.exclude {
				if strings.HasPrefix(params[i:], token) {
					return true
				}
			}
			if field == "38" || field == "48" {
				selector = true
			}
		}
		i = end + 1
	}
	return false
}
