// Package sanitize neutralizes terminal escape sequence injection in
// untrusted text. Printable ASCII, tab and newline pass through, a
// constrained grammar of SGR color sequences is copied verbatim, and every
// other code point is replaced with a redaction mark. OSC, DCS and the
// other control-sequence families are never allowed.
package sanitize

import (
	"strings"
	"unicode/utf8"
)

const (
	esc = 0x1b
	// Mark is the replacement character emitted for every redacted code
	// point.
	Mark = '_'
)

// Sanitizer applies the scan rules for a fixed set of options. The matcher
// is compiled once at construction; a Sanitizer is immutable afterwards
// and safe to share across goroutines.
type Sanitizer struct {
	opts    Options
	grammar *Grammar
}

// New builds a Sanitizer for the given options. The only failure mode is
// grammar compilation, which indicates a programmer error, never bad
// input data.
func New(opts Options) (*Sanitizer, error) {
	s := &Sanitizer{opts: opts}
	if opts.Colors {
		g, err := NewGrammar(opts)
		if err != nil {
			return nil, err
		}
		s.grammar = g
	}
	return s, nil
}

// Options returns the options the Sanitizer was built with.
func (s *Sanitizer) Options() Options { return s.opts }

// Sanitize transforms untrusted text into text that is safe to write to a
// terminal. It never fails: malformed input, truncated escape sequences
// and invalid UTF-8 all degrade to redaction marks.
//
// Rules, applied per code point, left to right:
//   - printable ASCII (0x20-0x7E), tab and newline are copied;
//   - ESC followed by "[" and a valid SGR body is copied verbatim through
//     the terminating "m";
//   - anything else becomes one Mark. A failed escape candidate redacts
//     only the ESC itself; the following characters are re-evaluated
//     individually, so "ESC ] 8 ; ;" comes out as "_]8;;".
func (s *Sanitizer) Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == '\t' || r == '\n' || (r >= 0x20 && r <= 0x7e) {
			b.WriteByte(text[i])
			i++
			continue
		}
		if r == esc && s.grammar != nil && i+1 < len(text) && text[i+1] == '[' {
			if n, ok := s.grammar.Match(text[i+2:]); ok {
				b.WriteString(text[i : i+2+n])
				i += 2 + n
				continue
			}
		}
		b.WriteByte(Mark)
		i += size
	}
	return b.String()
}

var defaultSanitizer = func() *Sanitizer {
	s, err := New(DefaultOptions())
	if err != nil {
		panic(err)
	}
	return s
}()

// Sanitize is a convenience wrapper using DefaultOptions.
func Sanitize(text string) string {
	return defaultSanitizer.Sanitize(text)
}
