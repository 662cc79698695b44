package sanitize

import (
	"io"
	"unicode/utf8"
)

// maxCarry bounds how many bytes a Writer holds back waiting for the rest
// of a split escape sequence. An SGR candidate that grows past this without
// terminating is pushed through the scanner and redacted.
const maxCarry = 64

// Writer sanitizes a byte stream chunk by chunk. Escape sequences and
// multi-byte runes can be split across Write calls (PTY reads land on
// arbitrary boundaries), so a trailing incomplete candidate is carried
// over to the next call instead of being misjudged. Call Flush when the
// stream ends to drain the carry.
//
// Writer keeps per-stream state and is not safe for concurrent use.
type Writer struct {
	w     io.Writer
	s     *Sanitizer
	carry []byte
}

// NewWriter wraps w so that everything written through it is sanitized
// with s before reaching w.
func NewWriter(w io.Writer, s *Sanitizer) *Writer {
	return &Writer{w: w, s: s}
}

func (sw *Writer) Write(p []byte) (int, error) {
	data := p
	if len(sw.carry) > 0 {
		data = append(sw.carry, p...)
		sw.carry = nil
	}

	keep := holdback(data)
	if keep > 0 {
		sw.carry = append(sw.carry, data[len(data)-keep:]...)
		data = data[:len(data)-keep]
	}

	if len(data) > 0 {
		if _, err := io.WriteString(sw.w, sw.s.Sanitize(string(data))); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Flush sanitizes and writes any held-back bytes. A carry that was waiting
// for a sequence terminator is by definition incomplete at end of stream,
// so it comes out redacted.
func (sw *Writer) Flush() error {
	if len(sw.carry) == 0 {
		return nil
	}
	out := sw.s.Sanitize(string(sw.carry))
	sw.carry = nil
	_, err := io.WriteString(sw.w, out)
	return err
}

// holdback returns how many trailing bytes of data form an incomplete
// candidate (a partial SGR sequence or a partial UTF-8 rune) that should
// wait for the next chunk.
func holdback(data []byte) int {
	// Partial SGR: a trailing ESC, or ESC [ followed only by parameter
	// bytes with no terminator yet.
	for i := len(data) - 1; i >= 0 && len(data)-i <= maxCarry; i-- {
		if data[i] != esc {
			continue
		}
		if sgrOpen(data[i:]) {
			return len(data) - i
		}
		break
	}

	// Partial multi-byte rune at the tail.
	for i := len(data) - 1; i >= 0 && len(data)-i < utf8.UTFMax; i-- {
		b := data[i]
		if b < 0x80 {
			break
		}
		if b >= 0xc0 { // start byte of a multi-byte rune
			if r, _ := utf8.DecodeRune(data[i:]); r == utf8.RuneError && !utf8.FullRune(data[i:]) {
				return len(data) - i
			}
			break
		}
	}
	return 0
}

// sgrOpen reports whether b is a prefix of a possibly-valid SGR sequence
// that has not terminated yet: the decision on it cannot be made until
// more bytes arrive.
func sgrOpen(b []byte) bool {
	if len(b) == 1 {
		return true // lone ESC, "[" may follow
	}
	if b[1] != '[' {
		return false
	}
	for _, c := range b[2:] {
		if (c < '0' || c > '9') && c != ';' {
			// "m" completes the sequence, anything else invalidates
			// it; either way the scanner can decide now.
			return false
		}
	}
	return true
}
