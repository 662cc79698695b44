package sanitize

// Options controls which escape sequences the sanitizer lets through.
type Options struct {
	// Colors allows SGR sequences (ESC [ ... m) at all. When false every
	// ESC is redacted, including well-formed color sequences.
	Colors bool
	// ExtraColors additionally allows the 8-bit (38;5;N) and 24-bit
	// (38;2;R;G;B) color forms. Only meaningful when Colors is true.
	ExtraColors bool
	// ExcludeColors lists literal SGR parameter tokens (e.g. "30",
	// "38;5;0") that must be redacted even though the grammar accepts
	// them. A sequence containing any excluded parameter is rejected as
	// a whole.
	ExcludeColors []string
}

// DefaultOptions allows 4-bit, 8-bit and 24-bit colors with no exclusions.
func DefaultOptions() Options {
	return Options{Colors: true, ExtraColors: true}
}
