package pty

import (
	"os"
)

// PTY is a small, cross-platform abstraction over a pseudo-terminal
// running a child command. The "run" command reads untrusted child output
// from it and feeds the sanitizer.
type PTY interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	// Wait blocks until the child exits and returns its exit error, if
	// any.
	Wait() error
	SetSize(rows, cols int) error
	// File returns the master side, or nil when the platform PTY is not
	// file-backed.
	File() *os.File
}
