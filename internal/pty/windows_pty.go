//go:build windows
// +build windows

package pty

import (
	"fmt"
	"os"
	"os/exec"

	widepty "github.com/aymanbagabas/go-pty"
	"golang.org/x/term"
)

// winConPTY wraps a ConPTY to satisfy the PTY interface.
type winConPTY struct {
	c     widepty.Pty
	child *widepty.Cmd
}

func Start(cmd *exec.Cmd) (PTY, error) {
	p, err := widepty.New()
	if err != nil {
		return nil, fmt.Errorf("pty: failed to create PTY: %w", err)
	}

	var name string
	var args []string
	if len(cmd.Args) > 0 {
		name = cmd.Args[0]
		if len(cmd.Args) > 1 {
			args = cmd.Args[1:]
		}
	} else {
		name = cmd.Path
	}

	c := p.Command(name, args...)
	c.Env = cmd.Env
	c.Dir = cmd.Dir

	if err := c.Start(); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("pty: failed to start command in PTY: %w", err)
	}
	return &winConPTY{c: p, child: c}, nil
}

func (w *winConPTY) Read(b []byte) (int, error)  { return w.c.Read(b) }
func (w *winConPTY) Write(b []byte) (int, error) { return w.c.Write(b) }
func (w *winConPTY) Close() error                { return w.c.Close() }

func (w *winConPTY) Wait() error {
	if w.child == nil {
		return fmt.Errorf("no child process")
	}
	return w.child.Wait()
}

func (w *winConPTY) SetSize(rows, cols int) error {
	return w.c.Resize(cols, rows)
}

// File returns nil; ConPTY is not backed by a single file handle.
func (w *winConPTY) File() *os.File { return nil }

// MakeRawStdin sets the process stdin into raw mode and returns the
// previous terminal state for RestoreStdin.
func MakeRawStdin() (*term.State, error) {
	return term.MakeRaw(int(os.Stdin.Fd()))
}

// RestoreStdin restores stdin to the state returned by MakeRawStdin. It
// is safe to call with a nil state.
func RestoreStdin(old *term.State) error {
	if old == nil {
		return nil
	}
	return term.Restore(int(os.Stdin.Fd()), old)
}
