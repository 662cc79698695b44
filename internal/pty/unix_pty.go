//go:build !windows
// +build !windows

package pty

import (
	"os"
	"os/exec"

	creackpty "github.com/creack/pty"
	"golang.org/x/term"
)

// unixPTY wraps the master *os.File returned by creack/pty.
type unixPTY struct {
	f   *os.File
	cmd *exec.Cmd
}

func Start(cmd *exec.Cmd) (PTY, error) {
	f, err := creackpty.Start(cmd)
	if err != nil {
		return nil, err
	}
	return &unixPTY{f: f, cmd: cmd}, nil
}

func (p *unixPTY) Read(b []byte) (int, error)  { return p.f.Read(b) }
func (p *unixPTY) Write(b []byte) (int, error) { return p.f.Write(b) }

func (p *unixPTY) Close() error {
	err := p.f.Close()
	if p.cmd != nil && p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	return err
}

func (p *unixPTY) Wait() error {
	if p.cmd != nil && p.cmd.Process != nil {
		return p.cmd.Wait()
	}
	return nil
}

func (p *unixPTY) SetSize(rows, cols int) error {
	return creackpty.Setsize(p.f, &creackpty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

func (p *unixPTY) File() *os.File { return p.f }

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
