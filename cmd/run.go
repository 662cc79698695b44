package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"stprint/internal/logging"
	"stprint/internal/pty"
	"stprint/internal/sanitize"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// newRunCmd creates the run subcommand: spawn a command under a PTY and
// sanitize its live output.
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run -- command [args...]",
		Short: "Run a command in a PTY and sanitize its output",
		Long: `Run spawns the given command attached to a pseudo-terminal and
streams its output through the sanitizer to stdout. This covers the
"untrusted-cmd 2>&1 | stprint" use case without losing the command's
terminal-oriented behavior, and exits with the child's exit code.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			s, err := buildSanitizer(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "❌ %v\n", err)
				os.Exit(1)
			}
			os.Exit(runSanitized(s, args))
		},
	}
	return cmd
}

func runSanitized(s *sanitize.Sanitizer, args []string) int {
	child := exec.Command(args[0], args[1:]...)
	p, err := pty.Start(child)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to start %s: %v\n", args[0], err)
		return 1
	}
	defer p.Close()

	// Match the child's PTY to the real terminal when stdout is one.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if cols, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			_ = p.SetSize(rows, cols)
		}
	}

	// Forward stdin so interactive children keep working. Raw mode only
	// when stdin is a terminal; errors here are not fatal.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		if old, err := pty.MakeRawStdin(); err == nil {
			defer pty.RestoreStdin(old)
		}
	}
	go func() {
		_, _ = io.Copy(p, os.Stdin)
	}()

	w := sanitize.NewWriter(os.Stdout, s)
	if _, err := io.Copy(w, p); err != nil && !isPTYEOF(err) {
		logging.Warn("pty read ended", map[string]interface{}{"error": err.Error()})
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to write output: %v\n", err)
		return 1
	}

	if err := p.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return 1
	}
	return 0
}

// isPTYEOF folds the EIO a Linux PTY master returns after the child
// closes its side into a normal end of stream.
func isPTYEOF(err error) bool {
	if errors.Is(err, io.EOF) {
		return true
	}
	var pathErr *os.PathError
	return errors.As(err, &pathErr)
}
