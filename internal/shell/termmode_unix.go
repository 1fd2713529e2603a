//go:build !windows

package shell

import (
	"os"

	"github.com/creack/pty"
	"golang.org/x/term"
)

var (
	stdinFd  = int(os.Stdin.Fd())
	stdoutFd = int(os.Stdout.Fd())
)

func stdinIsTerminal() bool {
	return term.IsTerminal(stdinFd)
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(stdoutFd)
}

// saveTerminalState snapshots the host terminal attributes, or returns nil
// when stdin is not a terminal or the query fails.
func saveTerminalState() *term.State {
	if !stdinIsTerminal() {
		return nil
	}
	state, err := term.GetState(stdinFd)
	if err != nil {
		return nil
	}
	return state
}

// resizeToHost sets the PTY window size to match the host terminal.
// Best-effort: skipped silently when not attached to a real terminal.
func resizeToHost(ptmx *os.File) {
	if !stdoutIsTerminal() {
		return
	}
	cols, rows, err := term.GetSize(stdoutFd)
	if err != nil {
		return
	}
	_ = pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}
