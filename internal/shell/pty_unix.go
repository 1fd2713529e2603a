//go:build !windows

package shell

import (
	"fmt"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// spawn allocates the PTY pair and starts the shell bound to the slave end,
// in its own session with the slave as controlling terminal so the whole
// process tree can be signaled as one group. The slave is closed in the
// parent immediately after the child holds it.
func (e *Executor) spawn(st *commandState, command string) error {
	ptmx, tts, err := pty.Open()
	if err != nil {
		return fmt.Errorf("open pty: %w", err)
	}
	st.ptmx = ptmx
	st.tts = tts

	resizeToHost(ptmx)

	userShell := e.shellPath()
	argv := wrapCommand(userShell, command)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = e.CurrentDirectory()
	cmd.Env = e.environSlice()
	cmd.Stdin = tts
	cmd.Stdout = tts
	cmd.Stderr = tts
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    0,
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", userShell, err)
	}
	st.cmd = cmd
	st.pgid = cmd.Process.Pid

	// The child owns the slave end now.
	_ = tts.Close()
	st.tts = nil

	st.saved = saveTerminalState()

	e.setActiveProcess(cmd.Process.Pid, st.pgid)
	return nil
}
