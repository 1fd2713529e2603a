//go:build !windows

package shell

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

func signalProcessGroup(pgid int, sig syscall.Signal) error {
	if pgid <= 0 {
		return nil
	}
	return syscall.Kill(-pgid, sig)
}

// terminateProcessTree asks the child's process group to exit with SIGTERM,
// waits out the grace period, then SIGKILLs whatever is left and reaps the
// child.
func terminateProcessTree(cmd *exec.Cmd, pgid int, grace time.Duration) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	if pgid <= 0 {
		pgid = cmd.Process.Pid
	}

	var errs []error
	if err := signalProcessGroup(pgid, syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) && !errors.Is(err, syscall.ESRCH) {
		errs = append(errs, fmt.Errorf("signal group: %w", err))
	}

	exited, waitErr := waitForProcessExit(cmd, grace)
	if waitErr != nil && !errors.Is(waitErr, os.ErrProcessDone) && !isExpectedProcessExit(waitErr) {
		errs = append(errs, fmt.Errorf("wait process: %w", waitErr))
	}

	if !exited {
		if err := signalProcessGroup(pgid, syscall.SIGKILL); err != nil && !errors.Is(err, os.ErrProcessDone) && !errors.Is(err, syscall.ESRCH) {
			errs = append(errs, fmt.Errorf("kill group: %w", err))
		}
		if err := waitForProcess(cmd); err != nil && !errors.Is(err, os.ErrProcessDone) && !isExpectedProcessExit(err) {
			errs = append(errs, fmt.Errorf("wait process: %w", err))
		}
	}

	return errors.Join(errs...)
}

func waitForProcessExit(cmd *exec.Cmd, timeout time.Duration) (bool, error) {
	if cmd == nil || cmd.ProcessState != nil {
		return true, nil
	}
	if timeout <= 0 {
		return true, waitForProcess(cmd)
	}

	done := make(chan error, 1)
	go func() {
		done <- waitForProcess(cmd)
	}()

	select {
	case err := <-done:
		return true, err
	case <-time.After(timeout):
		return false, nil
	}
}

func waitForProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.ProcessState != nil {
		return nil
	}
	return cmd.Wait()
}

// isExpectedProcessExit reports whether err is the ExitError of a child that
// died from a signal, which is the expected outcome of terminating it.
func isExpectedProcessExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		return false
	}
	return status.Signaled()
}
