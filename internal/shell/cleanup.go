//go:build !windows

package shell

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"
)

// cleanup tears down one command's transient state. It runs on every exit
// path, is safe to call more than once, and every step is independently
// fault-tolerant: a failing step is logged and never stops the ones after
// it.
func (e *Executor) cleanup(st *commandState) {
	st.stop.Store(true)

	if st.altScreen.Load() && st.stdoutTTY {
		if _, err := io.WriteString(st.termOut, alternateScreenExit); err != nil {
			e.logger.Warn("terminal reset write failed", map[string]string{"error": err.Error()})
		}
		// Let the terminal process the reset before anything else is written.
		time.Sleep(terminalResetWait)
	}

	if st.stdoutTTY && !e.capture.Empty() && !strings.HasSuffix(e.capture.Last(), "\n") {
		_, _ = io.WriteString(st.termOut, "\n")
	}

	if err := st.restoreTerminal(); err != nil {
		e.logger.Warn("terminal restore failed", map[string]string{"error": err.Error()})
	}

	if st.ptmx != nil {
		if err := st.ptmx.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			e.logger.Warn("close pty master failed", map[string]string{"error": err.Error()})
		}
		st.ptmx = nil
	}
	if st.tts != nil {
		// Normally already closed right after spawn.
		if err := st.tts.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			e.logger.Warn("close pty slave failed", map[string]string{"error": err.Error()})
		}
		st.tts = nil
	}

	if st.cmd != nil && st.cmd.Process != nil && st.cmd.ProcessState == nil {
		if err := terminateProcessTree(st.cmd, st.pgid, terminateGrace); err != nil {
			e.logger.Warn("terminate process tree failed", map[string]string{"error": err.Error()})
		}
	}

	e.clearActiveProcess()
}
