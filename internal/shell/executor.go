// Package shell executes commands under a pseudo-terminal while presenting
// one continuous session: the tracked working directory, environment, and
// history persist across invocations even though every command runs as a
// fresh child shell. Requires a Unix-like OS.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/term"

	"ptysh/internal/config"
	"ptysh/internal/logging"
)

const (
	errorPrefix = "Error executing command: "

	relayJoinTimeout  = time.Second
	terminateGrace    = 100 * time.Millisecond
	terminalResetWait = 5 * time.Millisecond
)

// Executor owns the persistent session state. All reads of the current
// directory go through it; the real process working directory is only
// touched by the deliberate synchronization step and by cd. At most one
// command is in flight at a time.
type Executor struct {
	execMu sync.Mutex // serializes Execute and Reset

	stateMu     sync.Mutex
	currentDir  string
	previousDir string
	env         map[string]string

	history *History
	capture *captureBuffer

	sinkMu sync.Mutex
	sink   OutputSink

	shell  string // config override; empty means $SHELL
	logger *logging.Logger

	procMu             sync.Mutex
	activePid          int
	activePgid         int
	interruptRequested atomic.Bool
}

// commandState holds everything one command execution allocates. It is
// created at spawn and fully torn down by cleanup before Execute returns.
type commandState struct {
	ptmx *os.File
	tts  *os.File
	cmd  *exec.Cmd
	pgid int

	saved       *term.State
	restoreOnce sync.Once

	stdinTTY  bool
	stdoutTTY bool
	termOut   io.Writer

	stop      atomic.Bool
	altScreen atomic.Bool
	relayDone chan struct{}
}

func newCommandState() *commandState {
	return &commandState{
		stdinTTY:  stdinIsTerminal(),
		stdoutTTY: stdoutIsTerminal(),
		termOut:   os.Stdout,
		relayDone: make(chan struct{}),
	}
}

// restoreTerminal puts the host terminal back into its saved mode. Called
// from both the relay loop and cleanup; the restore happens exactly once.
func (st *commandState) restoreTerminal() error {
	if st.saved == nil {
		return nil
	}
	var err error
	st.restoreOnce.Do(func() {
		err = term.Restore(stdinFd, st.saved)
	})
	return err
}

func NewExecutor(cfg config.Config, logger *logging.Logger) (*Executor, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	return &Executor{
		currentDir: cwd,
		env:        environMap(os.Environ()),
		history:    NewHistory(cfg.HistoryLimit),
		capture:    &captureBuffer{},
		shell:      cfg.Shell,
		logger:     logger,
	}, nil
}

// Execute runs one command and returns its cleaned captured output. The cd
// builtin is intercepted; everything else goes to a fresh shell under a PTY.
// Failures never propagate: every error converges to a returned string.
func (e *Executor) Execute(command string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("%s%v", errorPrefix, r)
		}
	}()

	e.execMu.Lock()
	defer e.execMu.Unlock()

	// The capture always reflects the command in flight, builtins included,
	// so LastOutput never leaks a previous command's output.
	e.capture.Reset()
	e.history.Append(command)
	e.syncDirectoryState()

	parts := strings.Fields(command)
	if len(parts) > 0 && parts[0] == "cd" {
		out := e.changeDirectory(parts)
		e.syncDirectoryState()
		return out
	}

	out := e.runCommand(command)
	e.syncDirectoryState()
	return out
}

func (e *Executor) runCommand(command string) string {
	e.interruptRequested.Store(false)

	st := newCommandState()
	defer e.cleanup(st)

	if err := e.spawn(st, command); err != nil {
		return errorPrefix + err.Error()
	}

	go e.relayLoop(st)

	waitErr := st.cmd.Wait()

	// Stop the relay and give it a bounded window to flush trailing output.
	st.stop.Store(true)
	select {
	case <-st.relayDone:
	case <-time.After(relayJoinTimeout):
	}

	e.clearActiveProcess()

	code, signaledInt, err := exitStatus(waitErr)
	if err != nil {
		return errorPrefix + err.Error()
	}
	if e.interruptRequested.Load() && (signaledInt || code == 130) {
		return "Command interrupted"
	}
	return e.finalize(code)
}

// finalize assembles the captured chunks into the returned result. The live
// terminal stream was never altered; only this captured copy is cleaned.
func (e *Executor) finalize(exitCode int) string {
	clean := strings.TrimSpace(stripStyling(e.capture.String()))
	if exitCode == 0 {
		return clean
	}
	marker := fmt.Sprintf("Command exited with code %d", exitCode)
	if clean == "" {
		return marker
	}
	return clean + "\n" + marker
}

// exitStatus maps a Wait error to an exit code. Children killed by SIGINT
// are reported separately; other fatal signals use the 128+signal shell
// convention.
func exitStatus(waitErr error) (code int, signaledInt bool, err error) {
	if waitErr == nil {
		return 0, false, nil
	}
	var exitErr *exec.ExitError
	if !errors.As(waitErr, &exitErr) {
		return 0, false, waitErr
	}
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		return exitErr.ExitCode(), false, nil
	}
	if status.Signaled() {
		if status.Signal() == syscall.SIGINT {
			return 130, true, nil
		}
		return 128 + int(status.Signal()), false, nil
	}
	return status.ExitStatus(), false, nil
}

// Interrupt sends SIGINT to the active command's process group. It reports
// whether a signal was delivered; with no active command it is a no-op.
func (e *Executor) Interrupt() bool {
	e.procMu.Lock()
	defer e.procMu.Unlock()

	if e.activePid == 0 {
		return false
	}
	if err := signalProcessGroup(e.activePgid, syscall.SIGINT); err != nil {
		return false
	}
	e.interruptRequested.Store(true)
	return true
}

func (e *Executor) setActiveProcess(pid, pgid int) {
	e.procMu.Lock()
	defer e.procMu.Unlock()
	e.activePid = pid
	e.activePgid = pgid
}

func (e *Executor) clearActiveProcess() {
	e.procMu.Lock()
	defer e.procMu.Unlock()
	e.activePid = 0
	e.activePgid = 0
}

// CurrentDirectory returns the tracked working directory.
func (e *Executor) CurrentDirectory() string {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	return e.currentDir
}

// History returns a defensive copy of the session's command history.
func (e *Executor) History() []string {
	return e.history.Commands()
}

// HistoryEntries returns the timestamped history records.
func (e *Executor) HistoryEntries() []HistoryEntry {
	return e.history.Entries()
}

// LastOutput returns the raw captured output of the last command, escape
// sequences included.
func (e *Executor) LastOutput() string {
	return e.capture.String()
}

// SetOutputSink registers a sink that receives decoded output text as it is
// captured. Pass nil to remove it.
func (e *Executor) SetOutputSink(sink OutputSink) {
	e.sinkMu.Lock()
	defer e.sinkMu.Unlock()
	e.sink = sink
}

func (e *Executor) outputSink() OutputSink {
	e.sinkMu.Lock()
	defer e.sinkMu.Unlock()
	return e.sink
}

// Reset discards all session state: directory back to the real cwd,
// environment back to the real environment, history and capture cleared.
func (e *Executor) Reset() {
	e.execMu.Lock()
	defer e.execMu.Unlock()

	e.stateMu.Lock()
	if cwd, err := os.Getwd(); err == nil {
		e.currentDir = cwd
	}
	e.previousDir = ""
	e.env = environMap(os.Environ())
	e.stateMu.Unlock()

	e.history.Clear()
	e.capture.Reset()
}

// syncDirectoryState makes the real process working directory match the
// tracked one. If the tracked directory is gone, tracking self-heals to
// wherever the process actually is.
func (e *Executor) syncDirectoryState() {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()

	actual, err := os.Getwd()
	if err == nil && actual == e.currentDir {
		return
	}
	if err := os.Chdir(e.currentDir); err != nil {
		if actual, err := os.Getwd(); err == nil {
			e.currentDir = actual
			e.env["PWD"] = actual
		}
		return
	}
	e.env["PWD"] = e.currentDir
}

func (e *Executor) shellPath() string {
	if e.shell != "" {
		return e.shell
	}
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	return defaultShellFor(func(key string) string { return e.env[key] })
}

func (e *Executor) environSlice() []string {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()

	environ := make([]string, 0, len(e.env))
	for key, value := range e.env {
		environ = append(environ, key+"="+value)
	}
	return environ
}

func environMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if idx := strings.IndexByte(kv, '='); idx > 0 {
			env[kv[:idx]] = kv[idx+1:]
		}
	}
	return env
}
