//go:build !windows

package shell

import (
	"errors"
	"os"
	"strings"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	pollTimeoutMs   = 100
	inputChunkSize  = 1024
	outputChunkSize = 4096
)

// forwardHostInput copies one chunk of host stdin to the PTY master. It
// reports EOF separately so the caller can stop watching the descriptor
// while the child keeps running.
func forwardHostInput(master *os.File, buf []byte) (eof bool, err error) {
	n, err := unix.Read(stdinFd, buf)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, err
	}
	if n == 0 {
		return true, nil
	}
	if _, err := master.Write(buf[:n]); err != nil {
		return false, err
	}
	return false, nil
}

// relayLoop multiplexes host input and PTY output for one command. It runs
// as the single background worker per command and exits on a stop signal,
// child EOF, or any transport failure. Transport failures are normal
// termination, never surfaced.
func (e *Executor) relayLoop(st *commandState) {
	defer close(st.relayDone)

	rawEngaged := false
	defer func() {
		// Cleanup restores too; restoreTerminal is exactly-once.
		if rawEngaged {
			_ = st.restoreTerminal()
		}
	}()

	// Keep a local reference: cleanup nils st.ptmx if the join times out.
	master := st.ptmx
	masterFd := int(master.Fd())
	fds := []unix.PollFd{{Fd: int32(masterFd), Events: unix.POLLIN}}
	if st.stdinTTY {
		fds = append(fds, unix.PollFd{Fd: int32(stdinFd), Events: unix.POLLIN})
	}

	inBuf := make([]byte, inputChunkSize)
	outBuf := make([]byte, outputChunkSize)

	for !st.stop.Load() {
		for i := range fds {
			fds[i].Revents = 0
		}
		ready, err := unix.Poll(fds, pollTimeoutMs)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return
		}
		if ready == 0 {
			continue
		}

		if len(fds) > 1 && fds[1].Fd >= 0 && fds[1].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
			eof, err := forwardHostInput(master, inBuf)
			if err != nil {
				return
			}
			if eof {
				// Ctrl-D at EOF: poll ignores negative descriptors, so the
				// loop stops watching stdin instead of spinning on it.
				fds[1].Fd = -1
			}
		}

		if fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
			n, err := unix.Read(masterFd, outBuf)
			if n <= 0 {
				// EOF or EIO: the child closed its terminal end.
				if err != nil && errors.Is(err, unix.EINTR) {
					continue
				}
				return
			}
			chunk := outBuf[:n]

			if entersAlternateScreen(chunk) {
				st.altScreen.Store(true)
			}

			if !rawEngaged && st.stdinTTY && st.saved != nil && wantsRawInput(chunk) {
				if _, err := term.MakeRaw(stdinFd); err == nil {
					rawEngaged = true
				}
			}

			if st.stdoutTTY {
				_, _ = st.termOut.Write(chunk)
			}

			text := strings.ToValidUTF8(string(chunk), "�")
			e.capture.Append(text)
			if sink := e.outputSink(); sink != nil {
				sink.OnOutput(text)
			}
		}
	}
}
