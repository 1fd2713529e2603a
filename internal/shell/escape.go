package shell

import "bytes"

// Detection below is a best-effort heuristic over known escape sequences,
// not a terminal protocol guarantee. A sequence split across read chunks is
// missed; in practice programs emit these in the first write.

// Alternate screen entry forms: 1049 (current), 47 (legacy), 1047 (xterm).
var alternateScreenEnter = [][]byte{
	[]byte("\x1b[?1049h"),
	[]byte("\x1b[?47h"),
	[]byte("\x1b[?1047h"),
}

// alternateScreenExit is written during cleanup when a command used the
// alternate screen: all three exit forms plus a full attribute reset.
const alternateScreenExit = "\x1b[?1049l\x1b[?47l\x1b[?1047l\x1b[0m"

// Sequences that signal a program wants raw input: alternate screen entry,
// application cursor keys, application keypad mode.
var rawModeIndicators = [][]byte{
	[]byte("\x1b[?1049h"),
	[]byte("\x1b[?1h"),
	[]byte("\x1b[?47h"),
	[]byte("\x1b="),
}

func entersAlternateScreen(chunk []byte) bool {
	return containsAny(chunk, alternateScreenEnter)
}

func wantsRawInput(chunk []byte) bool {
	return containsAny(chunk, rawModeIndicators)
}

func containsAny(chunk []byte, sequences [][]byte) bool {
	for _, seq := range sequences {
		if bytes.Contains(chunk, seq) {
			return true
		}
	}
	return false
}
