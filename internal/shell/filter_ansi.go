package shell

import "strings"

// stripStyling removes ANSI color and styling sequences: CSI sequences with
// numeric/semicolon parameters terminated by 'm' (SGR) or 'K' (erase line).
// Everything else, including cursor-addressing and mode-switch sequences, is
// left untouched so the caller sees the same text the terminal rendered.
func stripStyling(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}

	builder := strings.Builder{}
	builder.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != 0x1b || i+1 >= len(s) || s[i+1] != '[' {
			builder.WriteByte(s[i])
			i++
			continue
		}
		j := i + 2
		for j < len(s) && (s[j] == ';' || (s[j] >= '0' && s[j] <= '9')) {
			j++
		}
		if j < len(s) && (s[j] == 'm' || s[j] == 'K') {
			i = j + 1
			continue
		}
		builder.WriteByte(s[i])
		i++
	}
	return builder.String()
}
