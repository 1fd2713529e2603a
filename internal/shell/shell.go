package shell

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultShell returns the user's preferred shell from $SHELL, falling back
// to /bin/bash.
func DefaultShell() string {
	return defaultShellFor(os.Getenv)
}

func defaultShellFor(getenv func(string) string) string {
	if shell := getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/bash"
}

// wrapCommand builds the argv for one command invocation. For recognized
// shell families the command is prefixed with a best-effort source of the
// interactive rc file, so aliases and functions defined there survive even
// though the shell is not a login shell. Unrecognized shells run the command
// unwrapped; their rc files are not sourced.
func wrapCommand(shell, command string) []string {
	wrapped := command
	switch shellFamily(shell) {
	case "bash":
		wrapped = "[ -f ~/.bashrc ] && source ~/.bashrc; " + command
	case "zsh":
		wrapped = "[ -f ~/.zshrc ] && source ~/.zshrc; " + command
	}
	return []string{shell, "-i", "-c", wrapped}
}

func shellFamily(shell string) string {
	name := filepath.Base(shell)
	switch {
	case strings.Contains(name, "bash"):
		return "bash"
	case strings.Contains(name, "zsh"):
		return "zsh"
	default:
		return ""
	}
}
