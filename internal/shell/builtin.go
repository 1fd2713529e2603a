package shell

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// changeDirectory implements the cd builtin. Only cd needs interception for
// state persistence; every other builtin runs in the spawned shell. On any
// failure the session state is left untouched.
func (e *Executor) changeDirectory(parts []string) string {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()

	target := ""
	if len(parts) > 1 {
		target = parts[1]
	}

	var dir string
	switch {
	case target == "":
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Sprintf("cd: %v", err)
		}
		dir = home
	case target == "-":
		if e.previousDir == "" {
			return "No previous directory"
		}
		dir = e.previousDir
	case strings.HasPrefix(target, "~"):
		expanded, err := expandHome(target)
		if err != nil {
			return fmt.Sprintf("cd: %v", err)
		}
		dir = expanded
	case filepath.IsAbs(target):
		dir = target
	default:
		// Resolve against the tracked directory, not the live OS cwd,
		// which may have drifted.
		dir = filepath.Join(e.currentDir, target)
	}

	resolved, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Sprintf("cd: %v", err)
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		arg := target
		if arg == "" {
			arg = "~"
		}
		return fmt.Sprintf("cd: no such file or directory: %s", arg)
	}
	if err := os.Chdir(resolved); err != nil {
		return fmt.Sprintf("cd: %v", err)
	}

	e.previousDir = e.currentDir
	e.currentDir = resolved
	e.env["PWD"] = resolved
	return ""
}

// expandHome resolves a leading ~ the way shells do: bare ~ and ~/path use
// the current user's home, ~name and ~name/path use that user's. An unknown
// user leaves the target unchanged and it fails the existence check
// downstream.
func expandHome(target string) (string, error) {
	if target == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(target, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, target[2:]), nil
	}
	name, rest, _ := strings.Cut(target[1:], "/")
	u, err := user.Lookup(name)
	if err != nil {
		return target, nil
	}
	if rest == "" {
		return u.HomeDir, nil
	}
	return filepath.Join(u.HomeDir, rest), nil
}
