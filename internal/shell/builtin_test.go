package shell

import (
	"os"
	"os/user"
	"path/filepath"
	"testing"

	"ptysh/internal/config"
)

// newBuiltinExecutor returns an executor and restores the process working
// directory after the test; cd moves the real cwd, so these tests cannot
// run in parallel.
func newBuiltinExecutor(t *testing.T) *Executor {
	t.Helper()

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	executor, err := NewExecutor(config.Default(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return executor
}

func realPath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatal(err)
	}
	return resolved
}

func assertDirectoryInvariant(t *testing.T, executor *Executor) {
	t.Helper()
	actual, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if tracked := executor.CurrentDirectory(); tracked != actual {
		t.Fatalf("tracked directory %q does not match process cwd %q", tracked, actual)
	}
}

func TestCdNoArgumentGoesHome(t *testing.T) {
	executor := newBuiltinExecutor(t)

	out := executor.Execute("cd")
	if out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}
	if got := executor.CurrentDirectory(); got != home {
		t.Fatalf("expected %q, got %q", home, got)
	}
	assertDirectoryInvariant(t, executor)
}

func TestCdTildeGoesHome(t *testing.T) {
	executor := newBuiltinExecutor(t)

	if out := executor.Execute("cd ~"); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}
	if got := executor.CurrentDirectory(); got != home {
		t.Fatalf("expected %q, got %q", home, got)
	}
}

func TestCdDashWithoutPrevious(t *testing.T) {
	executor := newBuiltinExecutor(t)

	before := executor.CurrentDirectory()
	out := executor.Execute("cd -")
	if out != "No previous directory" {
		t.Fatalf("expected previous-directory error, got %q", out)
	}
	if executor.CurrentDirectory() != before {
		t.Fatal("failed cd must not mutate the tracked directory")
	}
}

func TestCdDashSwapsDirectories(t *testing.T) {
	executor := newBuiltinExecutor(t)

	first := realPath(t, t.TempDir())
	second := realPath(t, t.TempDir())

	if out := executor.Execute("cd " + first); out != "" {
		t.Fatalf("cd failed: %q", out)
	}
	if out := executor.Execute("cd " + second); out != "" {
		t.Fatalf("cd failed: %q", out)
	}
	if out := executor.Execute("cd -"); out != "" {
		t.Fatalf("cd - failed: %q", out)
	}

	if got := executor.CurrentDirectory(); got != first {
		t.Fatalf("expected %q after cd -, got %q", first, got)
	}

	// A second swap returns to where we were.
	if out := executor.Execute("cd -"); out != "" {
		t.Fatalf("cd - failed: %q", out)
	}
	if got := executor.CurrentDirectory(); got != second {
		t.Fatalf("expected %q after second cd -, got %q", second, got)
	}
	assertDirectoryInvariant(t, executor)
}

func TestCdRelativeResolvesAgainstTrackedDirectory(t *testing.T) {
	executor := newBuiltinExecutor(t)

	base := realPath(t, t.TempDir())
	nested := filepath.Join(base, "nested")
	if err := os.Mkdir(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	if out := executor.Execute("cd " + base); out != "" {
		t.Fatalf("cd failed: %q", out)
	}
	if out := executor.Execute("cd nested"); out != "" {
		t.Fatalf("cd failed: %q", out)
	}
	if got := executor.CurrentDirectory(); got != nested {
		t.Fatalf("expected %q, got %q", nested, got)
	}
	assertDirectoryInvariant(t, executor)
}

func TestCdMissingTarget(t *testing.T) {
	executor := newBuiltinExecutor(t)

	before := executor.CurrentDirectory()
	out := executor.Execute("cd /definitely/not/a/directory")
	want := "cd: no such file or directory: /definitely/not/a/directory"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
	if executor.CurrentDirectory() != before {
		t.Fatal("failed cd must not mutate the tracked directory")
	}
}

func TestCdTargetIsFile(t *testing.T) {
	executor := newBuiltinExecutor(t)

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	out := executor.Execute("cd " + file)
	want := "cd: no such file or directory: " + file
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestExpandHomeNamedUser(t *testing.T) {
	current, err := user.Current()
	if err != nil {
		t.Skipf("current user unavailable: %v", err)
	}

	got, err := expandHome("~" + current.Username)
	if err != nil {
		t.Fatal(err)
	}
	if got != current.HomeDir {
		t.Fatalf("expected %q, got %q", current.HomeDir, got)
	}

	got, err = expandHome("~" + current.Username + "/sub")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(current.HomeDir, "sub"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	got, err = expandHome("~definitely-not-a-user")
	if err != nil {
		t.Fatal(err)
	}
	if got != "~definitely-not-a-user" {
		t.Fatalf("unknown user must pass through unchanged, got %q", got)
	}
}

func TestCdRecordedInHistory(t *testing.T) {
	executor := newBuiltinExecutor(t)

	executor.Execute("cd /definitely/not/a/directory")

	commands := executor.History()
	if len(commands) != 1 || commands[0] != "cd /definitely/not/a/directory" {
		t.Fatalf("expected failed cd recorded in history, got %v", commands)
	}
}
