package shell

import "testing"

func TestHistoryAppendAndCommands(t *testing.T) {
	t.Parallel()

	history := NewHistory(10)
	history.Append("ls")
	history.Append("")
	history.Append("pwd")

	commands := history.Commands()
	if len(commands) != 3 {
		t.Fatalf("expected 3 entries including the empty command, got %d", len(commands))
	}
	if commands[0] != "ls" || commands[1] != "" || commands[2] != "pwd" {
		t.Fatalf("unexpected commands: %v", commands)
	}
}

func TestHistoryDefensiveCopy(t *testing.T) {
	t.Parallel()

	history := NewHistory(10)
	history.Append("original")

	commands := history.Commands()
	commands[0] = "mutated"

	if got := history.Commands()[0]; got != "original" {
		t.Fatalf("expected history to be isolated from callers, got %q", got)
	}
}

func TestHistoryBounded(t *testing.T) {
	t.Parallel()

	history := NewHistory(2)
	history.Append("a")
	history.Append("b")
	history.Append("c")

	commands := history.Commands()
	if len(commands) != 2 || commands[0] != "b" || commands[1] != "c" {
		t.Fatalf("expected oldest entries dropped, got %v", commands)
	}
}

func TestHistoryEntriesTimestamped(t *testing.T) {
	t.Parallel()

	history := NewHistory(10)
	history.Append("ls")

	entries := history.Entries()
	if len(entries) != 1 || entries[0].Timestamp.IsZero() {
		t.Fatalf("expected timestamped entry, got %v", entries)
	}
}

func TestHistoryClear(t *testing.T) {
	t.Parallel()

	history := NewHistory(10)
	history.Append("ls")
	history.Clear()

	if history.Len() != 0 {
		t.Fatalf("expected empty history, got %d entries", history.Len())
	}
}
