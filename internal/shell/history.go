package shell

import (
	"sync"
	"time"
)

const DefaultHistoryLimit = 1000

type HistoryEntry struct {
	Command   string
	Timestamp time.Time
}

// History is an append-only record of executed commands, bounded by dropping
// the oldest entries past its limit.
type History struct {
	mu      sync.Mutex
	max     int
	entries []HistoryEntry
}

func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistoryLimit
	}
	return &History{max: max}
}

func (h *History) Append(command string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, HistoryEntry{
		Command:   command,
		Timestamp: time.Now().UTC(),
	})
	if len(h.entries) > h.max {
		drop := len(h.entries) - h.max
		h.entries = h.entries[drop:]
	}
}

// Commands returns a defensive copy of the recorded command strings.
func (h *History) Commands() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	commands := make([]string, len(h.entries))
	for i, entry := range h.entries {
		commands[i] = entry.Command
	}
	return commands
}

func (h *History) Entries() []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := make([]HistoryEntry, len(h.entries))
	copy(entries, h.entries)
	return entries
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}
