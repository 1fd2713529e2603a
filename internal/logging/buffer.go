package logging

import "sync"

const DefaultBufferSize = 1000

// Buffer keeps the most recent entries, dropping the oldest past capacity.
type Buffer struct {
	mu      sync.Mutex
	max     int
	entries []Entry
}

func NewBuffer(max int) *Buffer {
	if max <= 0 {
		max = DefaultBufferSize
	}
	return &Buffer{max: max}
}

func (b *Buffer) Add(entry Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, entry)
	if len(b.entries) > b.max {
		drop := len(b.entries) - b.max
		b.entries = b.entries[drop:]
	}
}

func (b *Buffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := make([]Entry, len(b.entries))
	copy(entries, b.entries)
	return entries
}

func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
