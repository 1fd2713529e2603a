package shell

import (
	"strings"
	"sync"
)

// captureBuffer accumulates decoded output chunks in arrival order. The
// relay appends while the main flow only reads after the relay is joined,
// but accessors may be called from other goroutines at any time.
type captureBuffer struct {
	mu     sync.Mutex
	chunks []string
}

func (b *captureBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chunks = nil
}

func (b *captureBuffer) Append(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chunks = append(b.chunks, text)
}

func (b *captureBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.chunks, "")
}

func (b *captureBuffer) Last() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.chunks) == 0 {
		return ""
	}
	return b.chunks[len(b.chunks)-1]
}

func (b *captureBuffer) Empty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.chunks) == 0
}
