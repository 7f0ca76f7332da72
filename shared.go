package scanfmt

import (
	"io"
	"os"
	"sync"
)

// SharedSource is a reader shared by every scan in the process, such as a
// console. Each scan acquires the source for its duration; the lock is not
// reentrant, so nested scans of the same source from one call stack deadlock.
type SharedSource struct {
	mu       sync.Mutex
	r        io.Reader
	chunk    int
	leftover []byte // look-ahead handed back by the previous holder
}

// NewSharedSource creates a SharedSource over r.
func NewSharedSource(r io.Reader) *SharedSource {
	return &SharedSource{r: r, chunk: DefaultChunkSize}
}

var stdin = sync.OnceValue(func() *SharedSource {
	return NewSharedSource(os.Stdin)
})

// Stdin returns the process-lifetime SharedSource over os.Stdin.
func Stdin() *SharedSource {
	return stdin()
}

// Acquire blocks until the source is free and returns a buffer over it.
// The buffer must be handed back with Release.
func (s *SharedSource) Acquire() *Buffer {
	s.mu.Lock()
	return NewSourceBuffer(&sharedView{s: s, buf: make([]byte, s.chunk)})
}

// TryAcquire is Acquire without blocking. It returns false if another scan
// holds the source.
func (s *SharedSource) TryAcquire() (*Buffer, bool) {
	if !s.mu.TryLock() {
		return nil, false
	}
	return NewSourceBuffer(&sharedView{s: s, buf: make([]byte, s.chunk)}), true
}

// Release syncs the buffer at its committed position, so the next holder
// continues right after the consumed input, and unlocks the source.
func (s *SharedSource) Release(b *Buffer) error {
	defer s.mu.Unlock()
	return b.Sync(b.Position())
}

// Leftover returns the retained look-ahead. Only meaningful while no scan
// holds the source.
func (s *SharedSource) Leftover() string {
	return string(s.leftover)
}

type sharedView struct {
	s   *SharedSource
	buf []byte
}

func (v *sharedView) Next() ([]byte, error) {
	if len(v.s.leftover) > 0 {
		out := v.s.leftover
		v.s.leftover = nil
		return out, nil
	}
	n, err := v.s.r.Read(v.buf)
	return v.buf[:n], err
}

func (v *sharedView) Sync(unconsumed []byte) error {
	if len(unconsumed) == 0 {
		return nil
	}
	kept := make([]byte, 0, len(unconsumed)+len(v.s.leftover))
	kept = append(kept, unconsumed...)
	v.s.leftover = append(kept, v.s.leftover...)
	return nil
}
