package scanfmt

import (
	"errors"
	"io"

	"github.com/Azhovan/scanfmt/internal/textutil"
)

// maxEmptyReads bounds consecutive empty chunks before Fill gives up.
const maxEmptyReads = 100

// Buffer is a uniform pull-based view over a character source.
//
// Contiguous buffers (strings, byte slices) expose the whole source at once
// and never fill. Non-contiguous buffers pull chunks from a Source on demand
// and retain what they pulled: the retained prefix is the putback buffer,
// the most recent chunk is the current view. Discard releases the data
// before the position where the next scan starts.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	text       string // contiguous sources
	data       []byte // non-contiguous: putback = data[:mark], current = data[mark:]
	mark       int
	base       int // logical position of data[0]
	contiguous bool

	src  Source
	eof  bool
	err  error
	next int // logical position where the next scan starts
}

// NewStringBuffer creates a contiguous buffer over s. Strings read from it
// share memory with s.
func NewStringBuffer(s string) *Buffer {
	return &Buffer{text: s, contiguous: true}
}

// NewBytesBuffer creates a contiguous buffer over a copy of p.
func NewBytesBuffer(p []byte) *Buffer {
	return &Buffer{text: string(p), contiguous: true}
}

// NewSourceBuffer creates a non-contiguous buffer over src.
func NewSourceBuffer(src Source) *Buffer {
	return &Buffer{src: src}
}

// NewReaderBuffer creates a non-contiguous buffer reading r in chunks of
// chunkSize bytes (DefaultChunkSize if <= 0). If r implements io.Seeker,
// Sync seeks back over unconsumed look-ahead.
func NewReaderBuffer(r io.Reader, chunkSize int) *Buffer {
	return NewSourceBuffer(NewReaderSource(r, chunkSize))
}

// NewChunkedBuffer creates a non-contiguous buffer that yields chunks one at
// a time, in order.
func NewChunkedBuffer(chunks ...string) *Buffer {
	return NewSourceBuffer(&chunkSource{chunks: chunks})
}

// NewRangeBuffer creates a non-contiguous buffer over a generic forward range.
func NewRangeBuffer(r Range) *Buffer {
	return NewSourceBuffer(&rangeSource{r: r, chunk: DefaultChunkSize})
}

// Fill extends the current view by pulling the next chunk from the source.
// It returns false once the source is exhausted or failed (see Err).
// Calling Fill on a contiguous buffer is a caller error and returns false.
func (b *Buffer) Fill() bool {
	if b.contiguous || b.eof || b.src == nil {
		return false
	}
	for empty := 0; empty < maxEmptyReads; empty++ {
		chunk, err := b.src.Next()
		if len(chunk) > 0 {
			b.mark = len(b.data)
			b.data = append(b.data, chunk...)
			b.setErr(err)
			return true
		}
		if err != nil {
			b.setErr(err)
			return false
		}
	}
	b.setErr(io.ErrNoProgress)
	return false
}

func (b *Buffer) setErr(err error) {
	if err == nil {
		return
	}
	b.eof = true
	if !errors.Is(err, io.EOF) {
		b.err = err
	}
}

// Err returns the first non-EOF error the source returned.
func (b *Buffer) Err() error {
	return b.err
}

// IsContiguous reports whether the whole source is one in-memory span.
func (b *Buffer) IsContiguous() bool {
	return b.contiguous
}

// Contiguous returns the whole source of a contiguous buffer.
// It returns "" for non-contiguous buffers.
func (b *Buffer) Contiguous() string {
	if !b.contiguous {
		return ""
	}
	return b.text
}

// CurrentView returns the most recently materialized, not-yet-retained slice.
func (b *Buffer) CurrentView() string {
	if b.contiguous {
		return b.text
	}
	return string(b.data[b.mark:])
}

// PutbackBuffer returns the retained slice preceding the current view.
func (b *Buffer) PutbackBuffer() string {
	if b.contiguous {
		return ""
	}
	return string(b.data[:b.mark])
}

// CharsAvailable returns the number of materialized code units
// (putback plus current view).
func (b *Buffer) CharsAvailable() int {
	if b.contiguous {
		return len(b.text)
	}
	return b.base + len(b.data)
}

// SegmentAt returns the materialized code units starting at logical
// position pos, regardless of the putback/current boundary.
func (b *Buffer) SegmentAt(pos int) string {
	n := b.CharsAvailable()
	if pos >= n {
		return ""
	}
	if b.contiguous {
		return b.text[max(pos, 0):]
	}
	return string(b.data[max(pos, b.base)-b.base:])
}

// Position returns the logical position where the next scan starts.
func (b *Buffer) Position() int {
	return b.next
}

// Begin returns a cursor at the position where the next scan starts.
func (b *Buffer) Begin() Cursor {
	return Cursor{buf: b, pos: b.next}
}

// Commit moves the start of the next scan to c.
func (b *Buffer) Commit(c Cursor) {
	if c.buf == b {
		b.next = c.pos
	}
}

// Discard releases the retained data before Position. Logical positions
// keep counting from the start of the source, but cursors, results and
// segments before Position can no longer be read. Contiguous buffers
// keep their source.
func (b *Buffer) Discard() {
	if b.contiguous {
		return
	}
	drop := min(b.next-b.base, len(b.data))
	if drop <= 0 {
		return
	}
	b.data = b.data[drop:]
	b.base += drop
	b.mark = max(b.mark-drop, 0)
}

// Remaining returns every unconsumed code unit, reading the source to
// exhaustion if needed.
func (b *Buffer) Remaining() string {
	for b.Fill() {
	}
	return b.SegmentAt(b.next)
}

// Sync commits logical position pos back to the source: look-ahead pulled
// from the source but not consumed is handed back so an independent later
// read continues right after pos. Contiguous buffers have nothing to sync.
// After Sync the buffer forgets everything past pos.
func (b *Buffer) Sync(pos int) error {
	if b.contiguous {
		return nil
	}
	s, ok := b.src.(Syncer)
	if !ok {
		return ErrSyncNotSupported
	}
	end := b.base + len(b.data)
	if pos < b.base || pos > end {
		pos = end
	}
	keep := pos - b.base
	if err := s.Sync(b.data[keep:]); err != nil {
		return err
	}
	b.data = b.data[:keep]
	if b.mark > keep {
		b.mark = keep
	}
	if b.next > pos {
		b.next = pos
	}
	b.eof = false
	return nil
}

// at returns the code unit at logical position i, filling on demand.
func (b *Buffer) at(i int) (byte, bool) {
	if b.contiguous {
		if i < len(b.text) {
			return b.text[i], true
		}
		return 0, false
	}
	if i < b.base {
		return 0, false
	}
	for i-b.base >= len(b.data) {
		if !b.Fill() {
			return 0, false
		}
	}
	return b.data[i-b.base], true
}

// ensure materializes up to position n (exclusive) where possible and
// returns the materialized length.
func (b *Buffer) ensure(n int) int {
	if !b.contiguous {
		for n > b.base+len(b.data) && b.Fill() {
		}
	}
	return b.CharsAvailable()
}

// slice returns the code units in [from, to). Both must be materialized.
// Contiguous buffers return a substring sharing memory with the source.
func (b *Buffer) slice(from, to int) string {
	if b.contiguous {
		return b.text[from:to]
	}
	return string(b.data[from-b.base : to-b.base])
}

// bytes returns a copy of the code units in [from, to).
func (b *Buffer) bytes(from, to int) []byte {
	out := make([]byte, to-from)
	if b.contiguous {
		copy(out, b.text[from:to])
	} else {
		copy(out, b.data[from-b.base:to-b.base])
	}
	return out
}

// decode decodes the code point at position i.
func (b *Buffer) decode(i int) (rune, int) {
	lead, ok := b.at(i)
	if !ok {
		return textutil.Invalid, 0
	}
	if n := textutil.CodePointLength(lead); n > 1 {
		b.ensure(i + n)
	}
	if b.contiguous {
		return textutil.DecodeString(b.text[i:])
	}
	return textutil.Decode(b.data[i-b.base:])
}
