package scanfmt

import (
	"io"
)

// DefaultChunkSize is the physical read size of reader-backed sources.
const DefaultChunkSize = 4096

// ReaderSource pulls chunks from an io.Reader.
type ReaderSource struct {
	r   io.Reader
	buf []byte
}

// NewReaderSource creates a Source reading r in chunks of chunkSize bytes.
func NewReaderSource(r io.Reader, chunkSize int) *ReaderSource {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &ReaderSource{r: r, buf: make([]byte, chunkSize)}
}

// Next implements Source.
func (s *ReaderSource) Next() ([]byte, error) {
	n, err := s.r.Read(s.buf)
	return s.buf[:n], err
}

// Sync implements Syncer when the underlying reader is an io.Seeker.
func (s *ReaderSource) Sync(unconsumed []byte) error {
	seeker, ok := s.r.(io.Seeker)
	if !ok {
		return ErrSyncNotSupported
	}
	if len(unconsumed) == 0 {
		return nil
	}
	_, err := seeker.Seek(-int64(len(unconsumed)), io.SeekCurrent)
	return err
}

type chunkSource struct {
	chunks []string
}

func (s *chunkSource) Next() ([]byte, error) {
	if len(s.chunks) == 0 {
		return nil, io.EOF
	}
	c := s.chunks[0]
	s.chunks = s.chunks[1:]
	return []byte(c), nil
}

// Sync pushes unconsumed units back as the next chunk.
func (s *chunkSource) Sync(unconsumed []byte) error {
	if len(unconsumed) > 0 {
		s.chunks = append([]string{string(unconsumed)}, s.chunks...)
	}
	return nil
}

type rangeSource struct {
	r     Range
	chunk int
	buf   []byte
}

func (s *rangeSource) Next() ([]byte, error) {
	s.buf = s.buf[:0]
	for len(s.buf) < s.chunk && !s.r.AtEnd() {
		s.buf = append(s.buf, s.r.Value())
		s.r.Advance(1)
	}
	if len(s.buf) == 0 {
		if e, ok := s.r.(interface{ Err() error }); ok && e.Err() != nil {
			return nil, e.Err()
		}
		return nil, io.EOF
	}
	return s.buf, nil
}

// ByteReaderRange adapts an io.ByteReader to Range. Read errors other than
// io.EOF end the range and are reported by Err.
type ByteReaderRange struct {
	br     io.ByteReader
	index  int
	cur    byte
	loaded bool
	done   bool
	err    error
}

// NewByteReaderRange creates a Range over br.
func NewByteReaderRange(br io.ByteReader) *ByteReaderRange {
	return &ByteReaderRange{br: br}
}

func (r *ByteReaderRange) load() {
	if r.loaded || r.done {
		return
	}
	b, err := r.br.ReadByte()
	if err != nil {
		r.done = true
		if err != io.EOF {
			r.err = err
		}
		return
	}
	r.cur = b
	r.loaded = true
}

// Index implements Range.
func (r *ByteReaderRange) Index() int { return r.index }

// AtEnd implements Range.
func (r *ByteReaderRange) AtEnd() bool {
	r.load()
	return !r.loaded
}

// Value implements Range.
func (r *ByteReaderRange) Value() byte {
	r.load()
	return r.cur
}

// Advance implements Range.
func (r *ByteReaderRange) Advance(n int) {
	for ; n > 0; n-- {
		r.load()
		if !r.loaded {
			return
		}
		r.loaded = false
		r.index++
	}
}

// Err returns the first non-EOF read error.
func (r *ByteReaderRange) Err() error { return r.err }

// SliceRange is a Range over an in-memory byte slice.
type SliceRange struct {
	p []byte
	i int
}

// NewSliceRange creates a Range over p.
func NewSliceRange(p []byte) *SliceRange { return &SliceRange{p: p} }

// Index implements Range.
func (r *SliceRange) Index() int { return r.i }

// AtEnd implements Range.
func (r *SliceRange) AtEnd() bool { return r.i >= len(r.p) }

// Value implements Range.
func (r *SliceRange) Value() byte { return r.p[r.i] }

// Advance implements Range.
func (r *SliceRange) Advance(n int) {
	r.i += n
	if r.i > len(r.p) {
		r.i = len(r.p)
	}
}
