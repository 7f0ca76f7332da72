package scanfmt

import "github.com/Azhovan/scanfmt/internal/textutil"

// Cursor is a cheap, copyable index into a Buffer. Dereferencing or
// comparing against the end fills the buffer on demand.
//
// Cursors on the same buffer are totally ordered by Position.
type Cursor struct {
	buf *Buffer
	pos int
}

// Position returns the logical index of the cursor.
func (c Cursor) Position() int {
	return c.pos
}

// Buffer returns the buffer the cursor points into.
func (c Cursor) Buffer() *Buffer {
	return c.buf
}

// AtEnd reports whether no code unit is available at the cursor.
func (c Cursor) AtEnd() bool {
	if c.buf == nil {
		return true
	}
	_, ok := c.buf.at(c.pos)
	return !ok
}

// Peek returns the code unit at the cursor.
func (c Cursor) Peek() (byte, bool) {
	if c.buf == nil {
		return 0, false
	}
	return c.buf.at(c.pos)
}

// PeekRune decodes the code point at the cursor. It returns
// (textutil.Invalid, n, true) for malformed input and ok=false at the end.
func (c Cursor) PeekRune() (r rune, size int, ok bool) {
	if c.buf == nil {
		return textutil.Invalid, 0, false
	}
	r, size = c.buf.decode(c.pos)
	if size == 0 {
		return textutil.Invalid, 0, false
	}
	return r, size, true
}

// Next returns the cursor advanced by one code unit.
func (c Cursor) Next() Cursor {
	c.pos++
	return c
}

// Advance returns the cursor advanced by n code units without dereferencing
// each one. The result never passes the end of the source.
func (c Cursor) Advance(n int) Cursor {
	if n <= 0 || c.buf == nil {
		return c
	}
	avail := c.buf.ensure(c.pos + n)
	c.pos += n
	if c.pos > avail {
		c.pos = avail
	}
	return c
}

// AdvanceTo returns a cursor at logical position pos on the same buffer.
func (c Cursor) AdvanceTo(pos int) Cursor {
	if pos > c.pos {
		return c.Advance(pos - c.pos)
	}
	c.pos = pos
	return c
}

// Distance returns the number of code units from c to other.
func (c Cursor) Distance(other Cursor) int {
	return other.pos - c.pos
}

// Less reports whether c is before other.
func (c Cursor) Less(other Cursor) bool {
	return c.pos < other.pos
}

// Equal reports whether both cursors are at the same position, or both at the end.
func (c Cursor) Equal(other Cursor) bool {
	if c.pos == other.pos {
		return true
	}
	return c.AtEnd() && other.AtEnd()
}

// Text returns the code units between c and end.
func (c Cursor) Text(end Cursor) string {
	if end.pos <= c.pos {
		return ""
	}
	return c.buf.slice(c.pos, end.pos)
}

// Rest returns the materialized code units from the cursor on.
func (c Cursor) Rest() string {
	return c.buf.SegmentAt(c.pos)
}
