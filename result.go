package scanfmt

// Result describes how far a scan progressed.
type Result struct {
	// Position is the logical source position where scanning stopped.
	Position int
	// Fields lists the scanned targets in the order they were read.
	Fields []FieldSpan

	buf *Buffer
}

// FieldSpan records the input consumed by one scanned argument.
type FieldSpan struct {
	ID    int     // Argument id
	Kind  ArgKind // Slot kind
	Begin int     // First logical position of the field, after skipped whitespace
	End   int     // Logical position after the field and any trailing fill
}

// Buffer returns the buffer that was scanned.
func (r Result) Buffer() *Buffer {
	return r.buf
}

// Rest returns the input after Position, reading the source to exhaustion
// if it is not contiguous.
func (r Result) Rest() string {
	if r.buf == nil {
		return ""
	}
	for r.buf.Fill() {
	}
	return r.buf.SegmentAt(r.Position)
}

// Text returns the input consumed by f, or "" once the buffer has
// discarded it.
func (r Result) Text(f FieldSpan) string {
	if r.buf == nil || f.End <= f.Begin || f.Begin < r.buf.base || f.End > r.buf.CharsAvailable() {
		return ""
	}
	return r.buf.slice(f.Begin, f.End)
}

// MarshalText renders the kind by name.
func (k ArgKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
