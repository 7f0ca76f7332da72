package scanfmt

import "github.com/Azhovan/scanfmt/internal/textutil"

// State is the view a Scannable gets of an ongoing scan. It is only valid
// during the ScanFrom call it was passed to.
type State struct {
	e   *engine
	cur Cursor
}

// Cursor returns the current position.
func (st *State) Cursor() Cursor {
	return st.cur
}

// SetCursor moves the current position. Cursors from other buffers and
// positions before the start of the field are ignored.
func (st *State) SetCursor(c Cursor) {
	if c.buf == st.cur.buf && c.pos >= st.e.cur.pos {
		st.cur = c
	}
}

// Locale returns the scanner's locale.
func (st *State) Locale() Locale {
	return st.e.s.locale
}

// Peek returns the next code unit.
func (st *State) Peek() (byte, bool) {
	return st.cur.Peek()
}

// PeekRune decodes the next code point.
func (st *State) PeekRune() (rune, int, bool) {
	return st.cur.PeekRune()
}

// Advance skips n code units.
func (st *State) Advance(n int) {
	st.cur = st.cur.Advance(n)
}

// SkipSpace skips whitespace.
func (st *State) SkipSpace() {
	st.cur = skipSpace(newInput(st.cur)).cur
}

// Token reads code points while accept holds and returns them.
func (st *State) Token(accept func(rune) bool) (string, error) {
	begin := st.cur
	out, err := readWhile(newInput(st.cur), accept)
	st.cur = out.cur
	if err != nil {
		return "", err
	}
	return begin.Text(st.cur), nil
}

// Word skips whitespace and reads up to the next whitespace.
func (st *State) Word() (string, error) {
	st.SkipSpace()
	w, err := st.Token(func(r rune) bool { return !textutil.IsSpace(r) })
	if err != nil {
		return "", err
	}
	if w == "" {
		return "", newInput(st.cur).endError("word")
	}
	return w, nil
}

// Scan scans built-in values from the current position with a nested
// format string, advancing the state.
func (st *State) Scan(format string, args ...any) error {
	table, err := newArgTable(args)
	if err != nil {
		return err
	}
	sub := &engine{
		s:      st.e.s,
		table:  table,
		parser: newFormatParser(format),
		cur:    st.cur,
	}
	err = sub.run()
	st.cur = sub.cur
	return err
}
