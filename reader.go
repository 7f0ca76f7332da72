package scanfmt

import "github.com/Azhovan/scanfmt/internal/textutil"

// valueReader is the per-category reader contract.
//
// checkSpecs rejects options illegal for the category and may configure
// the reader; it is always called, with DefaultSpec for fields without a
// spec. The read methods store into the argument slot only on success,
// except numeric overflow, which stores the saturated value and fails.
type valueReader interface {
	checkSpecs(spec *Spec) error
	skipWSBeforeRead() bool
	readDefault(in input) (Cursor, error)
	readSpecs(in input, spec *Spec) (Cursor, error)
}

// input is the view handed to a reader: a cursor with an optional end
// bound (a logical position) set by precision clipping.
type input struct {
	cur   Cursor
	limit int // -1 = unbounded
}

func newInput(cur Cursor) input {
	return input{cur: cur, limit: -1}
}

func (in input) atEnd() bool {
	if in.limit >= 0 && in.cur.pos >= in.limit {
		return true
	}
	return in.cur.AtEnd()
}

func (in input) peek() (byte, bool) {
	if in.limit >= 0 && in.cur.pos >= in.limit {
		return 0, false
	}
	return in.cur.Peek()
}

func (in input) peekRune() (rune, int, bool) {
	if in.limit >= 0 && in.cur.pos >= in.limit {
		return textutil.Invalid, 0, false
	}
	r, n, ok := in.cur.PeekRune()
	if ok && in.limit >= 0 && in.cur.pos+n > in.limit {
		return textutil.Invalid, in.limit - in.cur.pos, true
	}
	return r, n, ok
}

func (in input) advance(n int) input {
	in.cur = in.cur.Advance(n)
	return in
}

func (in input) at(c Cursor) input {
	in.cur = c
	return in
}

// hasPrefixFold reports whether the input starts with the ASCII text s,
// ignoring case, and returns the input advanced past it.
func (in input) hasPrefixFold(s string) (input, bool) {
	for i := 0; i < len(s); i++ {
		c, ok := in.peek()
		if !ok || c|0x20 != s[i]|0x20 {
			return in, false
		}
		in = in.advance(1)
	}
	return in, true
}

// hasPrefix reports whether the input starts with s, matched exactly.
func (in input) hasPrefix(s string) (input, bool) {
	for i := 0; i < len(s); i++ {
		c, ok := in.peek()
		if !ok || c != s[i] {
			return in, false
		}
		in = in.advance(1)
	}
	return in, true
}

// clipped reports whether the precision bound, not the source, ends the
// input.
func (in input) clipped() bool {
	return in.limit >= 0 && in.cur.pos >= in.limit && !in.cur.AtEnd()
}

// eofError reports running out of input while reading what. Running into
// the precision bound with input left is a length error.
func (in input) eofError(what string) error {
	if in.clipped() {
		return newError(KindLengthTooShort, "precision too small to read "+what)
	}
	return eofError("end of input while reading " + what)
}

// endError classifies a reader that found nothing to read.
func (in input) endError(what string) error {
	if in.atEnd() {
		return in.eofError(what)
	}
	return valueError("invalid " + what)
}

// skipSpace advances past whitespace code points.
func skipSpace(in input) input {
	for {
		r, n, ok := in.peekRune()
		if !ok || !textutil.IsSpace(r) {
			return in
		}
		in = in.advance(n)
	}
}

// skipFill advances past repetitions of fill.
func skipFill(in input, fill rune) input {
	for {
		r, n, ok := in.peekRune()
		if !ok || r != fill {
			return in
		}
		in = in.advance(n)
	}
}

// clip returns the logical position n code points after c, stopping at the
// end of the source.
func clip(c Cursor, n int) int {
	for ; n > 0; n-- {
		lead, ok := c.Peek()
		if !ok {
			break
		}
		size := textutil.CodePointLength(lead)
		if size == 0 {
			size = 1
		}
		c = c.Advance(size)
	}
	return c.pos
}

// countCodePoints counts the code points between two cursors.
func countCodePoints(from, to Cursor) int {
	n := 0
	for from.pos < to.pos {
		lead, ok := from.Peek()
		if !ok {
			break
		}
		size := textutil.CodePointLength(lead)
		if size == 0 {
			size = 1
		}
		from = from.Advance(size)
		n++
	}
	return n
}

// readSign consumes an optional sign according to spec.
func readSign(in input, spec *Spec) (input, bool, error) {
	c, ok := in.peek()
	if !ok {
		return in, false, in.eofError("sign")
	}
	switch c {
	case '-':
		return in.advance(1), true, nil
	case '+':
		return in.advance(1), false, nil
	}
	if spec.Sign == SignRequired {
		return in, false, valueError("sign required by '+'")
	}
	return in, false, nil
}

// checkCommonSpecs rejects the numeric-only flags on a non-numeric kind.
func checkCommonSpecs(spec *Spec, what string) error {
	switch {
	case spec.Sign != SignDefault:
		return formatErrorf("sign is not allowed for %s", what)
	case spec.Alternate:
		return formatErrorf("'#' is not allowed for %s", what)
	case spec.ZeroPad:
		return formatErrorf("'0' is not allowed for %s", what)
	case spec.ThousandsSep:
		return formatErrorf("thousands separators are not allowed for %s", what)
	}
	return nil
}
