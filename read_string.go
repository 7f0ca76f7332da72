package scanfmt

import (
	"github.com/Azhovan/scanfmt/internal/textutil"
)

type stringMode uint8

const (
	modeWord       stringMode = iota // until whitespace
	modeCodeUnits                    // 'c': a fixed number of code units
	modeCodePoints                   // 'U': a fixed number of code points
	modeSet                          // '[...]': while the set matches
)

// stringReader reads string and []byte arguments. Strings read from a
// contiguous buffer share memory with the source.
type stringReader struct {
	arg   *Arg
	mode  stringMode
	count int
	set   *CharSet
}

func (r *stringReader) checkSpecs(spec *Spec) error {
	if err := checkCommonSpecs(spec, "strings"); err != nil {
		return err
	}
	if spec.Localized {
		return formatError("'L' is not allowed for strings")
	}
	r.mode = modeWord
	switch spec.Type {
	case PresentationNone, PresentationString:
	case PresentationCharacter, PresentationCodePoint:
		r.mode = modeCodeUnits
		if spec.Type == PresentationCodePoint {
			r.mode = modeCodePoints
		}
		switch {
		case spec.Width > 0:
			r.count = spec.Width
		case spec.Precision >= 0:
			r.count = spec.Precision
		default:
			return formatErrorf("%q on strings needs a width or precision", spec.Type)
		}
	case PresentationSet:
		r.mode = modeSet
		r.set = spec.Set
	default:
		return formatErrorf("invalid presentation %q for a string", spec.Type)
	}
	return nil
}

func (r *stringReader) skipWSBeforeRead() bool {
	return r.mode == modeWord
}

func (r *stringReader) readDefault(in input) (Cursor, error) {
	r.mode = modeWord
	return r.readSpecs(in, nil)
}

func (r *stringReader) readSpecs(in input, _ *Spec) (Cursor, error) {
	start := in.cur
	var err error
	switch r.mode {
	case modeWord:
		in, err = readWhile(in, func(cp rune) bool { return !textutil.IsSpace(cp) })
	case modeSet:
		in, err = readWhile(in, r.set.Contains)
	case modeCodeUnits:
		n := 0
		for ; n < r.count; n++ {
			if _, ok := in.peek(); !ok {
				break
			}
			in = in.advance(1)
		}
		if n < r.count {
			return in.cur, shortRead(in, n, "code units")
		}
	case modeCodePoints:
		n := 0
		for ; n < r.count; n++ {
			cp, size, ok := in.peekRune()
			if !ok {
				break
			}
			if cp == textutil.Invalid {
				return in.cur, newError(KindInvalidEncoding, "invalid code point in string")
			}
			in = in.advance(size)
		}
		if n < r.count {
			return in.cur, shortRead(in, n, "code points")
		}
	}
	if err != nil {
		return in.cur, err
	}
	if in.cur.pos == start.pos {
		return in.cur, in.endError("string")
	}

	if r.arg.kind == ArgBytes {
		r.arg.setBytes(start.buf.bytes(start.pos, in.cur.pos))
	} else {
		r.arg.setString(start.Text(in.cur))
	}
	return in.cur, nil
}

// readWhile advances while accept holds for the next code point.
func readWhile(in input, accept func(rune) bool) (input, error) {
	for {
		cp, size, ok := in.peekRune()
		if !ok {
			return in, nil
		}
		if cp == textutil.Invalid {
			return in, newError(KindInvalidEncoding, "invalid code point in string")
		}
		if !accept(cp) {
			return in, nil
		}
		in = in.advance(size)
	}
}

func shortRead(in input, n int, what string) error {
	if n == 0 {
		return in.eofError(what)
	}
	return newError(KindLengthTooShort, "input ended before the requested number of "+what)
}

// codeUnitReader reads a single code unit into a byte.
type codeUnitReader struct {
	arg *Arg
	set *CharSet
}

func (r *codeUnitReader) checkSpecs(spec *Spec) error {
	if err := checkCommonSpecs(spec, "characters"); err != nil {
		return err
	}
	if spec.Localized {
		return formatError("'L' is not allowed for characters")
	}
	switch spec.Type {
	case PresentationNone, PresentationCharacter:
	case PresentationSet:
		r.set = spec.Set
	default:
		return formatErrorf("invalid presentation %q for a code unit", spec.Type)
	}
	return nil
}

func (r *codeUnitReader) skipWSBeforeRead() bool {
	return false
}

func (r *codeUnitReader) readDefault(in input) (Cursor, error) {
	r.set = nil
	return r.readSpecs(in, nil)
}

func (r *codeUnitReader) readSpecs(in input, _ *Spec) (Cursor, error) {
	c, ok := in.peek()
	if !ok {
		return in.cur, in.eofError("a character")
	}
	if r.set != nil && (c >= 0x80 || !r.set.Contains(rune(c))) {
		return in.cur, valueError("character not in set " + r.set.String())
	}
	r.arg.setCodeUnit(c)
	return in.advance(1).cur, nil
}

// codePointReader reads a single code point into a rune.
type codePointReader struct {
	arg *Arg
	set *CharSet
}

func (r *codePointReader) checkSpecs(spec *Spec) error {
	if err := checkCommonSpecs(spec, "characters"); err != nil {
		return err
	}
	if spec.Localized {
		return formatError("'L' is not allowed for characters")
	}
	switch spec.Type {
	case PresentationNone, PresentationCharacter, PresentationCodePoint:
	case PresentationSet:
		r.set = spec.Set
	default:
		return formatErrorf("invalid presentation %q for a code point", spec.Type)
	}
	return nil
}

func (r *codePointReader) skipWSBeforeRead() bool {
	return false
}

func (r *codePointReader) readDefault(in input) (Cursor, error) {
	r.set = nil
	return r.readSpecs(in, nil)
}

func (r *codePointReader) readSpecs(in input, _ *Spec) (Cursor, error) {
	cp, size, ok := in.peekRune()
	if !ok {
		return in.cur, in.eofError("a code point")
	}
	if cp == textutil.Invalid {
		return in.cur, newError(KindInvalidEncoding, "invalid code point")
	}
	if r.set != nil && !r.set.Contains(cp) {
		return in.cur, valueError("code point not in set " + r.set.String())
	}
	r.arg.setCodePoint(cp)
	return in.advance(size).cur, nil
}
