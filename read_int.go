package scanfmt

import (
	"github.com/Azhovan/scanfmt/internal/textutil"
)

// intReader reads signed and unsigned integers and Addr values.
type intReader struct {
	arg    *Arg
	locale *Locale
	char   Presentation // 'c' or 'U': read a character as its value
}

func (r *intReader) pointer() bool {
	return r.arg.kind == ArgPointer
}

func (r *intReader) checkSpecs(spec *Spec) error {
	if r.pointer() {
		if spec.Type != PresentationNone && spec.Type != PresentationPointer {
			return formatErrorf("invalid presentation %q for a pointer", spec.Type)
		}
		if spec.Sign != SignDefault || spec.Localized || spec.ThousandsSep {
			return formatError("pointer fields accept only '#', fill, alignment, width and precision")
		}
		return nil
	}

	switch spec.Type {
	case PresentationNone, PresentationBinary, PresentationBase, PresentationDecimal,
		PresentationGeneric, PresentationUnsigned, PresentationOctal, PresentationHex:
		return nil
	case PresentationCodePoint:
		if r.arg.kind.bits() < 32 {
			return formatErrorf("'U' needs an integer of at least 32 bits, got %s", r.arg.kind)
		}
		fallthrough
	case PresentationCharacter:
		if err := checkCommonSpecs(spec, "character presentation"); err != nil {
			return err
		}
		if spec.Localized {
			return formatError("'L' is not allowed for character presentation")
		}
		r.char = spec.Type
		return nil
	}
	return formatErrorf("invalid presentation %q for an integer", spec.Type)
}

func (r *intReader) skipWSBeforeRead() bool {
	return r.char == PresentationNone
}

func (r *intReader) readDefault(in input) (Cursor, error) {
	spec := DefaultSpec()
	return r.readSpecs(in, &spec)
}

func (r *intReader) readSpecs(in input, spec *Spec) (Cursor, error) {
	switch r.char {
	case PresentationCharacter:
		c, ok := in.peek()
		if !ok {
			return in.cur, in.eofError("a character")
		}
		r.store(false, uint64(c))
		return in.advance(1).cur, nil
	case PresentationCodePoint:
		cp, n, ok := in.peekRune()
		if !ok {
			return in.cur, in.eofError("a code point")
		}
		if cp == textutil.Invalid {
			return in.cur, newError(KindInvalidEncoding, "invalid code point")
		}
		r.store(false, uint64(cp))
		return in.advance(n).cur, nil
	}

	if r.pointer() && spec.Type == PresentationNone {
		s := *spec
		s.Type = PresentationPointer
		spec = &s
	}
	return r.read(in, spec)
}

func (r *intReader) read(in input, spec *Spec) (Cursor, error) {
	in, neg, err := readSign(in, spec)
	if err != nil {
		return in.cur, err
	}
	unsigned := r.arg.kind.IsUnsigned() || r.pointer() || spec.Type == PresentationUnsigned
	if neg && unsigned {
		return in.cur, valueError("negative value for an unsigned integer")
	}

	in, base, err := readBasePrefix(in, spec)
	if err != nil {
		return in.cur, err
	}

	limit := r.limit(neg)
	in, mag, overflow, err := readInteger(in, base, limit, r.locale.numericOptions(spec))
	if err != nil {
		return in.cur, err
	}
	if overflow {
		r.store(neg, limit)
		return in.cur, newError(KindValueOutOfRange, "integer out of range for "+r.arg.kind.String())
	}
	r.store(neg, mag)
	return in.cur, nil
}

// limit returns the largest magnitude representable with the given sign.
func (r *intReader) limit(neg bool) uint64 {
	bits := r.arg.kind.bits()
	if r.arg.kind.IsSigned() {
		_, hi := signedLimits(bits)
		if neg {
			return uint64(hi) + 1
		}
		return uint64(hi)
	}
	return unsignedMax(bits)
}

func (r *intReader) store(neg bool, mag uint64) {
	if r.arg.kind.IsSigned() {
		if neg {
			mag = -mag
		}
		r.arg.setInt(int64(mag))
		return
	}
	r.arg.setUint(mag)
}

// readBasePrefix consumes a base prefix allowed by the presentation and
// returns the effective base. Without '#' the prefix is optional; base
// detection ('i') treats a leading 0 as octal and a lone 0 as zero.
func readBasePrefix(in input, spec *Spec) (input, int, error) {
	base := spec.base()
	c, ok := in.peek()
	if !ok {
		return in, base, in.eofError("an integer")
	}
	if c != '0' {
		if spec.Alternate && needsPrefix(base) {
			return in, base, valueError("missing base prefix required by '#'")
		}
		if base == 0 {
			base = 10
		}
		return in, base, nil
	}

	after := in.advance(1)
	marker, _ := after.peek()
	prefixed := func(b int) bool {
		d, ok := after.advance(1).peek()
		return ok && textutil.DigitValue(d) < b
	}
	switch {
	case (base == 16 || base == 0) && marker|0x20 == 'x' && prefixed(16):
		return after.advance(1), 16, nil
	case (base == 2 || base == 0) && marker|0x20 == 'b' && prefixed(2):
		return after.advance(1), 2, nil
	case (base == 8 || base == 0) && marker|0x20 == 'o' && prefixed(8):
		return after.advance(1), 8, nil
	case base == 8 || base == 0:
		// leading zero: octal, or a lone zero; the 0 itself is a digit
		return in, 8, nil
	}
	if spec.Alternate && needsPrefix(base) {
		return in, base, valueError("missing base prefix required by '#'")
	}
	return in, base, nil
}

func needsPrefix(base int) bool {
	return base == 0 || base == 2 || base == 8 || base == 16
}

// readInteger accumulates a digit run. Accumulation stops changing once the
// magnitude would pass limit, but digits are still consumed, so overflow is
// reported after the whole number.
func readInteger(in input, base int, limit uint64, opts numericOptions) (input, uint64, bool, error) {
	in, digits, err := readDigitRun(in, base, opts)
	if err != nil {
		return in, 0, false, err
	}
	b := uint64(base)
	cutoff, cutlim := limit/b, limit%b
	var acc uint64
	for _, c := range digits {
		d := uint64(textutil.DigitValue(c))
		if acc > cutoff || (acc == cutoff && d > cutlim) {
			return in, 0, true, nil
		}
		acc = acc*b + d
	}
	return in, acc, false, nil
}

// readDigitRun reads digits valid in base, with thousands separators when
// opts allows them, and returns the digits without separators.
func readDigitRun(in input, base int, opts numericOptions) (input, []byte, error) {
	var digits []byte
	var groups []int
	group := 0
	for {
		c, ok := in.peek()
		if !ok {
			break
		}
		if textutil.DigitValue(c) < base {
			digits = append(digits, c)
			group++
			in = in.advance(1)
			continue
		}
		if opts.thousandsSep != 0 && group > 0 {
			if sep, n, _ := in.peekRune(); sep == opts.thousandsSep {
				next := in.advance(n)
				if d, ok := next.peek(); ok && textutil.DigitValue(d) < base {
					groups = append(groups, group)
					group = 0
					in = next
					continue
				}
			}
		}
		break
	}
	if len(digits) == 0 {
		return in, nil, in.endError("integer")
	}
	if len(groups) > 0 {
		groups = append(groups, group)
		if !checkGrouping(groups, opts.grouping) {
			return in, nil, valueError("invalid digit grouping")
		}
	}
	return in, digits, nil
}
