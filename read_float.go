package scanfmt

import (
	"errors"
	"math"
	"strconv"

	"github.com/Azhovan/scanfmt/internal/textutil"
)

// floatReader reads float32 and float64 values.
type floatReader struct {
	arg    *Arg
	locale *Locale
}

func (r *floatReader) checkSpecs(spec *Spec) error {
	switch spec.Type {
	case PresentationNone, PresentationFloatHex, PresentationScientific,
		PresentationFixed, PresentationGeneral:
	default:
		return formatErrorf("invalid presentation %q for a float", spec.Type)
	}
	if spec.Alternate {
		return formatError("'#' is not allowed for floats")
	}
	return nil
}

func (r *floatReader) skipWSBeforeRead() bool {
	return true
}

func (r *floatReader) readDefault(in input) (Cursor, error) {
	spec := DefaultSpec()
	return r.readSpecs(in, &spec)
}

func (r *floatReader) readSpecs(in input, spec *Spec) (Cursor, error) {
	in, neg, err := readSign(in, spec)
	if err != nil {
		return in.cur, err
	}

	if out, v, ok := readSpecialFloat(in); ok {
		if neg {
			v = -v
		}
		r.arg.setFloat(v)
		return out.cur, nil
	}

	out, num, err := readFloatText(in, spec, r.locale.numericOptions(spec))
	if err != nil {
		return out.cur, err
	}
	v, err := num.value(r.arg.kind.bits())
	if err != nil && KindOf(err) != KindValueOutOfRange {
		return out.cur, err
	}
	if neg {
		v = -v
	}
	r.arg.setFloat(v)
	return out.cur, err
}

// readSpecialFloat classifies inf, infinity, nan and nan(chars).
func readSpecialFloat(in input) (input, float64, bool) {
	if out, ok := in.hasPrefixFold("inf"); ok {
		if longer, ok := out.hasPrefixFold("inity"); ok {
			out = longer
		}
		return out, math.Inf(1), true
	}
	out, ok := in.hasPrefixFold("nan")
	if !ok {
		return in, 0, false
	}
	if paren, ok := out.hasPrefix("("); ok {
		for {
			c, ok := paren.peek()
			if !ok {
				break
			}
			if c == ')' {
				out = paren.advance(1)
				break
			}
			if !isWord(rune(c)) {
				break
			}
			paren = paren.advance(1)
		}
	}
	return out, math.NaN(), true
}

// floatText is a float literal normalized for strconv, plus the decimal
// mantissa and exponent when they fit the exact fast path.
type floatText struct {
	text     []byte
	hex      bool
	mantissa uint64
	exp10    int
	digits   int // significant decimal digits
	expOK    bool
}

// readFloatText reads the digits, decimal point and exponent of a float.
func readFloatText(in input, spec *Spec, opts numericOptions) (input, floatText, error) {
	var ft floatText
	base := 10
	switch spec.Type {
	case PresentationNone, PresentationFloatHex:
		if next, ok := in.hasPrefixFold("0x"); ok && startsHexMantissa(next, opts) {
			in = next
			ft.hex = true
		} else if spec.Type == PresentationFloatHex {
			ft.hex = true
		}
	}
	if ft.hex {
		base = 16
		ft.text = append(ft.text, "0x"...)
	}

	intIn, intDigits, err := readDigitRun(in, base, opts)
	if err != nil && intIn.cur.pos != in.cur.pos {
		// digits were read, the grouping was wrong
		return intIn, ft, err
	}
	in = intIn
	ft.text = append(ft.text, intDigits...)
	ft.accumulate(intDigits, false)

	var fracDigits []byte
	if r, n, ok := in.peekRune(); ok && r == opts.decimalPoint {
		after := in.advance(n)
		fracIn, digits := readPlainDigits(after, base)
		if len(intDigits) > 0 || len(digits) > 0 {
			in = fracIn
			fracDigits = digits
			ft.text = append(ft.text, '.')
			ft.text = append(ft.text, digits...)
			ft.accumulate(digits, true)
		}
	}
	if len(intDigits) == 0 && len(fracDigits) == 0 {
		return in, ft, in.endError("float")
	}

	marker := byte('e')
	if ft.hex {
		marker = 'p'
	}
	hasExp := false
	if spec.Type != PresentationFixed || ft.hex {
		if c, ok := in.peek(); ok && c|0x20 == marker {
			expIn := in.advance(1)
			sign := byte(0)
			if s, ok := expIn.peek(); ok && (s == '+' || s == '-') {
				sign = s
				expIn = expIn.advance(1)
			}
			if expEnd, digits := readPlainDigits(expIn, 10); len(digits) > 0 {
				in = expEnd
				hasExp = true
				ft.text = append(ft.text, marker)
				if sign != 0 {
					ft.text = append(ft.text, sign)
				}
				ft.text = append(ft.text, digits...)
				ft.addExponent(sign == '-', digits)
			}
		}
	}
	if spec.Type == PresentationScientific && !hasExp {
		return in, ft, valueError("exponent required by 'e'")
	}
	if ft.hex && !hasExp {
		ft.text = append(ft.text, "p0"...)
	}
	return in, ft, nil
}

// startsHexMantissa reports whether a hex digit or a decimal point followed
// by a hex digit starts the input.
func startsHexMantissa(in input, opts numericOptions) bool {
	c, ok := in.peek()
	if !ok {
		return false
	}
	if textutil.DigitValue(c) < 16 {
		return true
	}
	if r, n, ok := in.peekRune(); ok && r == opts.decimalPoint {
		d, ok := in.advance(n).peek()
		return ok && textutil.DigitValue(d) < 16
	}
	return false
}

func readPlainDigits(in input, base int) (input, []byte) {
	var digits []byte
	for {
		c, ok := in.peek()
		if !ok || textutil.DigitValue(c) >= base {
			return in, digits
		}
		digits = append(digits, c)
		in = in.advance(1)
	}
}

// maxExactDigits and maxExactPow10 bound the exact fast path: a mantissa
// of at most 15 decimal digits and a power of ten of at most 22 are both
// exact in a float64, so one multiplication or division rounds correctly.
const (
	maxExactDigits = 15
	maxExactPow10  = 22
)

var exactPow10 = [...]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11,
	1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20, 1e21, 1e22,
}

func (ft *floatText) accumulate(digits []byte, fraction bool) {
	if ft.hex {
		return
	}
	for _, c := range digits {
		if ft.digits == 0 && c == '0' {
			if fraction {
				ft.exp10--
			}
			continue
		}
		ft.digits++
		if ft.digits > maxExactDigits {
			if !fraction {
				ft.exp10++
			}
			continue
		}
		ft.mantissa = ft.mantissa*10 + uint64(c-'0')
		if fraction {
			ft.exp10--
		}
	}
	ft.expOK = true
}

func (ft *floatText) addExponent(neg bool, digits []byte) {
	e := 0
	for _, c := range digits {
		if e > 100000 {
			ft.expOK = false
			return
		}
		e = e*10 + int(c-'0')
	}
	if neg {
		e = -e
	}
	ft.exp10 += e
}

// value converts the literal, taking the exact fast path when possible and
// strconv otherwise. Overflow returns ±Inf with a ValueOutOfRange error.
func (ft *floatText) value(bits int) (float64, error) {
	if bits == 64 && !ft.hex && ft.expOK && ft.digits <= maxExactDigits {
		switch {
		case ft.mantissa == 0:
			return 0, nil
		case ft.exp10 >= 0 && ft.exp10 <= maxExactPow10:
			return float64(ft.mantissa) * exactPow10[ft.exp10], nil
		case ft.exp10 < 0 && -ft.exp10 <= maxExactPow10:
			return float64(ft.mantissa) / exactPow10[-ft.exp10], nil
		}
	}
	v, err := strconv.ParseFloat(string(ft.text), bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, newError(KindValueOutOfRange, "float out of range")
		}
		return 0, valueError("invalid float " + strconv.Quote(string(ft.text)))
	}
	return v, nil
}
