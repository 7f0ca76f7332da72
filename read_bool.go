package scanfmt

// boolReader reads bools as text ("true"/"false", or the locale's names
// with L) and as the digits 0 and 1.
type boolReader struct {
	arg     *Arg
	locale  *Locale
	text    bool
	numeric bool
}

func (r *boolReader) checkSpecs(spec *Spec) error {
	switch spec.Type {
	case PresentationNone:
		r.text, r.numeric = true, true
	case PresentationString:
		r.text, r.numeric = true, false
	case PresentationDecimal, PresentationGeneric, PresentationUnsigned:
		r.text, r.numeric = false, true
	default:
		return formatErrorf("invalid presentation %q for a bool", spec.Type)
	}
	return checkCommonSpecs(spec, "bool")
}

func (r *boolReader) skipWSBeforeRead() bool {
	return true
}

func (r *boolReader) readDefault(in input) (Cursor, error) {
	r.text, r.numeric = true, true
	spec := DefaultSpec()
	return r.readSpecs(in, &spec)
}

func (r *boolReader) readSpecs(in input, spec *Spec) (Cursor, error) {
	if r.text {
		trueName, falseName := "true", "false"
		if spec.Localized {
			trueName, falseName = r.locale.TrueName, r.locale.FalseName
		}
		if out, ok := in.hasPrefix(trueName); ok && trueName != "" {
			r.arg.setBool(true)
			return out.cur, nil
		}
		if out, ok := in.hasPrefix(falseName); ok && falseName != "" {
			r.arg.setBool(false)
			return out.cur, nil
		}
	}
	if r.numeric {
		if c, ok := in.peek(); ok && (c == '0' || c == '1') {
			r.arg.setBool(c == '1')
			return in.advance(1).cur, nil
		}
	}
	return in.cur, in.endError("bool")
}
