package scanfmt

// visit maps an argument slot to the reader of its category. Custom and
// int-value slots are handled by the engine and have no reader.
func visit(a *Arg, loc *Locale) valueReader {
	switch {
	case a.kind == ArgBool:
		return &boolReader{arg: a, locale: loc}
	case a.kind == ArgCodeUnit:
		return &codeUnitReader{arg: a}
	case a.kind == ArgCodePoint:
		return &codePointReader{arg: a}
	case a.kind.IsSigned(), a.kind.IsUnsigned(), a.kind == ArgPointer:
		return &intReader{arg: a, locale: loc}
	case a.kind.IsFloat():
		return &floatReader{arg: a, locale: loc}
	case a.kind == ArgString, a.kind == ArgBytes:
		return &stringReader{arg: a}
	}
	return nil
}
