package scanfmt

// CheckFormat validates format against the argument types without reading
// input: every field must resolve, its spec must parse and suit its
// argument, and every argument must be used. The arguments are not written.
// The Pos of a returned *ScanError is a byte offset into format.
func CheckFormat(format string, args ...any) error {
	return defaultScanner.CheckFormat(format, args...)
}

// CheckFormat is the package-level CheckFormat with this scanner's locale.
func (s *Scanner) CheckFormat(format string, args ...any) error {
	table, err := newArgTable(args)
	if err != nil {
		return err
	}
	p := newFormatParser(format)
	for {
		tok, err := p.next()
		if err != nil {
			return atPos(err, p.pos)
		}
		switch tok.kind {
		case tokenEOF:
			return table.exhausted()
		case tokenField:
			if err := s.checkField(p, table, tok); err != nil {
				return atPos(err, tok.offset)
			}
		}
	}
}

func (s *Scanner) checkField(p *formatParser, table *argTable, tok token) error {
	arg, err := table.get(tok.id)
	if err != nil {
		return err
	}
	switch arg.kind {
	case ArgCustom:
		_, err := p.rawSpec()
		return err
	case ArgIntValue:
		return formatErrorf("argument %d is an int value, not a scan target", tok.id)
	}
	spec, err := p.spec(table.intValue)
	if err != nil {
		return err
	}
	return visit(arg, &s.locale).checkSpecs(&spec)
}
