package scanfmt

import (
	"fmt"
	"log/slog"

	"github.com/Azhovan/scanfmt/internal/textutil"
)

// Scanner scans sources according to format strings.
// A Scanner is safe for concurrent use once configured; configuration
// methods are not.
type Scanner struct {
	locale Locale
	logger *slog.Logger
}

// NewScanner creates a Scanner with the classic locale and logging disabled.
func NewScanner() *Scanner {
	return &Scanner{
		locale: ClassicLocale(),
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithLocale sets the locale used by fields with the L flag.
func (s *Scanner) WithLocale(l Locale) *Scanner {
	s.locale = l
	return s
}

// WithLogger sets the logger receiving debug records. nil disables logging.
func (s *Scanner) WithLogger(l *slog.Logger) *Scanner {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	s.logger = l
	return s
}

// Locale returns the configured locale.
func (s *Scanner) Locale() Locale {
	return s.locale
}

// ScanBuffer scans b from its current position. The buffer's position is
// moved to where scanning stopped, on success and on failure, so a later
// scan resumes there. Arguments already scanned when an error occurs keep
// their values.
func (s *Scanner) ScanBuffer(b *Buffer, format string, args ...any) (Result, error) {
	res := Result{Position: b.Position(), buf: b}

	table, err := newArgTable(args)
	if err != nil {
		return res, atPos(err, b.Position())
	}

	e := &engine{
		s:      s,
		table:  table,
		parser: newFormatParser(format),
		cur:    b.Begin(),
	}
	err = e.run()

	b.Commit(e.cur)
	res.Position = e.cur.pos
	res.Fields = e.fields
	if err != nil {
		if b.Err() != nil && KindOf(err) == KindEndOfInput {
			err = &ScanError{Kind: KindEndOfInput, Msg: "read error", Err: b.Err()}
		}
		err = atPos(err, e.cur.pos)
		s.logger.Debug("scan failed", "pos", e.cur.pos, "kind", KindOf(err), "err", err)
		return res, err
	}
	return res, nil
}

// engine walks one format string over one buffer.
type engine struct {
	s      *Scanner
	table  *argTable
	parser *formatParser
	cur    Cursor
	fields []FieldSpan
}

func (e *engine) run() error {
	for {
		tok, err := e.parser.next()
		if err != nil {
			return err
		}
		switch tok.kind {
		case tokenEOF:
			return e.table.exhausted()
		case tokenLiteral:
			if err := e.matchLiteral(tok.text); err != nil {
				e.s.logger.Debug("literal mismatch", "pos", e.cur.pos, "literal", tok.text)
				return err
			}
		case tokenField:
			if err := e.field(tok); err != nil {
				return err
			}
		}
	}
}

// matchLiteral matches literal format text. A run of format whitespace
// matches one or more whitespace code points of input.
func (e *engine) matchLiteral(text string) error {
	for i := 0; i < len(text); {
		cp, n := textutil.DecodeString(text[i:])
		if textutil.IsSpace(cp) {
			for i < len(text) {
				cp, n = textutil.DecodeString(text[i:])
				if !textutil.IsSpace(cp) {
					break
				}
				i += n
			}
			in := newInput(e.cur)
			if in.atEnd() {
				return eofError("end of input while matching whitespace")
			}
			out := skipSpace(in)
			if out.cur.pos == e.cur.pos {
				return valueError("expected whitespace")
			}
			e.cur = out.cur
			continue
		}

		for k := 0; k < n; k++ {
			c, ok := e.cur.Peek()
			if !ok {
				return eofError(fmt.Sprintf("end of input while matching literal %q", text[i:]))
			}
			if c != text[i+k] {
				return valueError(fmt.Sprintf("literal mismatch: expected %q", text[i:i+n]))
			}
			e.cur = e.cur.Next()
		}
		i += n
	}
	return nil
}

// field resolves the argument of a replacement field, parses its spec and
// reads the value.
func (e *engine) field(tok token) error {
	arg, err := e.table.get(tok.id)
	if err != nil {
		return err
	}
	e.s.logger.Debug("scan field", "arg", tok.id, "kind", arg.kind, "pos", e.cur.pos)

	if arg.kind == ArgCustom {
		raw, err := e.parser.rawSpec()
		if err != nil {
			return err
		}
		return e.readCustom(tok.id, arg, raw)
	}
	if arg.kind == ArgIntValue {
		return formatErrorf("argument %d is an int value, not a scan target", tok.id)
	}

	spec, err := e.parser.spec(e.table.intValue)
	if err != nil {
		return err
	}
	return e.readValue(tok.id, arg, visit(arg, &e.s.locale), &spec, tok.hasSpec)
}

// readValue skips whitespace or fill, clips the view to the precision,
// invokes the reader and enforces the width.
func (e *engine) readValue(id int, arg *Arg, r valueReader, spec *Spec, hasSpec bool) error {
	if err := r.checkSpecs(spec); err != nil {
		return err
	}

	in := newInput(e.cur)
	if spec.Align == AlignNone && r.skipWSBeforeRead() {
		in = skipSpace(in)
	}
	begin := in.cur
	if spec.Precision >= 0 {
		in.limit = clip(begin, spec.Precision)
	}
	if spec.Align == AlignRight || spec.Align == AlignCenter {
		in = skipFill(in, spec.Fill)
	}

	var end Cursor
	var err error
	if hasSpec {
		end, err = r.readSpecs(in, spec)
	} else {
		end, err = r.readDefault(in)
	}
	if err != nil {
		if end.buf != nil {
			e.cur = end
		}
		return err
	}

	if spec.Align == AlignLeft || spec.Align == AlignCenter {
		end = skipFill(in.at(end), spec.Fill).cur
	}
	e.cur = end
	if spec.Width > 0 && countCodePoints(begin, end) < spec.Width {
		return newError(KindLengthTooShort, fmt.Sprintf("field shorter than width %d", spec.Width))
	}
	e.fields = append(e.fields, FieldSpan{ID: id, Kind: arg.kind, Begin: begin.pos, End: end.pos})
	return nil
}

func (e *engine) readCustom(id int, arg *Arg, spec string) error {
	st := &State{e: e, cur: e.cur}
	begin := e.cur
	err := arg.custom.ScanFrom(st, spec)
	if st.cur.pos > e.cur.pos {
		e.cur = st.cur
	}
	if err != nil {
		return err
	}
	e.fields = append(e.fields, FieldSpan{ID: id, Kind: ArgCustom, Begin: begin.pos, End: e.cur.pos})
	return nil
}
