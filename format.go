package scanfmt

import (
	"strings"
)

// parserState tracks where the format parser is within the format string.
type parserState uint8

const (
	stateLiteral parserState = iota
	stateArgumentOpen
	stateArgumentID
	stateSpecOpen
	stateSpecBody
	stateSpecClose
)

func (s parserState) String() string {
	switch s {
	case stateLiteral:
		return "literal"
	case stateArgumentOpen:
		return "argument-open"
	case stateArgumentID:
		return "argument-id"
	case stateSpecOpen:
		return "spec-open"
	case stateSpecBody:
		return "spec-body"
	case stateSpecClose:
		return "spec-close"
	default:
		return "unknown"
	}
}

// idMode records which argument numbering a format string committed to.
type idMode uint8

const (
	idUnset idMode = iota
	idAuto
	idExplicit
)

type tokenKind uint8

const (
	tokenEOF tokenKind = iota
	tokenLiteral
	tokenField
)

// token is either a run of literal text (escapes already resolved) or the
// opening of a replacement field. For fields, the parser is left positioned
// at the spec body; the engine must call spec, rawSpec or closeField next.
type token struct {
	kind    tokenKind
	text    string // literal text
	id      int    // resolved argument id
	hasSpec bool
	offset  int // byte offset of the token in the format string
}

// formatParser tokenizes a format string lazily.
type formatParser struct {
	format   string
	pos      int
	state    parserState
	mode     idMode
	nextAuto int
}

func newFormatParser(format string) *formatParser {
	return &formatParser{format: format}
}

// next returns the next token.
func (p *formatParser) next() (token, error) {
	if p.state != stateLiteral {
		return token{}, formatErrorf("replacement field at offset %d not closed", p.pos)
	}
	if p.pos >= len(p.format) {
		return token{kind: tokenEOF, offset: p.pos}, nil
	}

	start := p.pos
	rest := p.format[p.pos:]
	i := strings.IndexAny(rest, "{}")
	if i > 0 {
		p.pos += i
		return token{kind: tokenLiteral, text: rest[:i], offset: start}, nil
	}
	if i < 0 {
		p.pos = len(p.format)
		return token{kind: tokenLiteral, text: rest, offset: start}, nil
	}

	// rest starts with a brace
	if rest[0] == '}' {
		if len(rest) > 1 && rest[1] == '}' {
			p.pos += 2
			return token{kind: tokenLiteral, text: "}", offset: start}, nil
		}
		return token{}, formatErrorf("unmatched '}' at offset %d", start)
	}
	if len(rest) > 1 && rest[1] == '{' {
		p.pos += 2
		return token{kind: tokenLiteral, text: "{", offset: start}, nil
	}

	p.state = stateArgumentOpen
	p.pos++
	return p.field(start)
}

// field parses the argument id of a replacement field.
func (p *formatParser) field(start int) (token, error) {
	if p.pos >= len(p.format) {
		return token{}, formatError("unexpected end of replacement field")
	}
	p.state = stateArgumentID

	id, explicit, err := p.argID()
	if err != nil {
		return token{}, err
	}
	if explicit {
		id, err = p.explicitID(id)
	} else {
		id, err = p.autoID()
	}
	if err != nil {
		return token{}, err
	}

	if p.pos >= len(p.format) {
		return token{}, formatError("missing '}' in format string")
	}
	switch p.format[p.pos] {
	case '}':
		p.state = stateSpecClose
		return token{kind: tokenField, id: id, offset: start}, nil
	case ':':
		p.pos++
		p.state = stateSpecBody
		return token{kind: tokenField, id: id, hasSpec: true, offset: start}, nil
	default:
		return token{}, formatErrorf("invalid character %q in argument id", p.format[p.pos])
	}
}

// argID reads an optional decimal argument id.
func (p *formatParser) argID() (id int, explicit bool, err error) {
	begin := p.pos
	for p.pos < len(p.format) && p.format[p.pos] >= '0' && p.format[p.pos] <= '9' {
		d := int(p.format[p.pos] - '0')
		if id > (maxFieldInt-d)/10 {
			return 0, false, formatError("argument id too large")
		}
		id = id*10 + d
		p.pos++
	}
	return id, p.pos > begin, nil
}

// autoID returns the next automatically numbered id.
func (p *formatParser) autoID() (int, error) {
	if p.mode == idExplicit {
		return 0, formatError("cannot switch from explicit to automatic argument numbering")
	}
	p.mode = idAuto
	id := p.nextAuto
	p.nextAuto++
	return id, nil
}

// explicitID validates an explicitly numbered id.
func (p *formatParser) explicitID(id int) (int, error) {
	if p.mode == idAuto {
		return 0, formatError("cannot switch from automatic to explicit argument numbering")
	}
	p.mode = idExplicit
	return id, nil
}

// closeField consumes the '}' that ends a replacement field.
func (p *formatParser) closeField() error {
	if p.pos >= len(p.format) || p.format[p.pos] != '}' {
		return formatError("missing '}' in format string")
	}
	p.pos++
	p.state = stateLiteral
	return nil
}

// rawSpec returns the spec text of a field up to its closing brace,
// honoring nested braces, and closes the field.
func (p *formatParser) rawSpec() (string, error) {
	if p.state != stateSpecBody {
		return "", p.closeField()
	}
	begin := p.pos
	depth := 0
	for p.pos < len(p.format) {
		switch p.format[p.pos] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				spec := p.format[begin:p.pos]
				p.state = stateSpecClose
				return spec, p.closeField()
			}
			depth--
		}
		p.pos++
	}
	return "", formatError("unterminated replacement field")
}

// spec parses the spec body of the current field and closes the field.
// nested resolves width/precision fields to their integer values.
func (p *formatParser) spec(nested func(id int) (int, error)) (Spec, error) {
	if p.state != stateSpecBody {
		return DefaultSpec(), p.closeField()
	}
	sp := &specParser{s: p.format, pos: p.pos, nested: func(explicit bool, id int) (int, error) {
		var err error
		if explicit {
			id, err = p.explicitID(id)
		} else {
			id, err = p.autoID()
		}
		if err != nil {
			return 0, err
		}
		if nested == nil {
			return 0, formatError("nested replacement fields are not allowed here")
		}
		return nested(id)
	}}
	spec, err := sp.parse()
	p.pos = sp.pos
	if err != nil {
		return spec, err
	}
	p.state = stateSpecClose
	return spec, p.closeField()
}

// done reports whether the whole format string has been consumed.
func (p *formatParser) done() bool {
	return p.pos >= len(p.format) && p.state == stateLiteral
}
