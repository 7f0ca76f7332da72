package scanfmt

import (
	"strings"

	"github.com/Azhovan/scanfmt/internal/textutil"
)

// maxFieldInt bounds widths, precisions, bases and argument ids.
const maxFieldInt = 1<<31 - 1

// Align is the alignment of a field relative to its fill characters.
type Align uint8

const (
	AlignNone   Align = iota
	AlignLeft         // '<': value, then trailing fill
	AlignRight        // '>': leading fill, then value
	AlignCenter       // '^': fill on both sides
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "<"
	case AlignRight:
		return ">"
	case AlignCenter:
		return "^"
	default:
		return ""
	}
}

// Sign controls sign handling of numeric fields.
type Sign uint8

const (
	SignDefault  Sign = iota // optional sign
	SignRequired             // '+': an explicit sign must be present
	SignOptional             // '-': same as default
)

// Presentation selects how a value is interpreted.
type Presentation uint8

const (
	PresentationNone       Presentation = iota
	PresentationBinary                  // 'b'
	PresentationBase                    // 'B' followed by the base
	PresentationDecimal                 // 'd'
	PresentationGeneric                 // 'i': base detected from prefix
	PresentationUnsigned                // 'u'
	PresentationOctal                   // 'o'
	PresentationHex                     // 'x'
	PresentationFloatHex                // 'a', 'A'
	PresentationScientific              // 'e', 'E'
	PresentationFixed                   // 'f', 'F'
	PresentationGeneral                 // 'g', 'G'
	PresentationString                  // 's'
	PresentationSet                     // '[...]'
	PresentationCharacter               // 'c'
	PresentationCodePoint               // 'U'
	PresentationPointer                 // 'p'
	PresentationRegex                   // '/.../'
)

func (p Presentation) String() string {
	switch p {
	case PresentationBinary:
		return "b"
	case PresentationBase:
		return "B"
	case PresentationDecimal:
		return "d"
	case PresentationGeneric:
		return "i"
	case PresentationUnsigned:
		return "u"
	case PresentationOctal:
		return "o"
	case PresentationHex:
		return "x"
	case PresentationFloatHex:
		return "a"
	case PresentationScientific:
		return "e"
	case PresentationFixed:
		return "f"
	case PresentationGeneral:
		return "g"
	case PresentationString:
		return "s"
	case PresentationSet:
		return "[]"
	case PresentationCharacter:
		return "c"
	case PresentationCodePoint:
		return "U"
	case PresentationPointer:
		return "p"
	case PresentationRegex:
		return "//"
	default:
		return ""
	}
}

// Spec holds the parsed options of a replacement field.
type Spec struct {
	Fill         rune
	Align        Align
	Sign         Sign
	Alternate    bool // '#': base prefix required
	ZeroPad      bool // '0'
	Width        int  // minimum field width in code points, 0 = none
	Precision    int  // maximum field width in code points, -1 = none
	Localized    bool // 'L'
	ThousandsSep bool // '\''
	Type         Presentation
	Base         int      // for PresentationBase
	Set          *CharSet // for PresentationSet
}

// DefaultSpec returns the options of a field without a spec.
func DefaultSpec() Spec {
	return Spec{Fill: ' ', Precision: -1}
}

// base returns the integer base selected by the presentation type.
// 0 means "detect from prefix".
func (s *Spec) base() int {
	switch s.Type {
	case PresentationGeneric:
		return 0
	case PresentationBase:
		return s.Base
	case PresentationBinary:
		return 2
	case PresentationOctal:
		return 8
	case PresentationHex, PresentationPointer:
		return 16
	default:
		return 10
	}
}

// ParseSpec parses spec text (the part of a replacement field after ':').
// Nested width/precision fields are rejected.
func ParseSpec(spec string) (Spec, error) {
	sp := &specParser{s: spec + "}"}
	s, err := sp.parse()
	if err != nil {
		return s, err
	}
	if sp.pos != len(spec) {
		return s, formatErrorf("unexpected %q in spec", spec[sp.pos:])
	}
	return s, nil
}

// specParser parses the spec sub-grammar:
//
//	[[fill] align] [sign] ['#'] ['0'] [width] ['.' precision] ["'"] ['L'] ["'"] [type]
//
// stopping in front of the closing '}'.
type specParser struct {
	s      string
	pos    int
	nested func(explicit bool, id int) (int, error)
}

func (p *specParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *specParser) atClose() bool {
	return p.pos >= len(p.s) || p.s[p.pos] == '}'
}

func (p *specParser) parse() (Spec, error) {
	spec := DefaultSpec()
	if p.pos >= len(p.s) {
		return spec, formatError("unexpected end of format string")
	}

	if err := p.parseAlign(&spec); err != nil {
		return spec, err
	}

	switch p.peek() {
	case '+':
		spec.Sign = SignRequired
		p.pos++
	case '-':
		spec.Sign = SignOptional
		p.pos++
	}
	if p.peek() == '#' {
		spec.Alternate = true
		p.pos++
	}
	if p.peek() == '0' {
		spec.ZeroPad = true
		p.pos++
	}

	width, ok, err := p.parseCount()
	if err != nil {
		return spec, err
	}
	if ok {
		spec.Width = width
	}

	if p.peek() == '.' {
		p.pos++
		prec, ok, err := p.parseCount()
		if err != nil {
			return spec, err
		}
		if !ok {
			return spec, formatError("missing precision after '.'")
		}
		spec.Precision = prec
	}

	for {
		switch p.peek() {
		case '\'':
			if spec.ThousandsSep {
				return spec, formatError("duplicate ' in spec")
			}
			spec.ThousandsSep = true
			p.pos++
			continue
		case 'L':
			if spec.Localized {
				return spec, formatError("duplicate L in spec")
			}
			spec.Localized = true
			p.pos++
			continue
		}
		break
	}

	if p.atClose() {
		if p.pos >= len(p.s) {
			return spec, formatError("missing '}' in format string")
		}
		return spec, nil
	}
	if err := p.parseType(&spec); err != nil {
		return spec, err
	}
	if p.pos >= len(p.s) {
		return spec, formatError("missing '}' in format string")
	}
	if p.s[p.pos] != '}' {
		return spec, formatErrorf("unknown format specifier %q", p.s[p.pos:])
	}
	return spec, nil
}

func alignOf(r rune) Align {
	switch r {
	case '<':
		return AlignLeft
	case '>':
		return AlignRight
	case '^':
		return AlignCenter
	}
	return AlignNone
}

func (p *specParser) parseAlign(spec *Spec) error {
	first, n := textutil.DecodeString(p.s[p.pos:])
	if first == textutil.Invalid {
		return formatError("invalid encoding in fill character")
	}
	if p.pos+n < len(p.s) {
		if a := alignOf(rune(p.s[p.pos+n])); a != AlignNone {
			switch first {
			case '{', '}':
				return formatErrorf("invalid fill character %q", first)
			case '[':
				// '[' always opens a character set
				goto alignOnly
			}
			spec.Fill = first
			spec.Align = a
			p.pos += n + 1
			return nil
		}
	}
alignOnly:
	if a := alignOf(first); a != AlignNone {
		spec.Align = a
		p.pos++
	}
	return nil
}

// parseCount parses a width or precision: digits or a nested field.
func (p *specParser) parseCount() (int, bool, error) {
	c := p.peek()
	if c >= '0' && c <= '9' {
		v := 0
		for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
			d := int(p.s[p.pos] - '0')
			if v > (maxFieldInt-d)/10 {
				return 0, false, formatError("field width too large")
			}
			v = v*10 + d
			p.pos++
		}
		return v, true, nil
	}
	if c != '{' {
		return 0, false, nil
	}

	p.pos++
	id, explicit := 0, false
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		d := int(p.s[p.pos] - '0')
		if id > (maxFieldInt-d)/10 {
			return 0, false, formatError("argument id too large")
		}
		id = id*10 + d
		explicit = true
		p.pos++
	}
	if p.peek() != '}' {
		return 0, false, formatError("invalid nested replacement field")
	}
	p.pos++
	if p.nested == nil {
		return 0, false, formatError("nested replacement fields are not allowed here")
	}
	v, err := p.nested(explicit, id)
	if err != nil {
		return 0, false, err
	}
	if v < 0 {
		return 0, false, formatError("negative width or precision")
	}
	return v, true, nil
}

func (p *specParser) parseType(spec *Spec) error {
	c := p.s[p.pos]
	switch c {
	case '[':
		end, err := setEnd(p.s, p.pos)
		if err != nil {
			return err
		}
		set, err := CompileCharSet(p.s[p.pos:end])
		if err != nil {
			return err
		}
		spec.Type = PresentationSet
		spec.Set = set
		p.pos = end
		return nil
	case '/':
		end := regexEnd(p.s, p.pos)
		if end < 0 {
			return formatError("unterminated regex in format string")
		}
		p.pos = end
		spec.Type = PresentationRegex
		return formatError("regex presentation is not supported")
	case 'B':
		p.pos++
		base := 0
		for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' && base <= 36 {
			base = base*10 + int(p.s[p.pos]-'0')
			p.pos++
		}
		if base < 2 || base > 36 {
			return formatError("invalid base in 'B' presentation, must be in [2, 36]")
		}
		spec.Type = PresentationBase
		spec.Base = base
		return nil
	}

	t := presentationOf(c)
	if t == PresentationNone {
		return formatErrorf("invalid type specifier %q in format string", c)
	}
	spec.Type = t
	p.pos++
	return nil
}

func presentationOf(c byte) Presentation {
	switch c {
	case 'b':
		return PresentationBinary
	case 'd':
		return PresentationDecimal
	case 'i':
		return PresentationGeneric
	case 'u':
		return PresentationUnsigned
	case 'o':
		return PresentationOctal
	case 'x', 'X':
		return PresentationHex
	case 'a', 'A':
		return PresentationFloatHex
	case 'e', 'E':
		return PresentationScientific
	case 'f', 'F':
		return PresentationFixed
	case 'g', 'G':
		return PresentationGeneral
	case 's':
		return PresentationString
	case 'c':
		return PresentationCharacter
	case 'U':
		return PresentationCodePoint
	case 'p':
		return PresentationPointer
	}
	return PresentationNone
}

// setEnd returns the index one past the ']' closing the set opened at begin.
func setEnd(s string, begin int) (int, error) {
	i := begin + 1
	if i < len(s) && s[i] == '^' {
		i++
	}
	if i < len(s) && s[i] == ']' {
		i++
	}
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
			continue
		case ']':
			return i + 1, nil
		}
		i++
	}
	return 0, formatError("unterminated [character set] in format string")
}

// regexEnd returns the index past the closing '/' and trailing flags, or -1.
func regexEnd(s string, begin int) int {
	for i := begin + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '/':
			i++
			for i < len(s) && strings.IndexByte("imsn", s[i]) >= 0 {
				i++
			}
			return i
		}
	}
	return -1
}
