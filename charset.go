package scanfmt

import (
	"strings"

	"github.com/Azhovan/scanfmt/internal/textutil"
)

// CharSet is a compiled [character set] predicate. The zero value matches
// nothing.
type CharSet struct {
	text    string
	negate  bool
	ascii   [2]uint64 // membership of code points < 128
	ranges  []runeRange
	classes []func(rune) bool
}

type runeRange struct {
	lo, hi rune
}

var charClasses = map[string]func(rune) bool{
	"alnum":  func(r rune) bool { return isAlpha(r) || isDigit(r) },
	"alpha":  isAlpha,
	"blank":  func(r rune) bool { return r == ' ' || r == '\t' },
	"cntrl":  func(r rune) bool { return r < 0x20 || r == 0x7f },
	"digit":  isDigit,
	"graph":  func(r rune) bool { return r > 0x20 && r < 0x7f },
	"lower":  func(r rune) bool { return r >= 'a' && r <= 'z' },
	"print":  func(r rune) bool { return r >= 0x20 && r < 0x7f },
	"punct":  isPunct,
	"space":  textutil.IsSpace,
	"upper":  func(r rune) bool { return r >= 'A' && r <= 'Z' },
	"xdigit": func(r rune) bool { return isDigit(r) || (r|0x20 >= 'a' && r|0x20 <= 'f') },
}

func isAlpha(r rune) bool { return (r|0x20) >= 'a' && (r|0x20) <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isWord(r rune) bool  { return isAlpha(r) || isDigit(r) || r == '_' }

func isPunct(r rune) bool {
	return r > 0x20 && r < 0x7f && !isAlpha(r) && !isDigit(r)
}

func not(f func(rune) bool) func(rune) bool {
	return func(r rune) bool { return !f(r) }
}

// backslashClass maps the letter after '\' to its class.
func backslashClass(c byte) func(rune) bool {
	switch c {
	case 'l':
		return isAlpha
	case 'L':
		return not(isAlpha)
	case 'w':
		return isWord
	case 'W':
		return not(isWord)
	case 's':
		return textutil.IsSpace
	case 'S':
		return not(textutil.IsSpace)
	case 'd':
		return isDigit
	case 'D':
		return not(isDigit)
	}
	return nil
}

// CompileCharSet compiles set, including the surrounding brackets.
//
//	set   := '[' ['^'] [']'] item* ']'
//	item  := ':' class ':' | '\' (l|L|w|W|s|S|d|D) | '\' char | char ['-' char]
func CompileCharSet(set string) (*CharSet, error) {
	if len(set) < 2 || set[0] != '[' || set[len(set)-1] != ']' {
		return nil, formatErrorf("invalid character set %q", set)
	}
	cs := &CharSet{text: set}
	body := set[1 : len(set)-1]
	i := 0
	if i < len(body) && body[i] == '^' {
		cs.negate = true
		i++
	}
	if i < len(body) && body[i] == ']' {
		cs.add(']', ']')
		i++
	}

	for i < len(body) {
		switch body[i] {
		case ':':
			if end := strings.IndexByte(body[i+1:], ':'); end > 0 {
				if f, ok := charClasses[body[i+1:i+1+end]]; ok {
					cs.classes = append(cs.classes, f)
					i += end + 2
					continue
				}
			}
		case '\\':
			if i+1 >= len(body) {
				return nil, formatError("trailing '\\' in character set")
			}
			if f := backslashClass(body[i+1]); f != nil {
				cs.classes = append(cs.classes, f)
				i += 2
				continue
			}
		}

		lo, n, err := setRune(body, i)
		if err != nil {
			return nil, err
		}
		i += n
		if i+1 < len(body) && body[i] == '-' {
			hi, m, err := setRune(body, i+1)
			if err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, formatErrorf("invalid range %q-%q in character set", lo, hi)
			}
			cs.add(lo, hi)
			i += 1 + m
			continue
		}
		cs.add(lo, lo)
	}
	return cs, nil
}

// setRune decodes one literal (possibly escaped) code point of a set body.
func setRune(body string, i int) (rune, int, error) {
	if body[i] == '\\' {
		if i+1 >= len(body) {
			return 0, 0, formatError("trailing '\\' in character set")
		}
		switch c := body[i+1]; c {
		case '\\', ':', ']', '^', '-', '[':
			return rune(c), 2, nil
		default:
			return 0, 0, formatErrorf("invalid escape '\\%c' in character set", c)
		}
	}
	r, n := textutil.DecodeString(body[i:])
	if r == textutil.Invalid {
		return 0, 0, formatError("invalid encoding in character set")
	}
	return r, n, nil
}

func (s *CharSet) add(lo, hi rune) {
	for ; lo <= hi && lo < 128; lo++ {
		s.ascii[lo/64] |= 1 << (lo % 64)
	}
	if lo <= hi {
		s.ranges = append(s.ranges, runeRange{lo, hi})
	}
}

// Contains reports whether r is matched by the set.
func (s *CharSet) Contains(r rune) bool {
	if s == nil || r < 0 {
		return false
	}
	return s.match(r) != s.negate
}

func (s *CharSet) match(r rune) bool {
	if r < 128 && s.ascii[r/64]&(1<<(r%64)) != 0 {
		return true
	}
	for _, rg := range s.ranges {
		if r >= rg.lo && r <= rg.hi {
			return true
		}
	}
	for _, f := range s.classes {
		if f(r) {
			return true
		}
	}
	return false
}

// String returns the source text of the set.
func (s *CharSet) String() string {
	if s == nil {
		return ""
	}
	return s.text
}
