// Package textutil holds the UTF-8 helpers shared by the scanner readers.
package textutil

import (
	"unicode"
	"unicode/utf8"
)

// Invalid is returned by decoding helpers for malformed input.
const Invalid rune = -1

// lengths maps the top five bits of a leading code unit to the length of
// the encoded code point. Zero marks a continuation byte (never a valid lead).
var lengths = [32]uint8{
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	0, 0, 0, 0, 0, 0, 0, 0,
	2, 2, 2, 2,
	3, 3,
	4,
	0,
}

// CodePointLength returns the number of code units of the code point that
// starts with lead, or 0 if lead cannot start a code point.
func CodePointLength(lead byte) int {
	return int(lengths[lead>>3])
}

// Decode decodes the code point at the start of p.
// It returns (Invalid, n) for malformed input, where n >= 1 is the number of
// code units to skip, and (Invalid, 0) if p is empty.
func Decode(p []byte) (rune, int) {
	if len(p) == 0 {
		return Invalid, 0
	}
	n := CodePointLength(p[0])
	if n == 0 {
		return Invalid, 1
	}
	if n == 1 {
		return rune(p[0]), 1
	}
	if len(p) < n {
		return Invalid, len(p)
	}
	r, size := utf8.DecodeRune(p[:n])
	if r == utf8.RuneError && size <= 1 {
		return Invalid, n
	}
	return r, size
}

// DecodeString is Decode for strings.
func DecodeString(s string) (rune, int) {
	if len(s) == 0 {
		return Invalid, 0
	}
	n := CodePointLength(s[0])
	if n == 0 {
		return Invalid, 1
	}
	if n == 1 {
		return rune(s[0]), 1
	}
	if len(s) < n {
		return Invalid, len(s)
	}
	r, size := utf8.DecodeRuneInString(s[:n])
	if r == utf8.RuneError && size <= 1 {
		return Invalid, n
	}
	return r, size
}

// IsSpace reports whether r is whitespace for literal matching and
// word-mode string reading.
func IsSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return r > 0x7f && unicode.IsSpace(r)
}

// IsASCIISpace is IsSpace restricted to a single code unit.
func IsASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// DigitValue returns the value of b as a digit in bases up to 36, or 255.
func DigitValue(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'z':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'Z':
		return int(b-'A') + 10
	}
	return 255
}

// CountCodePoints counts the code points in p. Malformed sequences count
// as one code point per skipped run.
func CountCodePoints(p []byte) int {
	n := 0
	for i := 0; i < len(p); {
		_, size := Decode(p[i:])
		i += size
		n++
	}
	return n
}
