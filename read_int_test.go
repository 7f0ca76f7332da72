package scanfmt

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestScan_Int64(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
		want   int64
		rest   string
	}{
		{"decimal", "42", "{}", 42, ""},
		{"negative", "-17 tail", "{}", -17, " tail"},
		{"plus sign", "+5", "{}", 5, ""},
		{"leading whitespace", " \t\n8", "{}", 8, ""},
		{"hex", "ff", "{:x}", 255, ""},
		{"hex with prefix", "0xFF", "{:x}", 255, ""},
		{"hex prefix without digits", "0xg", "{:x}", 0, "xg"},
		{"binary", "101", "{:b}", 5, ""},
		{"binary with prefix", "0b101", "{:b}", 5, ""},
		{"octal", "017", "{:o}", 15, ""},
		{"octal with prefix", "0o17", "{:o}", 15, ""},
		{"detect hex", "0x1A", "{:i}", 26, ""},
		{"detect octal", "017", "{:i}", 15, ""},
		{"detect binary", "-0b11", "{:i}", -3, ""},
		{"detect decimal", "42", "{:i}", 42, ""},
		{"detect lone zero", "0 ", "{:i}", 0, " "},
		{"base 36", "zz", "{:B36}", 1295, ""},
		{"base 3 stops at digit 3", "1213", "{:B3}", 16, "3"},
		{"decimal stops at prefix", "0x10", "{:d}", 0, "x10"},
		{"alternate hex", "0x1f", "{:#x}", 31, ""},
		{"thousands", "1,234,567", "{:'d}", 1234567, ""},
		{"thousands single group", "999", "{:'d}", 999, ""},
		{"separator needs a digit after it", "1,234,", "{:'d}", 1234, ","},
		{"separators off", "1,234", "{}", 1, ",234"},
		{"explicit sign", "+3", "{:+}", 3, ""},
		{"max", "9223372036854775807", "{}", math.MaxInt64, ""},
		{"min", "-9223372036854775808", "{}", math.MinInt64, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got int64
			res, err := Scan(tt.input, tt.format, &got)
			if err != nil {
				t.Fatalf("Scan(%q, %q) failed: %v", tt.input, tt.format, err)
			}
			if got != tt.want {
				t.Errorf("value = %d, want %d", got, tt.want)
			}
			if rest := res.Rest(); rest != tt.rest {
				t.Errorf("rest = %q, want %q", rest, tt.rest)
			}
		})
	}
}

func TestScan_IntErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
		kind   ErrorKind
	}{
		{"empty", "", "{}", KindEndOfInput},
		{"only whitespace", "   ", "{}", KindEndOfInput},
		{"letters", "abc", "{}", KindInvalidScannedValue},
		{"lone sign", "-", "{}", KindEndOfInput},
		{"sign then letter", "-x", "{}", KindInvalidScannedValue},
		{"sign required", "5", "{:+d}", KindInvalidScannedValue},
		{"prefix required", "ff", "{:#x}", KindInvalidScannedValue},
		{"prefix required by detection", "12", "{:#i}", KindInvalidScannedValue},
		{"bad grouping", "12,34", "{:'d}", KindInvalidScannedValue},
		{"leading group too long", "1234,567", "{:'d}", KindInvalidScannedValue},
		{"positive overflow", "9223372036854775808", "{}", KindValueOutOfRange},
		{"negative overflow", "-9223372036854775809", "{}", KindValueOutOfRange},
		{"string presentation", "1", "{:s}", KindInvalidFormatString},
		{"float presentation", "1", "{:f}", KindInvalidFormatString},
		{"localized char", "a", "{:Lc}", KindInvalidFormatString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got int64
			_, err := Scan(tt.input, tt.format, &got)
			if kind := KindOf(err); kind != tt.kind {
				t.Errorf("Scan(%q, %q) error kind = %q, want %q (err: %v)", tt.input, tt.format, kind, tt.kind, err)
			}
		})
	}
}

func TestScan_IntOverflowSaturates(t *testing.T) {
	var i8 int8
	res, err := Scan("300 7", "{} {}", &i8, new(int))
	if !errors.Is(err, ErrValueOutOfRange) {
		t.Errorf("error = %v, want ErrValueOutOfRange", err)
	}
	if i8 != math.MaxInt8 {
		t.Errorf("value = %d, want %d", i8, math.MaxInt8)
	}
	if res.Position != 3 {
		t.Errorf("Position = %d, want 3 (all digits are consumed)", res.Position)
	}

	_, err = Scan("-129", "{}", &i8)
	if !errors.Is(err, ErrValueOutOfRange) {
		t.Errorf("error = %v, want ErrValueOutOfRange", err)
	}
	if i8 != math.MinInt8 {
		t.Errorf("value = %d, want %d", i8, math.MinInt8)
	}

	if _, err := Scan("-128", "{}", &i8); err != nil {
		t.Fatalf("Scan(-128) failed: %v", err)
	}
	if i8 != math.MinInt8 {
		t.Errorf("value = %d, want %d", i8, math.MinInt8)
	}

	var u16 uint16
	_, err = Scan("65536", "{}", &u16)
	if !errors.Is(err, ErrValueOutOfRange) {
		t.Errorf("uint16 error = %v, want ErrValueOutOfRange", err)
	}
	if u16 != math.MaxUint16 {
		t.Errorf("uint16 value = %d, want %d", u16, math.MaxUint16)
	}

	var u64 uint64
	_, err = Scan("18446744073709551616", "{}", &u64)
	if !errors.Is(err, ErrValueOutOfRange) {
		t.Errorf("uint64 error = %v, want ErrValueOutOfRange", err)
	}
	if u64 != math.MaxUint64 {
		t.Errorf("uint64 value = %d, want %d", u64, uint64(math.MaxUint64))
	}
}

func TestScan_IntLimitsPerKind(t *testing.T) {
	tests := []struct {
		name string
		arg  func() (any, func() int64)
		bits int
	}{
		{"int8", func() (any, func() int64) { v := new(int8); return v, func() int64 { return int64(*v) } }, 8},
		{"int16", func() (any, func() int64) { v := new(int16); return v, func() int64 { return int64(*v) } }, 16},
		{"int32", func() (any, func() int64) { v := new(int32); return v, func() int64 { return int64(*v) } }, 32},
		{"int64", func() (any, func() int64) { v := new(int64); return v, func() int64 { return *v } }, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := signedLimits(tt.bits)

			for _, v := range []int64{lo, hi, 0, -1, 1} {
				arg, get := tt.arg()
				if _, err := Scan(strconv.FormatInt(v, 10), "{}", arg); err != nil {
					t.Fatalf("Scan(%d) failed: %v", v, err)
				}
				if got := get(); got != v {
					t.Errorf("Scan(%d) = %d", v, got)
				}
			}
			if tt.bits == 64 {
				return
			}

			arg, get := tt.arg()
			_, err := Scan(strconv.FormatInt(hi+1, 10), "{}", arg)
			if kind := KindOf(err); kind != KindValueOutOfRange {
				t.Errorf("above max: kind = %q, want %q", kind, KindValueOutOfRange)
			}
			if got := get(); got != hi {
				t.Errorf("above max: value = %d, want %d", got, hi)
			}

			arg, get = tt.arg()
			_, err = Scan(strconv.FormatInt(lo-1, 10), "{}", arg)
			if kind := KindOf(err); kind != KindValueOutOfRange {
				t.Errorf("below min: kind = %q, want %q", kind, KindValueOutOfRange)
			}
			if got := get(); got != lo {
				t.Errorf("below min: value = %d, want %d", got, lo)
			}
		})
	}
}

func TestScan_IntBaseRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 7, 8, 255, -256, 1 << 20, 123456789, -987654321, math.MaxInt64, math.MinInt64}
	bases := map[int]string{2: "{:b}", 8: "{:o}", 10: "{:d}", 16: "{:x}"}

	for base, format := range bases {
		for _, v := range values {
			text := strconv.FormatInt(v, base)
			var got int64
			if _, err := Scan(text, format, &got); err != nil {
				t.Fatalf("base %d, %s: %v", base, text, err)
			}
			if got != v {
				t.Errorf("base %d, %s: got %d, want %d", base, text, got, v)
			}
		}
	}
}

func TestScan_Unsigned(t *testing.T) {
	var u uint
	if _, err := Scan("4294967296", "{}", &u); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if u != 4294967296 {
		t.Errorf("uint value = %d, want 4294967296", u)
	}

	var u8 uint8
	_, err := Scan("-1", "{}", &u8)
	if kind := KindOf(err); kind != KindInvalidScannedValue {
		t.Errorf("negative into uint8: kind = %q, want %q", kind, KindInvalidScannedValue)
	}

	var i int
	_, err = Scan("-1", "{:u}", &i)
	if kind := KindOf(err); kind != KindInvalidScannedValue {
		t.Errorf("negative with u: kind = %q, want %q", kind, KindInvalidScannedValue)
	}

	if _, err := Scan("12", "{:u}", &i); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if i != 12 {
		t.Errorf("value = %d, want 12", i)
	}
}

func TestScan_IntCharacterPresentation(t *testing.T) {
	var i int
	res, err := Scan("  A", "{:c}", &i)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if i != ' ' {
		t.Errorf("'c' does not skip whitespace: value = %q, want ' '", rune(i))
	}
	if res.Position != 1 {
		t.Errorf("Position = %d, want 1", res.Position)
	}

	var cp int32
	if _, err := Scan("é", "{:U}", &cp); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if cp != 'é' {
		t.Errorf("code point = %U, want %U", cp, 'é')
	}

	var small int8
	_, err = Scan("é", "{:U}", &small)
	if kind := KindOf(err); kind != KindInvalidFormatString {
		t.Errorf("U into int8: kind = %q, want %q", kind, KindInvalidFormatString)
	}

	_, err = Scan("\xff", "{:U}", &cp)
	if kind := KindOf(err); kind != KindInvalidEncoding {
		t.Errorf("invalid UTF-8: kind = %q, want %q", kind, KindInvalidEncoding)
	}
}

func TestScan_Addr(t *testing.T) {
	tests := []struct {
		input  string
		format string
		want   Addr
	}{
		{"0x1f", "{}", 0x1f},
		{"dead", "{}", 0xdead},
		{"0XBEEF", "{:p}", 0xbeef},
		{"0x10", "{:#p}", 0x10},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got Addr
			if _, err := Scan(tt.input, tt.format, &got); err != nil {
				t.Fatalf("Scan(%q, %q) failed: %v", tt.input, tt.format, err)
			}
			if got != tt.want {
				t.Errorf("value = %#x, want %#x", got, tt.want)
			}
		})
	}

	var a Addr
	_, err := Scan("10", "{:d}", &a)
	if kind := KindOf(err); kind != KindInvalidFormatString {
		t.Errorf("decimal address: kind = %q, want %q", kind, KindInvalidFormatString)
	}

	_, err = Scan("-1", "{}", &a)
	if kind := KindOf(err); kind != KindInvalidScannedValue {
		t.Errorf("negative address: kind = %q, want %q", kind, KindInvalidScannedValue)
	}
}

func TestScan_NamedIntegerType(t *testing.T) {
	var p port
	if _, err := Scan("8080", "{}", &p); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if p != 8080 {
		t.Errorf("value = %d, want 8080", p)
	}

	_, err := Scan("70000", "{}", &p)
	if !errors.Is(err, ErrValueOutOfRange) {
		t.Errorf("error = %v, want ErrValueOutOfRange", err)
	}
	if p != math.MaxUint16 {
		t.Errorf("value = %d, want %d", p, math.MaxUint16)
	}
}
