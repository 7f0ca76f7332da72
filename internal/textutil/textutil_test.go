package textutil

import (
	"testing"
)

func TestCodePointLength(t *testing.T) {
	tests := []struct {
		name string
		lead byte
		want int
	}{
		{"ascii", 'a', 1},
		{"nul", 0x00, 1},
		{"continuation", 0x80, 0},
		{"two byte", 0xc3, 2},
		{"three byte", 0xe2, 3},
		{"four byte", 0xf0, 4},
		{"invalid f8", 0xf8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodePointLength(tt.lead); got != tt.want {
				t.Errorf("CodePointLength(%#x) = %d, want %d", tt.lead, got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  rune
		size  int
	}{
		{"two byte", []byte("é!"), 'é', 2},
		{"truncated", []byte{0xe2, 0x82}, Invalid, 2},
		{"stray continuation", []byte{0x80, 'a'}, Invalid, 1},
		{"empty", nil, Invalid, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, n := Decode(tt.input)
			if r != tt.want || n != tt.size {
				t.Errorf("Decode(%q) = %q, %d, want %q, %d", tt.input, r, n, tt.want, tt.size)
			}
		})
	}

	if r, n := DecodeString("€"); r != '€' || n != 3 {
		t.Errorf("DecodeString(€) = %q, %d, want '€', 3", r, n)
	}
}

func TestIsSpace(t *testing.T) {
	for _, r := range []rune{' ', '\n', '\u00a0', '\u2003'} {
		if !IsSpace(r) {
			t.Errorf("IsSpace(%U) = false, want true", r)
		}
	}
	for _, r := range []rune{'x', 0} {
		if IsSpace(r) {
			t.Errorf("IsSpace(%U) = true, want false", r)
		}
	}
}

func TestDigitValue(t *testing.T) {
	tests := map[byte]int{'7': 7, 'f': 15, 'Z': 35, '-': 255}
	for r, want := range tests {
		if got := DigitValue(r); got != want {
			t.Errorf("DigitValue(%q) = %d, want %d", r, got, want)
		}
	}
}

func TestCountCodePoints(t *testing.T) {
	if got := CountCodePoints(nil); got != 0 {
		t.Errorf("CountCodePoints(nil) = %d, want 0", got)
	}
	if got := CountCodePoints([]byte("aé€")); got != 3 {
		t.Errorf("CountCodePoints(aé€) = %d, want 3", got)
	}
}
