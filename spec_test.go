package scanfmt

import (
	"testing"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		spec string
		want Spec
	}{
		{"", DefaultSpec()},
		{"d", Spec{Fill: ' ', Precision: -1, Type: PresentationDecimal}},
		{"*>8.3x", Spec{Fill: '*', Align: AlignRight, Width: 8, Precision: 3, Type: PresentationHex}},
		{"<5", Spec{Fill: ' ', Align: AlignLeft, Width: 5, Precision: -1}},
		{"é^3", Spec{Fill: 'é', Align: AlignCenter, Width: 3, Precision: -1}},
		{"+#010i", Spec{Fill: ' ', Sign: SignRequired, Alternate: true, ZeroPad: true, Width: 10, Precision: -1, Type: PresentationGeneric}},
		{"-d", Spec{Fill: ' ', Sign: SignOptional, Precision: -1, Type: PresentationDecimal}},
		{"'Ld", Spec{Fill: ' ', Precision: -1, ThousandsSep: true, Localized: true, Type: PresentationDecimal}},
		{"L'", Spec{Fill: ' ', Precision: -1, ThousandsSep: true, Localized: true}},
		{"B36", Spec{Fill: ' ', Precision: -1, Type: PresentationBase, Base: 36}},
		{".0s", Spec{Fill: ' ', Precision: 0, Type: PresentationString}},
		{"a", Spec{Fill: ' ', Precision: -1, Type: PresentationFloatHex}},
		{"G", Spec{Fill: ' ', Precision: -1, Type: PresentationGeneral}},
		{"U", Spec{Fill: ' ', Precision: -1, Type: PresentationCodePoint}},
		{"p", Spec{Fill: ' ', Precision: -1, Type: PresentationPointer}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseSpec(tt.spec)
			if err != nil {
				t.Fatalf("ParseSpec(%q) failed: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseSpec(%q)\ngot:  %+v\nwant: %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseSpec_Set(t *testing.T) {
	got, err := ParseSpec("[a-z]")
	if err != nil {
		t.Fatalf("ParseSpec failed: %v", err)
	}
	if got.Type != PresentationSet || got.Set == nil {
		t.Fatalf("ParseSpec(\"[a-z]\") = %+v, want a set", got)
	}
	if !got.Set.Contains('q') || got.Set.Contains('Q') {
		t.Errorf("set %s matched the wrong code points", got.Set)
	}

	// '[' as fill would be ambiguous, so it always opens a set
	got, err = ParseSpec("[<]")
	if err != nil {
		t.Fatalf("ParseSpec failed: %v", err)
	}
	if got.Align != AlignNone {
		t.Errorf("Align = %v, want none", got.Align)
	}
	if got.Set == nil || !got.Set.Contains('<') {
		t.Errorf("ParseSpec(\"[<]\") = %+v, want a set containing '<'", got)
	}
}

func TestParseSpec_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"brace fill", "{<5"},
		{"missing precision", "."},
		{"duplicate L", "LLd"},
		{"duplicate quote", "''d"},
		{"base too small", "B1"},
		{"base too large", "B37"},
		{"unknown type", "k"},
		{"trailing text", "dd"},
		{"unterminated set", "[abc"},
		{"regex", "/[a-z]+/"},
		{"unterminated regex", "/abc"},
		{"nested width", "{}"},
		{"width too large", "99999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSpec(tt.spec)
			if got := KindOf(err); got != KindInvalidFormatString {
				t.Errorf("ParseSpec(%q) error kind = %q, want %q (err: %v)", tt.spec, got, KindInvalidFormatString, err)
			}
		})
	}
}

func TestSpec_Base(t *testing.T) {
	tests := []struct {
		spec string
		want int
	}{
		{"", 10},
		{"d", 10},
		{"u", 10},
		{"i", 0},
		{"b", 2},
		{"o", 8},
		{"x", 16},
		{"p", 16},
		{"B7", 7},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			s, err := ParseSpec(tt.spec)
			if err != nil {
				t.Fatalf("ParseSpec(%q) failed: %v", tt.spec, err)
			}
			if got := s.base(); got != tt.want {
				t.Errorf("base() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPresentation_String(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{PresentationHex.String(), "x"},
		{PresentationSet.String(), "[]"},
		{PresentationNone.String(), ""},
		{AlignRight.String(), ">"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
