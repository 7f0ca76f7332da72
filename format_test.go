package scanfmt

import (
	"testing"
)

// tokens drains a parser, closing every field with its spec.
func tokens(t *testing.T, format string) ([]token, error) {
	t.Helper()
	p := newFormatParser(format)
	var out []token
	for {
		tok, err := p.next()
		if err != nil {
			return out, err
		}
		if tok.kind == tokenEOF {
			return out, nil
		}
		if tok.kind == tokenField {
			if _, err := p.spec(func(int) (int, error) { return 1, nil }); err != nil {
				return out, err
			}
		}
		out = append(out, tok)
	}
}

func TestFormatParser_Tokens(t *testing.T) {
	toks, err := tokens(t, "x={} y={:d}{{}}")
	if err != nil {
		t.Fatalf("tokens failed: %v", err)
	}
	want := []token{
		{kind: tokenLiteral, text: "x=", offset: 0},
		{kind: tokenField, id: 0, offset: 2},
		{kind: tokenLiteral, text: " y=", offset: 4},
		{kind: tokenField, id: 1, hasSpec: true, offset: 7},
	}
	if len(toks) != 6 {
		t.Fatalf("expected 6 tokens, got %d: %+v", len(toks), toks)
	}
	for i, w := range want {
		if toks[i] != w {
			t.Errorf("token %d\ngot:  %+v\nwant: %+v", i, toks[i], w)
		}
	}
	if toks[4].text != "{" || toks[5].text != "}" {
		t.Errorf("escaped braces = %q %q, want \"{\" \"}\"", toks[4].text, toks[5].text)
	}
}

func TestFormatParser_ExplicitIDs(t *testing.T) {
	toks, err := tokens(t, "{1} {0}")
	if err != nil {
		t.Fatalf("tokens failed: %v", err)
	}
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(toks))
	}
	if toks[0].id != 1 || toks[2].id != 0 {
		t.Errorf("ids = %d, %d, want 1, 0", toks[0].id, toks[2].id)
	}
}

func TestFormatParser_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{"automatic then explicit", "{} {0}"},
		{"explicit then automatic", "{0} {}"},
		{"nested automatic after explicit", "{0:{}}"},
		{"unmatched close", "a}b"},
		{"unterminated field", "{"},
		{"unterminated spec", "{:d"},
		{"bad id", "{x}"},
		{"id too large", "{99999999999}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens(t, tt.format)
			if err == nil {
				t.Fatalf("tokens(%q) succeeded, want error", tt.format)
			}
			if got := KindOf(err); got != KindInvalidFormatString {
				t.Errorf("KindOf() = %q, want %q", got, KindInvalidFormatString)
			}
		})
	}
}

func TestFormatParser_RawSpec(t *testing.T) {
	p := newFormatParser("{:a{b}c} tail")
	tok, err := p.next()
	if err != nil || tok.kind != tokenField {
		t.Fatalf("next() = %+v, %v, want a field", tok, err)
	}

	raw, err := p.rawSpec()
	if err != nil {
		t.Fatalf("rawSpec failed: %v", err)
	}
	if raw != "a{b}c" {
		t.Errorf("rawSpec() = %q, want %q", raw, "a{b}c")
	}

	tok, err = p.next()
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if tok.text != " tail" {
		t.Errorf("literal = %q, want %q", tok.text, " tail")
	}
	if !p.done() {
		t.Error("parser should be done")
	}
}

func TestFormatParser_NextWithOpenField(t *testing.T) {
	p := newFormatParser("{}")
	if _, err := p.next(); err != nil {
		t.Fatalf("next failed: %v", err)
	}

	_, err := p.next()
	if got := KindOf(err); got != KindInvalidFormatString {
		t.Errorf("KindOf() = %q, want %q", got, KindInvalidFormatString)
	}
}

func TestParserState_String(t *testing.T) {
	tests := []struct {
		state parserState
		want  string
	}{
		{stateLiteral, "literal"},
		{stateSpecBody, "spec-body"},
		{parserState(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("parserState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
