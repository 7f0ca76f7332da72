package scanfmt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func scannedResult(t *testing.T) Result {
	t.Helper()
	var n int
	var s string
	res, err := Scan("x=12 y=ab tail", "x={} y={}", &n, &s)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	return res
}

func TestDumpResult_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpResult(&buf, scannedResult(t)); err != nil {
		t.Fatalf("DumpResult failed: %v", err)
	}

	want := "position: 9\n" +
		"{0} int [2, 4): \"12\"\n" +
		"{1} string [7, 9): \"ab\"\n"
	if got := buf.String(); got != want {
		t.Errorf("text dump\ngot:  %q\nwant: %q", got, want)
	}
}

func TestDumpResult_WithRest(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpResult(&buf, scannedResult(t), WithRest()); err != nil {
		t.Fatalf("DumpResult failed: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "rest: \" tail\"\n") {
		t.Errorf("Expected the rest of the input at the end, got: %s", buf.String())
	}
}

func TestDumpResult_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpResult(&buf, scannedResult(t), AsJSON(), WithRest()); err != nil {
		t.Fatalf("DumpResult failed: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, buf.String())
	}

	if got["position"] != float64(9) {
		t.Errorf("position = %v, want 9", got["position"])
	}
	if got["rest"] != " tail" {
		t.Errorf("rest = %v, want %q", got["rest"], " tail")
	}
	fields, ok := got["fields"].([]any)
	if !ok || len(fields) != 2 {
		t.Fatalf("fields = %v, want an array of 2", got["fields"])
	}

	first, ok := fields[0].(map[string]any)
	if !ok {
		t.Fatalf("field 0 = %T, want an object", fields[0])
	}
	if first["kind"] != "int" || first["text"] != "12" || first["begin"] != float64(2) {
		t.Errorf("field 0 = %v, want kind int, text 12, begin 2", first)
	}

	if !strings.Contains(buf.String(), "\n  \"position\"") {
		t.Errorf("Expected two-space indentation by default, got: %s", buf.String())
	}
}

func TestDumpResult_CompactJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpResult(&buf, scannedResult(t), AsJSON(), WithIndent("")); err != nil {
		t.Fatalf("DumpResult failed: %v", err)
	}

	out := buf.String()
	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("compact JSON should be a single line, got %d lines: %s", n, out)
	}
	if strings.Contains(out, "\"rest\"") {
		t.Errorf("rest should be omitted without WithRest, got: %s", out)
	}
}

func TestDumpResult_Empty(t *testing.T) {
	res, err := Scan("", "")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	var buf bytes.Buffer
	if err := DumpResult(&buf, res, AsJSON(), WithIndent("")); err != nil {
		t.Fatalf("DumpResult failed: %v", err)
	}
	want := "{\"position\":0,\"fields\":[]}\n"
	if got := buf.String(); got != want {
		t.Errorf("empty dump\ngot:  %q\nwant: %q", got, want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestDumpResult_WriteError(t *testing.T) {
	err := DumpResult(failingWriter{}, scannedResult(t))
	if err == nil || !strings.Contains(err.Error(), "write error") {
		t.Errorf("text dump error = %v, want a write error", err)
	}

	err = DumpResult(failingWriter{}, scannedResult(t), AsJSON())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("JSON dump error = %v, want the writer's error", err)
	}
}
