package scanfmt

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

// dumpConfig holds options for DumpResult.
type dumpConfig struct {
	withRest bool   // Include the unconsumed input
	asJSON   bool   // Output as JSON instead of text format
	indent   string // Indentation for JSON output (default: "  ")
}

// WithRest includes the unconsumed input in the output. For non-contiguous
// buffers this reads the source to exhaustion.
func WithRest() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.withRest = true
	}
}

// AsJSON outputs the result as JSON instead of text format.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.asJSON = true
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces ("  "). An empty indent produces compact JSON.
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

type fieldDump struct {
	ID    int     `json:"id"`
	Kind  ArgKind `json:"kind"`
	Begin int     `json:"begin"`
	End   int     `json:"end"`
	Text  string  `json:"text"`
}

type resultDump struct {
	Position int         `json:"position"`
	Fields   []fieldDump `json:"fields"`
	Rest     *string     `json:"rest,omitempty"`
}

// DumpResult writes a human-readable representation of a scan result: the
// final position and the span and text of every scanned field.
// Returns an error if writing to the writer fails.
func DumpResult(w io.Writer, res Result, opts ...DumpOption) error {
	config := dumpConfig{
		indent: "  ",
	}
	for _, opt := range opts {
		opt(&config)
	}

	dump := resultDump{Position: res.Position, Fields: make([]fieldDump, 0, len(res.Fields))}
	for _, f := range res.Fields {
		dump.Fields = append(dump.Fields, fieldDump{
			ID:    f.ID,
			Kind:  f.Kind,
			Begin: f.Begin,
			End:   f.End,
			Text:  res.Text(f),
		})
	}
	if config.withRest {
		rest := res.Rest()
		dump.Rest = &rest
	}

	if config.asJSON {
		return dumpAsJSON(w, dump, config)
	}
	return dumpAsText(w, dump)
}

// dumpAsText outputs one line per field.
func dumpAsText(w io.Writer, dump resultDump) error {
	if _, err := fmt.Fprintf(w, "position: %d\n", dump.Position); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	for _, f := range dump.Fields {
		if _, err := fmt.Fprintf(w, "{%d} %s [%d, %d): %q\n", f.ID, f.Kind, f.Begin, f.End, f.Text); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}
	if dump.Rest != nil {
		if _, err := fmt.Fprintf(w, "rest: %q\n", *dump.Rest); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}
	return nil
}

// dumpAsJSON outputs the result as a single JSON document.
func dumpAsJSON(w io.Writer, dump resultDump, config dumpConfig) error {
	var data []byte
	var err error
	if config.indent != "" {
		data, err = json.MarshalIndent(dump, "", config.indent)
	} else {
		data, err = json.Marshal(dump)
	}
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}
