package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/Azhovan/scanfmt"
	"github.com/Azhovan/scanfmt/sourcefile"
)

func scanCmd() *cli.Command {
	flags := append(formatFlags(),
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "print one JSON object per record",
			Destination: &asJSON,
		},
		&cli.BoolFlag{
			Name:        "spans",
			Usage:       "print the consumed span of every field after each record",
			Destination: &spans,
		},
		&cli.StringFlag{
			Name:        "encoding",
			Usage:       "input encoding (utf-8, utf-16le, utf-16be); detected from a BOM if empty",
			Destination: &encoding,
		},
	)
	return &cli.Command{
		Name:      "scan",
		Usage:     "Scan every line of a file (or stdin) with the format",
		ArgsUsage: "[file]",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, lg := newLogger()

			if strings.TrimSpace(format) == "" {
				return cli.Exit("error: --format is required unless "+envFormat+" is set", 1)
			}
			names, err := parseTypes(typeList)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			s, err := newScanner(lg)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			buf, closeInput, err := openInput(cmd.Args().First())
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			defer closeInput()

			failed, err := scanRecords(s, buf, names, os.Stdout)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if failed > 0 {
				logger.Warn("records failed to scan", "count", failed)
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// openInput returns a buffer over the named file, or stdin for "" and "-".
func openInput(path string) (*scanfmt.Buffer, func(), error) {
	if path == "" || path == "-" {
		return scanfmt.NewReaderBuffer(os.Stdin, scanfmt.DefaultChunkSize), func() {}, nil
	}
	f, err := sourcefile.Open(path, sourcefile.Options{Encoding: encoding, Required: true})
	if err != nil {
		return nil, nil, err
	}
	return f.Buffer(), func() { _ = f.Close() }, nil
}

type record struct {
	Line   int    `json:"line"`
	Values []any  `json:"values,omitempty"`
	Error  string `json:"error,omitempty"`
}

// scanRecords scans every input line on its own as one record. Blank
// lines are counted but produce no record.
func scanRecords(s *scanfmt.Scanner, buf *scanfmt.Buffer, names []string, w io.Writer) (int, error) {
	enc := json.NewEncoder(w)
	failed := 0
	for line := 1; ; line++ {
		text, ok := nextLine(buf)
		if !ok {
			break
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		targets, args := newTargets(names)
		res, err := s.Scan(text, format, args...)

		rec := record{Line: line}
		if err != nil {
			failed++
			rec.Error = err.Error()
		} else {
			for _, t := range targets {
				rec.Values = append(rec.Values, t.value())
			}
		}

		if asJSON {
			if err := enc.Encode(rec); err != nil {
				return failed, fmt.Errorf("write error: %w", err)
			}
		} else if err := writeRecord(w, rec); err != nil {
			return failed, err
		}
		if spans && err == nil {
			opts := []scanfmt.DumpOption{}
			if asJSON {
				opts = append(opts, scanfmt.AsJSON(), scanfmt.WithIndent(""))
			}
			if err := scanfmt.DumpResult(w, res, opts...); err != nil {
				return failed, err
			}
		}
	}
	if err := buf.Err(); err != nil {
		return failed, fmt.Errorf("read input: %w", err)
	}
	return failed, nil
}

func writeRecord(w io.Writer, rec record) error {
	var line string
	if rec.Error != "" {
		line = fmt.Sprintf("%d: error: %s\n", rec.Line, rec.Error)
	} else {
		parts := make([]string, len(rec.Values))
		for i, v := range rec.Values {
			parts[i] = fmt.Sprint(v)
		}
		line = fmt.Sprintf("%d: %s\n", rec.Line, strings.Join(parts, "\t"))
	}
	if _, err := io.WriteString(w, line); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

// nextLine cuts the next line off buf, without its line ending, and
// releases it from the buffer. It returns false at the end of input.
func nextLine(buf *scanfmt.Buffer) (string, bool) {
	begin := buf.Begin()
	if begin.AtEnd() {
		return "", false
	}
	end := begin
	for {
		b, ok := end.Peek()
		if !ok || b == '\n' {
			break
		}
		end = end.Next()
	}
	text := begin.Text(end)
	if !end.AtEnd() {
		end = end.Next()
	}
	buf.Commit(end)
	buf.Discard()
	return strings.TrimSuffix(text, "\r"), true
}
