package sourcefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Azhovan/scanfmt"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Options configures file source behavior.
type Options struct {
	// Encoding: "utf-8", "utf-16le" or "utf-16be". Detected from a byte
	// order mark if empty, defaulting to UTF-8.
	Encoding string

	// ChunkSize is the physical read size. Default: scanfmt.DefaultChunkSize.
	ChunkSize int

	// Required: if true, missing files cause an error. Default: false (empty input).
	Required bool
}

// File is a scannable file. Scans continue where the previous one stopped,
// and the file offset always sits right after the consumed input, so other
// readers of the same *os.File see exactly the unconsumed rest.
type File struct {
	path       string
	f          *os.File
	buf        *scanfmt.Buffer
	transcoded bool
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Open opens path for scanning.
func Open(path string, opts Options) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			if opts.Required {
				return nil, fmt.Errorf("required input file not found: %s: %w", path, err)
			}
			return &File{path: path, buf: scanfmt.NewStringBuffer("")}, nil
		}
		return nil, fmt.Errorf("open input file %s: %w", path, err)
	}

	file, err := newFile(path, f, opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	return file, nil
}

// New wraps an already open file, scanning from its current offset.
// Byte order marks are only detected at offset 0.
func New(f *os.File, opts Options) (*File, error) {
	return newFile(f.Name(), f, opts)
}

func newFile(path string, f *os.File, opts Options) (*File, error) {
	enc := strings.ToLower(opts.Encoding)
	if enc == "" {
		detected, err := sniff(f)
		if err != nil {
			return nil, fmt.Errorf("read input file %s: %w", path, err)
		}
		enc = detected
	}

	var decoder *encoding.Decoder
	switch enc {
	case "utf-8", "utf8":
	case "utf-16le", "utf16le":
		decoder = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case "utf-16be", "utf16be":
		decoder = unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	default:
		return nil, fmt.Errorf("unsupported encoding: %s (supported: utf-8, utf-16le, utf-16be)", opts.Encoding)
	}

	file := &File{path: path, f: f}
	if decoder != nil {
		file.transcoded = true
		file.buf = scanfmt.NewSourceBuffer(scanfmt.NewReaderSource(transform.NewReader(f, decoder), opts.ChunkSize))
	} else {
		file.buf = scanfmt.NewReaderBuffer(f, opts.ChunkSize)
	}
	return file, nil
}

// sniff detects a byte order mark at the start of the file and leaves the
// offset after a UTF-8 mark, or at 0 for UTF-16 (the decoder consumes it).
func sniff(f *os.File) (string, error) {
	off, err := f.Seek(0, io.SeekCurrent)
	if err != nil || off != 0 {
		// not seekable, or not at the start: no BOM to detect
		return "utf-8", nil
	}
	head := make([]byte, 3)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	head = head[:n]

	enc, skip := "utf-8", 0
	switch {
	case bytes.HasPrefix(head, bomUTF8):
		skip = len(bomUTF8)
	case bytes.HasPrefix(head, bomUTF16LE):
		enc = "utf-16le"
	case bytes.HasPrefix(head, bomUTF16BE):
		enc = "utf-16be"
	}
	if _, err := f.Seek(int64(skip), io.SeekStart); err != nil {
		return "", err
	}
	return enc, nil
}

// Buffer returns the buffer over the file.
func (f *File) Buffer() *scanfmt.Buffer {
	return f.buf
}

// Transcoded reports whether the file is decoded from UTF-16.
func (f *File) Transcoded() bool {
	return f.transcoded
}

// Scan scans the file from where the previous scan stopped and syncs the
// file offset to the new position.
func (f *File) Scan(format string, args ...any) (scanfmt.Result, error) {
	return f.ScanWith(scanfmt.NewScanner(), format, args...)
}

// ScanWith is Scan with a configured scanner.
func (f *File) ScanWith(s *scanfmt.Scanner, format string, args ...any) (scanfmt.Result, error) {
	res, err := s.ScanBuffer(f.buf, format, args...)
	if serr := f.Sync(); serr != nil && !errors.Is(serr, scanfmt.ErrSyncNotSupported) && err == nil {
		err = serr
	}
	return res, err
}

// Sync hands unconsumed look-ahead back to the file by seeking.
// Transcoded files return scanfmt.ErrSyncNotSupported: their look-ahead
// stays in memory, so later scans through this File still continue
// correctly but the file offset runs ahead of them.
func (f *File) Sync() error {
	if f.f == nil {
		return nil
	}
	if f.transcoded {
		return scanfmt.ErrSyncNotSupported
	}
	if err := f.buf.Sync(f.buf.Position()); err != nil {
		return fmt.Errorf("sync input file %s: %w", f.path, err)
	}
	return nil
}

// Close syncs and closes the file.
func (f *File) Close() error {
	if f.f == nil {
		return nil
	}
	err := f.Sync()
	if errors.Is(err, scanfmt.ErrSyncNotSupported) {
		err = nil
	}
	if cerr := f.f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Name returns a human-readable identifier for this source.
func (f *File) Name() string {
	return "file:" + filepath.Base(f.path)
}
