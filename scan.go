package scanfmt

import (
	"errors"
	"io"
)

var defaultScanner = NewScanner()

// Scan scans src according to format, storing values through args.
//
// Each argument is a pointer to a bool, integer, float, string or []byte,
// an Addr pointer, an Arg made by Char or Rune, a Scannable, or an int
// value consumed by a nested width or precision field. Pointers to named
// types with one of those underlying kinds are accepted too.
//
// Strings read from src share its memory.
func Scan(src string, format string, args ...any) (Result, error) {
	return defaultScanner.Scan(src, format, args...)
}

// ScanBytes is Scan over a byte slice.
func ScanBytes(src []byte, format string, args ...any) (Result, error) {
	return defaultScanner.ScanBytes(src, format, args...)
}

// ScanReader scans r. Look-ahead read from r but not consumed is handed
// back when r is an io.Seeker, and lost otherwise; wrap r in a
// SharedSource to keep it across calls.
func ScanReader(r io.Reader, format string, args ...any) (Result, error) {
	return defaultScanner.ScanReader(r, format, args...)
}

// ScanBuffer scans b from its current position with the default scanner.
func ScanBuffer(b *Buffer, format string, args ...any) (Result, error) {
	return defaultScanner.ScanBuffer(b, format, args...)
}

// ScanShared scans a shared source, holding its lock for the call.
func ScanShared(src *SharedSource, format string, args ...any) (Result, error) {
	return defaultScanner.ScanShared(src, format, args...)
}

// Input scans the process standard input.
func Input(format string, args ...any) (Result, error) {
	return defaultScanner.ScanShared(Stdin(), format, args...)
}

// Scan is the package-level Scan with this scanner's configuration.
func (s *Scanner) Scan(src string, format string, args ...any) (Result, error) {
	return s.ScanBuffer(NewStringBuffer(src), format, args...)
}

// ScanBytes is the package-level ScanBytes with this scanner's configuration.
func (s *Scanner) ScanBytes(src []byte, format string, args ...any) (Result, error) {
	return s.ScanBuffer(NewBytesBuffer(src), format, args...)
}

// ScanReader is the package-level ScanReader with this scanner's configuration.
func (s *Scanner) ScanReader(r io.Reader, format string, args ...any) (Result, error) {
	b := NewReaderBuffer(r, DefaultChunkSize)
	res, err := s.ScanBuffer(b, format, args...)
	if serr := b.Sync(res.Position); serr != nil && !errors.Is(serr, ErrSyncNotSupported) && err == nil {
		err = serr
	}
	return res, err
}

// ScanShared scans src, holding its lock for the call. Unconsumed
// look-ahead is kept by src for the next scan.
func (s *Scanner) ScanShared(src *SharedSource, format string, args ...any) (Result, error) {
	b := src.Acquire()
	res, err := s.ScanBuffer(b, format, args...)
	if rerr := src.Release(b); rerr != nil && err == nil {
		err = rerr
	}
	return res, err
}

// Value scans a single value of type T from src. An empty format means "{}".
func Value[T any](src string, format string) (T, error) {
	var v T
	if format == "" {
		format = "{}"
	}
	_, err := Scan(src, format, &v)
	return v, err
}
