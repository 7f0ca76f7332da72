package scanfmt

import (
	"errors"
	"fmt"
)

// ErrorKind classifies scan failures. The set is closed.
type ErrorKind string

// Error kinds reported by ScanError.
const (
	// KindInvalidFormatString: malformed field or spec, id-numbering mix,
	// unterminated field, option/type mismatch, unvisited arguments.
	KindInvalidFormatString ErrorKind = "invalid_format_string"
	// KindEndOfInput: the source was exhausted where more input was required.
	KindEndOfInput ErrorKind = "end_of_input"
	// KindInvalidScannedValue: well-formed input of the wrong shape for the type.
	KindInvalidScannedValue ErrorKind = "invalid_scanned_value"
	// KindValueOutOfRange: parseable but not representable. A best-effort value is still written.
	KindValueOutOfRange ErrorKind = "value_out_of_range"
	// KindInvalidEncoding: malformed multi-unit character sequence.
	KindInvalidEncoding ErrorKind = "invalid_encoding"
	// KindLengthTooShort: declared width unsatisfiable by the consumed input.
	KindLengthTooShort ErrorKind = "length_too_short"
)

// Sentinels for errors.Is matching against a *ScanError of the same kind.
var (
	ErrInvalidFormatString = &ScanError{Kind: KindInvalidFormatString}
	ErrEndOfInput          = &ScanError{Kind: KindEndOfInput}
	ErrInvalidScannedValue = &ScanError{Kind: KindInvalidScannedValue}
	ErrValueOutOfRange     = &ScanError{Kind: KindValueOutOfRange}
	ErrInvalidEncoding     = &ScanError{Kind: KindInvalidEncoding}
	ErrLengthTooShort      = &ScanError{Kind: KindLengthTooShort}
)

// ErrSyncNotSupported is returned by Buffer.Sync when the source cannot
// take back unconsumed input.
var ErrSyncNotSupported = errors.New("scanfmt: sync not supported by this source")

// ScanError is the single error type returned by scanning operations.
type ScanError struct {
	Kind ErrorKind
	Msg  string
	Pos  int   // Logical source position where scanning stopped
	Err  error // Underlying cause (I/O errors), if any
}

// Error formats the error as "scan failed at position N: kind (message)".
func (e *ScanError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return fmt.Sprintf("scan failed at position %d: %s (%s)", e.Pos, e.Kind, msg)
}

// Unwrap returns the underlying cause.
func (e *ScanError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *ScanError of the same kind.
func (e *ScanError) Is(target error) bool {
	t, ok := target.(*ScanError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

// KindOf returns the ErrorKind of err, or "" if err is not a *ScanError.
func KindOf(err error) ErrorKind {
	var se *ScanError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

func newError(kind ErrorKind, msg string) *ScanError {
	return &ScanError{Kind: kind, Msg: msg}
}

func formatError(msg string) *ScanError {
	return &ScanError{Kind: KindInvalidFormatString, Msg: msg}
}

func formatErrorf(format string, args ...any) *ScanError {
	return &ScanError{Kind: KindInvalidFormatString, Msg: fmt.Sprintf(format, args...)}
}

func valueError(msg string) *ScanError {
	return &ScanError{Kind: KindInvalidScannedValue, Msg: msg}
}

func eofError(msg string) *ScanError {
	return &ScanError{Kind: KindEndOfInput, Msg: msg}
}

// atPos stamps the position on a *ScanError (copying it) or wraps a foreign error.
func atPos(err error, pos int) error {
	if err == nil {
		return nil
	}
	var se *ScanError
	if errors.As(err, &se) {
		cp := *se
		cp.Pos = pos
		return &cp
	}
	return &ScanError{Kind: KindInvalidScannedValue, Msg: err.Error(), Pos: pos, Err: err}
}
