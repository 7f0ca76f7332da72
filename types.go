package scanfmt

// Source supplies code units to a non-contiguous Buffer in chunks.
// Implementations batch physical reads; the Buffer copies every chunk it
// receives, so a Source may reuse the returned slice.
type Source interface {
	// Next returns the next chunk. It returns io.EOF once exhausted.
	// A non-empty chunk may be returned together with an error.
	Next() ([]byte, error)
}

// Syncer is implemented by sources with externally observable state
// (files, shared readers). Sync receives the code units that were pulled
// from the source but never consumed, and must un-read them so an
// independent later read sees them again.
type Syncer interface {
	Sync(unconsumed []byte) error
}

// Range is a type-erased forward sequence of code units.
// The Buffer only ever talks to a Range through these four operations.
type Range interface {
	// Index returns the number of units advanced past so far.
	Index() int
	// Advance skips n units.
	Advance(n int)
	// AtEnd reports whether the sequence is exhausted.
	AtEnd() bool
	// Value returns the unit at the current index. Only valid if !AtEnd().
	Value() byte
}

// Scannable is implemented by user types that scan themselves.
// The engine stores such arguments in a custom slot and calls ScanFrom with
// the raw spec text of the replacement field (without the leading ':').
type Scannable interface {
	ScanFrom(st *State, spec string) error
}

// ScanFunc is a function adapter for the Scannable interface.
type ScanFunc func(st *State, spec string) error

// ScanFrom calls f(st, spec).
func (f ScanFunc) ScanFrom(st *State, spec string) error {
	return f(st, spec)
}

// Addr is a scannable pointer-sized address, read in hexadecimal.
type Addr uintptr
