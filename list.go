package scanfmt

// ListOption configures ScanList.
type ListOption func(*listConfig)

type listConfig struct {
	separator rune // 0 = elements separated by whitespace only
	until     rune // 0 = read to the end of input
	max       int  // 0 = unbounded
	scanner   *Scanner
}

// WithSeparator requires sep between elements. Whitespace around it is
// skipped.
func WithSeparator(sep rune) ListOption {
	return func(cfg *listConfig) {
		cfg.separator = sep
	}
}

// WithUntil stops the list in front of r. r is not consumed.
func WithUntil(r rune) ListOption {
	return func(cfg *listConfig) {
		cfg.until = r
	}
}

// WithMax stops the list after n elements.
func WithMax(n int) ListOption {
	return func(cfg *listConfig) {
		cfg.max = n
	}
}

// WithListScanner scans elements with s instead of the default scanner.
func WithListScanner(s *Scanner) ListOption {
	return func(cfg *listConfig) {
		cfg.scanner = s
	}
}

// ScanList reads values of type T from b, each with elemFormat ("{}" if
// empty), until the input ends, the until rune is next, Max elements were
// read or the next code point is neither whitespace nor a separator.
// Running out of input is the normal end of a list, not an error.
// The buffer is left after the last element and its separator. Input
// consumed by earlier elements is discarded as the list advances.
func ScanList[T any](b *Buffer, elemFormat string, opts ...ListOption) ([]T, error) {
	cfg := listConfig{scanner: defaultScanner}
	for _, opt := range opts {
		opt(&cfg)
	}
	if elemFormat == "" {
		elemFormat = "{}"
	}

	var out []T
	for cfg.max <= 0 || len(out) < cfg.max {
		in := skipSpace(newInput(b.Begin()))
		b.Commit(in.cur)
		b.Discard()
		next, _, ok := in.peekRune()
		if !ok || (cfg.until != 0 && next == cfg.until) {
			break
		}

		var v T
		if _, err := cfg.scanner.ScanBuffer(b, elemFormat, &v); err != nil {
			if KindOf(err) == KindEndOfInput && b.Err() == nil {
				break
			}
			return out, err
		}
		out = append(out, v)

		if !consumeSeparator(b, cfg) {
			break
		}
	}
	return out, nil
}

// consumeSeparator skips whitespace and the separator after an element.
// It reports whether another element may follow.
func consumeSeparator(b *Buffer, cfg listConfig) bool {
	in := skipSpace(newInput(b.Begin()))
	next, size, ok := in.peekRune()
	if !ok {
		b.Commit(in.cur)
		return false
	}
	if cfg.until != 0 && next == cfg.until {
		b.Commit(in.cur)
		return false
	}
	if cfg.separator == 0 {
		return in.cur.pos > b.Position()
	}
	if next != cfg.separator {
		return false
	}
	b.Commit(in.advance(size).cur)
	return true
}
