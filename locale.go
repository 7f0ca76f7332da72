package scanfmt

// Locale holds the locale-dependent names and separators used by fields
// with the L flag.
type Locale struct {
	DecimalPoint rune
	ThousandsSep rune
	// Grouping lists digit group sizes from the rightmost group leftwards;
	// the last size repeats. Empty means no grouping check.
	Grouping  []int
	TrueName  string
	FalseName string
}

// ClassicLocale returns the "C" locale.
func ClassicLocale() Locale {
	return Locale{
		DecimalPoint: '.',
		ThousandsSep: ',',
		Grouping:     []int{3},
		TrueName:     "true",
		FalseName:    "false",
	}
}

// numericOptions selects the separators a numeric reader accepts.
type numericOptions struct {
	decimalPoint rune
	thousandsSep rune // 0 = separators not accepted
	grouping     []int
}

func (l *Locale) numericOptions(spec *Spec) numericOptions {
	opts := numericOptions{decimalPoint: '.'}
	if spec.Localized && l.DecimalPoint != 0 {
		opts.decimalPoint = l.DecimalPoint
	}
	if spec.ThousandsSep {
		opts.thousandsSep, opts.grouping = ',', []int{3}
		if spec.Localized && l.ThousandsSep != 0 {
			opts.thousandsSep, opts.grouping = l.ThousandsSep, l.Grouping
		}
	}
	return opts
}

// checkGrouping validates digit group lengths, given left to right,
// against a grouping description.
func checkGrouping(groups []int, grouping []int) bool {
	if len(groups) <= 1 || len(grouping) == 0 {
		return true
	}
	g := 0
	for i := len(groups) - 1; i >= 0; i-- {
		size := grouping[g]
		if g < len(grouping)-1 {
			g++
		}
		if size <= 0 {
			// non-positive size ends grouping, the rest is unconstrained
			return true
		}
		if i == 0 {
			return groups[i] >= 1 && groups[i] <= size
		}
		if groups[i] != size {
			return false
		}
	}
	return true
}
