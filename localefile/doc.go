// Package localefile loads scanfmt locales from YAML, JSON, or TOML files.
//
// Format is auto-detected from extension (.yaml, .json, .toml). Keys:
// decimal_point, thousands_sep, grouping, true_name, false_name. Missing
// keys keep the classic locale's values.
//
// Example:
//
//	loc, err := localefile.Load("de.yaml", localefile.Options{Required: true})
//	if err != nil {
//		return err
//	}
//	s := scanfmt.NewScanner().WithLocale(loc)
package localefile
