// Package scanfmt provides type-safe, format-string driven input scanning.
//
// Quick Start:
//
//	var name string
//	var age int
//	res, err := scanfmt.Scan("alice 42", "{} {}", &name, &age)
//
// Format strings mirror replacement-field formatting: literal text must
// match the input, a run of whitespace matches one or more whitespace
// characters, and each {} reads one argument.
//
//	field := '{' [arg-id] [':' spec] '}'
//	spec  := [[fill] align] [sign] ['#'] ['0'] [width] ['.' precision] ["'"] ['L'] [type]
//
// Types: b B<base> d i u o x (integers), a e f g (floats), s c U [set]
// (strings and characters), p (Addr). {{ and }} escape braces.
//
// Sources: strings and byte slices scan in place; readers, chunked and
// generic forward ranges go through a Buffer; SharedSource and Stdin
// serialize scans of one process-wide reader; see package sourcefile
// for files.
//
// Errors are *ScanError values with a closed set of kinds. On failure
// the Result still reports how far scanning got.
//
// See example_test.go for detailed usage.
package scanfmt
