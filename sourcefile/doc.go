// Package sourcefile scans files with scanfmt.
//
// Files are read in chunks. After every scan the file offset is moved back
// over the look-ahead that was read but not consumed, so another reader of
// the same file continues right after the scanned input. UTF-16 files,
// detected from a byte order mark or named in Options, are transcoded to
// UTF-8 and cannot be synced.
//
// Example:
//
//	f, err := sourcefile.Open("points.txt", sourcefile.Options{Required: true})
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//	var x, y int
//	_, err = f.Scan("{} {}", &x, &y)
package sourcefile
