package textscan

import "regexp"

// Sentinel patterns are matched against raw lines, terminator included.
var (
	blankLineRe   = regexp.MustCompile(`^((?:"")?,)*(?:"")?\r?\n$`)
	resultsLineRe = regexp.MustCompile(`^(?:"Results"|Results),*\r?\n$`)
	crcLineRe     = regexp.MustCompile(`^-- CRC --,*\r?\n$`)
)

// IsBlank reports whether line is a row of empty cells followed by a line
// terminator. A final line without terminator is never blank.
func IsBlank(line string) bool {
	return blankLineRe.MatchString(line)
}

// IsResultsSentinel reports whether line marks the end of the calibration
// section.
func IsResultsSentinel(line string) bool {
	return resultsLineRe.MatchString(line)
}

// IsCRCSentinel reports whether line marks the end of the results section.
func IsCRCSentinel(line string) bool {
	return crcLineRe.MatchString(line)
}
