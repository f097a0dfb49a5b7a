package status

import (
	"strings"
	"unicode"
)

// Sanitize drops control characters, C1 controls included, so stored values
// cannot inject terminal escape sequences into the output.
func Sanitize(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
