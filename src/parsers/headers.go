// src/parsers/headers.go
package parsers

import (
	"strings"
	"unicode"
)

// NormalizeHeader canonicalizes a raw CSV column name: byte-order-mark and
// surrounding whitespace stripped, lower-cased, runs of non-alphanumeric
// characters collapsed to a single underscore.
// "Filled Qty" and "filled_qty" both normalize to "filled_qty".
func NormalizeHeader(raw string) string {
	s := strings.TrimPrefix(raw, "\uFEFF")
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	pendingSep := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			pendingSep = false
		} else {
			pendingSep = true
		}
	}
	return b.String()
}
