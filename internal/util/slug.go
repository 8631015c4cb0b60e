package util

import (
	"strings"
	"unicode"
)

// Slugify приводит имя к виду "lower-case-with-hyphens": все не буквенно-цифровые
// последовательности заменяются одним дефисом, дефисы по краям отбрасываются.
func Slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
