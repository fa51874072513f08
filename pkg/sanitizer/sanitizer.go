// Package sanitizer cleans free-text form input before validation.
package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func policy() *bluemonday.Policy {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// maxStripRounds bounds how many layers of entity encoding are peeled off.
const maxStripRounds = 4

// StripHTML removes every tag and returns plain text. Entities are decoded
// so "O'Brien & Sons" survives intact; output is escaped at render time.
// Decoded text is sanitized again until it is stable, so entity-encoded
// markup cannot come back as a tag.
func StripHTML(s string) string {
	for range maxStripRounds {
		clean := policy().Sanitize(s)
		next := html.UnescapeString(clean)
		if next == s {
			return next
		}
		s = next
	}
	return policy().Sanitize(s)
}

// Clean prepares a single-line form value: strips HTML, applies Unicode NFC
// normalization, collapses runs of whitespace and trims the ends.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(StripHTML(s))
	return strings.Join(strings.Fields(s), " ")
}
