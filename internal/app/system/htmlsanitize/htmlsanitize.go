// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize wraps the bluemonday policies used on user-supplied
// input before it is stored.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps user-generated-content-safe HTML and strips everything else.
func Sanitize(s string) string {
	return ugc.Sanitize(s)
}

// StripTags removes all markup, leaving plain text. Used for fields that are
// never rendered as HTML (names, phone numbers, grades).
func StripTags(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
