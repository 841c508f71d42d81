// Package sanitize strips HTML from user-supplied text fields. Journal
// entries are plain text, so a strict policy removes all markup rather
// than allowlisting a formatting subset.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text removes all HTML elements and attributes from input, unescapes the
// remaining entities, and trims surrounding whitespace. The result is plain
// text safe to store and to re-encode at render time.
func Text(input string) string {
	if input == "" {
		return ""
	}
	stripped := getPolicy().Sanitize(input)
	return strings.TrimSpace(html.UnescapeString(stripped))
}
