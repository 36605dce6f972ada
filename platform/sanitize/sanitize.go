// Package sanitize strips markup from visitor-supplied text before it is stored.
package sanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strict allows no elements at all; script and style bodies are dropped.
	strict          = bluemonday.StrictPolicy()
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// StripHTML removes all HTML tags from a string, including tags that were
// hidden behind HTML entities. The result is plain text, not escaped HTML.
func StripHTML(s string) string {
	result := html.UnescapeString(strict.Sanitize(s))
	result = html.UnescapeString(strict.Sanitize(result))
	return strings.TrimSpace(result)
}

// Text sanitizes free-form text such as chat messages. Line breaks are kept.
func Text(s string) string {
	return StripHTML(s)
}

// Line sanitizes single-line fields such as names and locations:
// markup is removed and any run of whitespace collapses to one space.
func Line(s string) string {
	return whitespaceRegex.ReplaceAllString(StripHTML(s), " ")
}
