// Package slug derives URL keys from article titles.
package slug

import (
	"regexp"
	"strings"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	disallowed = regexp.MustCompile(`[^a-z0-9-]`)
)

// Make lowercases title, turns each whitespace run into one hyphen and drops
// everything outside [a-z0-9-].
func Make(title string) string {
	s := strings.ToLower(title)
	s = whitespace.ReplaceAllString(s, "-")

	return disallowed.ReplaceAllString(s, "")
}
