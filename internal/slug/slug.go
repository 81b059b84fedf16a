// Package slug derives URL-safe identifiers from header titles.
//
// The normalization is deliberately narrow: ASCII lowercase letters, digits,
// whitespace, and hyphens survive; everything else is dropped before the
// whitespace and hyphen runs are collapsed. Leading/trailing hyphens are NOT
// trimmed, and no uniqueness suffixing happens — two headers with the same
// normalized title produce identical ids. Front-end consumers rely on this
// exact shape, so changes here are format changes, not cleanups.
package slug

import (
	"regexp"
	"strings"
)

var (
	disallowed     = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	hyphenRuns     = regexp.MustCompile(`-{2,}`)
)

// Generate normalizes a header title into its id. The steps are ordered:
// lowercase first, strip disallowed characters, then collapse whitespace runs
// into single hyphens, then collapse hyphen runs. Total over any input.
func Generate(title string) string {
	s := strings.ToLower(title)
	s = disallowed.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, "-")
	return hyphenRuns.ReplaceAllString(s, "-")
}
