// Package toc extracts per-page tables of contents from raw markdown.
//
// Only header lines are recognized; this is not a markdown parser. The scan
// is a single pass with a two-state fence machine so headers inside fenced
// code blocks are never emitted.
package toc

import (
	"regexp"
	"strings"

	"github.com/BooleanCube/notebook/internal/slug"
)

// Header is one recognized header line, in document order. Headers are not
// deduplicated or nested; duplicate ids within a page are permitted.
type Header struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Title string `json:"title"`
}

// scanState tracks fenced-code-block context during a scan.
type scanState int

const (
	stateNormal scanState = iota
	stateInFence
)

// headerLine matches 1-6 leading '#' followed by whitespace. Seven or more
// '#' leave no whitespace for the second group, so the line is not a header.
// The line is matched untrimmed: indented headers do not count.
var headerLine = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

// isFence reports whether a trimmed line opens or closes a fenced code block.
// Backtick and tilde fences toggle the same state; a closing fence does not
// need to match the opening character.
func isFence(trimmed string) bool {
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

// Extract scans markdown line by line and returns the ordered header
// sequence. Fence detection wins over header detection, so a line that is
// both fence-like and header-like is treated as a fence. An unterminated
// fence suppresses every remaining header in the document; that matches the
// legacy compiler and is relied on by existing content.
//
// Extract is total: malformed input yields an empty (non-nil) sequence.
func Extract(markdown string) []Header {
	headers := make([]Header, 0)
	state := stateNormal

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if isFence(trimmed) {
			if state == stateNormal {
				state = stateInFence
			} else {
				state = stateNormal
			}
			continue
		}
		if state == stateInFence {
			continue
		}

		m := headerLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		title := strings.TrimSpace(m[2])
		headers = append(headers, Header{
			Level: len(m[1]),
			ID:    slug.Generate(title),
			Title: title,
		})
	}

	return headers
}
