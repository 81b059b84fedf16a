// Package index defines the aggregated directory index and its on-disk form.
package index

import (
	"encoding/json"

	"github.com/BooleanCube/notebook/internal/toc"
)

// Page is one compiled content directory: its metadata record with the
// injected slug, raw markdown body, and extracted table of contents.
type Page struct {
	Slug     string
	Content  string
	Metadata map[string]any
	TOC      []toc.Header
}

// MarshalJSON flattens the metadata fields with the injected ones into a
// single object. The injected slug, content, and toc win on key collision;
// colliding metadata values are overwritten.
func (p Page) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(p.Metadata)+3)
	for k, v := range p.Metadata {
		fields[k] = v
	}
	fields["slug"] = p.Slug
	fields["content"] = p.Content
	if p.TOC != nil {
		fields["toc"] = p.TOC
	} else {
		fields["toc"] = []toc.Header{}
	}
	return json.Marshal(fields)
}

// Index is the single root output artifact: the ordered page collection.
type Index struct {
	Pages []Page `json:"pages"`
}

// New returns an empty index whose pages serialize as [] rather than null.
func New() *Index {
	return &Index{Pages: make([]Page, 0)}
}

// Append adds a page, preserving insertion order.
func (idx *Index) Append(p Page) {
	idx.Pages = append(idx.Pages, p)
}
