// Package content discovers page source directories and reads their files.
//
// The layout contract is one subdirectory per page under a single content
// root, each holding an index.md body and a metadata.json record. Hidden
// entries and plain files at the root are ignored.
package content

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BooleanCube/notebook/internal/errors"
	"github.com/BooleanCube/notebook/internal/logfields"
)

var errNullMetadata = stderrors.New("metadata document is null")

const (
	// MarkdownFile is the required markdown body inside each page directory.
	MarkdownFile = "index.md"
	// MetadataFile is the required metadata record inside each page directory.
	MetadataFile = "metadata.json"
)

// PageSource is one discovered content directory. The directory name doubles
// as the page's slug.
type PageSource struct {
	Slug         string // directory name, used as the page identifier
	Path         string // page directory path
	MarkdownPath string
	MetadataPath string
}

// Discovery enumerates page source directories under a content root.
type Discovery struct {
	root        string
	legacyOrder bool
}

// NewDiscovery creates a discovery instance for the given content root.
// With legacyOrder the raw platform enumeration order is preserved;
// otherwise pages are sorted by slug for reproducible output.
func NewDiscovery(root string, legacyOrder bool) *Discovery {
	return &Discovery{root: root, legacyOrder: legacyOrder}
}

// DiscoverPages lists the non-hidden subdirectories of the content root.
func (d *Discovery) DiscoverPages() ([]PageSource, error) {
	f, err := os.Open(d.root)
	if err != nil {
		return nil, errors.DiscoveryFailed(d.root, err)
	}
	defer f.Close()

	// File.ReadDir yields directory order; sorting is applied below unless
	// the legacy unsorted behavior was requested.
	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, errors.DiscoveryFailed(d.root, err)
	}

	sources := make([]PageSource, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dir := filepath.Join(d.root, entry.Name())
		sources = append(sources, PageSource{
			Slug:         entry.Name(),
			Path:         dir,
			MarkdownPath: filepath.Join(dir, MarkdownFile),
			MetadataPath: filepath.Join(dir, MetadataFile),
		})
	}

	if !d.legacyOrder {
		sort.Slice(sources, func(i, j int) bool { return sources[i].Slug < sources[j].Slug })
	}

	slog.Debug("Content directories discovered",
		logfields.Path(d.root),
		logfields.Count(len(sources)))
	return sources, nil
}

// ReadMarkdown returns the raw markdown body for the page. A missing file is
// reported as a missing-source error; any other failure as a filesystem error.
func (s PageSource) ReadMarkdown() (string, error) {
	data, err := os.ReadFile(s.MarkdownPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.MissingSourceFile(s.Slug, MarkdownFile)
		}
		return "", errors.ReadFailed(s.MarkdownPath, err)
	}
	return string(data), nil
}

// ReadMetadata parses the page's metadata record. The record must be a flat
// JSON object; anything else is malformed metadata.
func (s PageSource) ReadMetadata() (map[string]any, error) {
	data, err := os.ReadFile(s.MetadataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.MissingSourceFile(s.Slug, MetadataFile)
		}
		return nil, errors.ReadFailed(s.MetadataPath, err)
	}

	var meta map[string]any
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.MalformedMetadata(s.Slug, err)
	}
	if meta == nil {
		// A bare JSON null decodes without error but is not a usable record.
		return nil, errors.MalformedMetadata(s.Slug, errNullMetadata)
	}
	return meta, nil
}
