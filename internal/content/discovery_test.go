package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BooleanCube/notebook/internal/errors"
)

func writePage(t *testing.T, root, slug, markdown, metadata string) {
	t.Helper()
	dir := filepath.Join(root, slug)
	require.NoError(t, os.MkdirAll(dir, 0755))
	if markdown != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, MarkdownFile), []byte(markdown), 0644))
	}
	if metadata != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, MetadataFile), []byte(metadata), 0644))
	}
}

func TestDiscoverPages_IgnoresHiddenAndNonDirectoryEntries(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "alpha", "# A", `{}`)
	writePage(t, root, ".git", "# hidden", `{}`)
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0644))

	sources, err := NewDiscovery(root, false).DiscoverPages()
	require.NoError(t, err)
	require.Len(t, sources, 1)
	require.Equal(t, "alpha", sources[0].Slug)
}

func TestDiscoverPages_SortedBySlug(t *testing.T) {
	root := t.TempDir()
	for _, slug := range []string{"zeta", "alpha", "mid"} {
		writePage(t, root, slug, "# H", `{}`)
	}

	sources, err := NewDiscovery(root, false).DiscoverPages()
	require.NoError(t, err)

	slugs := make([]string, 0, len(sources))
	for _, s := range sources {
		slugs = append(slugs, s.Slug)
	}
	require.Equal(t, []string{"alpha", "mid", "zeta"}, slugs)
}

func TestDiscoverPages_LegacyOrder_ReturnsAllPages(t *testing.T) {
	root := t.TempDir()
	for _, slug := range []string{"b", "a", "c"} {
		writePage(t, root, slug, "# H", `{}`)
	}

	// Platform enumeration order is not asserted, only completeness.
	sources, err := NewDiscovery(root, true).DiscoverPages()
	require.NoError(t, err)
	require.Len(t, sources, 3)
}

func TestDiscoverPages_MissingRoot_ReturnsFilesystemError(t *testing.T) {
	_, err := NewDiscovery(filepath.Join(t.TempDir(), "nope"), false).DiscoverPages()
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryFileSystem))
}

func TestReadMarkdown_ReturnsRawBody(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "intro", "# Intro\n\nBody.\n", `{}`)

	sources, err := NewDiscovery(root, false).DiscoverPages()
	require.NoError(t, err)

	body, err := sources[0].ReadMarkdown()
	require.NoError(t, err)
	require.Equal(t, "# Intro\n\nBody.\n", body)
}

func TestReadMarkdown_MissingFile_ReturnsSourceError(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "intro", "", `{}`)

	sources, err := NewDiscovery(root, false).DiscoverPages()
	require.NoError(t, err)

	_, err = sources[0].ReadMarkdown()
	require.True(t, errors.IsCategory(err, errors.CategorySource))
}

func TestReadMetadata_ParsesFlatObject(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "intro", "# H", `{"title": "Intro", "weight": 3}`)

	sources, err := NewDiscovery(root, false).DiscoverPages()
	require.NoError(t, err)

	meta, err := sources[0].ReadMetadata()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"title": "Intro", "weight": float64(3)}, meta)
}

func TestReadMetadata_MissingFile_ReturnsSourceError(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "intro", "# H", "")

	sources, err := NewDiscovery(root, false).DiscoverPages()
	require.NoError(t, err)

	_, err = sources[0].ReadMetadata()
	require.True(t, errors.IsCategory(err, errors.CategorySource))
}

func TestReadMetadata_InvalidJSON_ReturnsMetadataError(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "intro", "# H", `{not json`)

	sources, err := NewDiscovery(root, false).DiscoverPages()
	require.NoError(t, err)

	_, err = sources[0].ReadMetadata()
	require.True(t, errors.IsCategory(err, errors.CategoryMetadata))
}

func TestReadMetadata_NullDocument_ReturnsMetadataError(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "intro", "# H", `null`)

	sources, err := NewDiscovery(root, false).DiscoverPages()
	require.NoError(t, err)

	_, err = sources[0].ReadMetadata()
	require.True(t, errors.IsCategory(err, errors.CategoryMetadata))
}
