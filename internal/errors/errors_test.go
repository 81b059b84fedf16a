package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompilerError_ErrorString_IncludesCategoryAndCause(t *testing.T) {
	cause := fmt.Errorf("open foo: no such file")
	err := Wrap(cause, CategoryFileSystem, SeverityFatal, "failed to read source file")

	require.Contains(t, err.Error(), "filesystem")
	require.Contains(t, err.Error(), "no such file")
}

func TestCompilerError_Unwrap_ExposesCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(cause, CategoryCompile, SeverityFatal, "failed")

	require.True(t, errors.Is(err, cause))
}

func TestIsCategory_MatchesAndRejects(t *testing.T) {
	err := MissingSourceFile("getting-started", "metadata.json")

	require.True(t, IsCategory(err, CategorySource))
	require.False(t, IsCategory(err, CategoryMetadata))
	require.False(t, IsCategory(fmt.Errorf("plain"), CategorySource))
}

func TestMissingSourceFile_CarriesContext(t *testing.T) {
	err := MissingSourceFile("intro", "index.md")

	require.Equal(t, "intro", err.Context["page"])
	require.Equal(t, "index.md", err.Context["file"])
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, 0},
		{"plain", fmt.Errorf("plain"), 1},
		{"validation", ValidationFailed("debounce", "must be positive"), 2},
		{"config", ConfigInvalid("notebook.yaml", fmt.Errorf("bad yaml")), 7},
		{"missing source", MissingSourceFile("intro", "index.md"), 11},
		{"malformed metadata", MalformedMetadata("intro", fmt.Errorf("bad json")), 11},
		{"output write", OutputWriteFailed("directory.json", fmt.Errorf("denied")), 11},
		{"watch", WatchSetupFailed(fmt.Errorf("inotify limit")), 12},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.code, adapter.ExitCodeFor(tc.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError_TerseByDefault(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)
	err := MissingSourceFile("intro", "index.md")

	msg := adapter.FormatError(err)
	require.Contains(t, msg, "missing a required source file")
	require.Contains(t, msg, "intro")
}
