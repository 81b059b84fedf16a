package index

import (
	"encoding/json"
	"os"

	"github.com/BooleanCube/notebook/internal/errors"
)

// WriteFile serializes the index as pretty-printed JSON (2-space indent) and
// writes it atomically: the bytes land in a sibling temp file which is then
// renamed over the target. A reader of the output path never observes a
// partial index, and a failing run leaves any existing file untouched.
func WriteFile(idx *Index, path string) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return errors.OutputWriteFailed(path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.OutputWriteFailed(path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.OutputWriteFailed(path, err)
	}
	return nil
}
