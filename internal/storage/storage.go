// Package storage persists named collections as pretty-printed JSON files
// inside the application data directory. Load failures are logged and
// reported as "absent" so callers can fall back to defaults.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// EnsureDir creates the data directory if it does not exist yet.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// Load reads <dir>/<name>.json into a value of type T. The second return is
// false when the file is missing, unreadable, or malformed; a missing file is
// normal on first run and is not logged.
func Load[T any](dir, name string) (T, bool) {
	var value T

	path := filePath(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("file", path).Msg("failed to read data file")
		}
		return value, false
	}

	if err := json.Unmarshal(data, &value); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("data file is malformed, ignoring")
		var zero T
		return zero, false
	}

	return value, true
}

// Save writes value to <dir>/<name>.json. The content goes to a temp file
// first and is renamed into place, so an interrupted write never corrupts the
// previous valid file.
func Save[T any](dir, name string, value T) error {
	if err := EnsureDir(dir); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	path := filePath(dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}

func filePath(dir, name string) string {
	return filepath.Join(dir, name+".json")
}
