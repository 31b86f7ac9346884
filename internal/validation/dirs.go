package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"media-dupes/internal/domain/consts"
	"media-dupes/internal/utils/logging"
)

// ValidateDirectory validates that the directory exists, else creates it if desired.
func ValidateDirectory(dir string, createIfNotFound bool) (os.FileInfo, error) {
	logging.D(3, "Statting directory %q...", dir)

	fi, err := os.Stat(dir)
	switch {
	case err == nil:
		if !fi.IsDir() {
			return fi, fmt.Errorf("path %q is a file, not a directory", dir)
		}
		return fi, nil

	case errors.Is(err, os.ErrNotExist) && createIfNotFound:
		logging.D(1, "Directory %q does not exist, creating it...", dir)
		if err := os.MkdirAll(dir, consts.PermsGenericDir); err != nil {
			return nil, fmt.Errorf("directory %q does not exist and failed to create: %w", dir, err)
		}
		return os.Stat(dir)

	default:
		return nil, fmt.Errorf("failed to stat directory %q: %w", dir, err)
	}
}

// ValidateWritableDirectory ensures dir exists (creating it if needed) and accepts new files.
func ValidateWritableDirectory(dir string) error {
	if dir == "" {
		return errors.New("no directory given")
	}
	if _, err := ValidateDirectory(dir, true); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".media-dupes-writetest-*")
	if err != nil {
		return fmt.Errorf("directory %q is not writable: %w", dir, err)
	}
	name := tmp.Name()
	if err := tmp.Close(); err != nil {
		logging.E("Failed to close tmp file %q: %v", name, err)
	}
	if err := os.Remove(name); err != nil {
		logging.E("Failed to remove tmp file %q: %v", filepath.Base(name), err)
	}
	return nil
}
