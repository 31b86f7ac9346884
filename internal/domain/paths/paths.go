// Package paths initializes media-dupes' filepaths, directories, etc.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"media-dupes/internal/domain/consts"
)

const (
	mdDir        = ".media-dupes"
	mdDBFile     = "media-dupes.db"
	mdLogFile    = "media-dupes.log"
	mdConfigFile = "config.yaml"
	downloadsDir = "Downloads"
)

// File and directory path strings.
var (
	HomeDir         string
	DBFilePath      string
	LogFilePath     string
	ConfigFilePath  string
	DefaultDownload string
)

// InitProgFilesDirs initializes necessary program directories and filepaths.
func InitProgFilesDirs() error {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		return errors.New("failed to get home directory")
	}
	return initUnder(userHomeDir)
}

// initUnder sets every path relative to the given home directory.
func initUnder(userHomeDir string) error {
	// Home program dir ~/.media-dupes
	HomeDir = filepath.Join(userHomeDir, mdDir)
	if _, err := os.Stat(HomeDir); os.IsNotExist(err) {
		if err := os.MkdirAll(HomeDir, consts.PermsHomeProgDir); err != nil {
			return fmt.Errorf("failed to make directories: %w", err)
		}
	}

	// Main files
	DBFilePath = filepath.Join(HomeDir, mdDBFile)
	LogFilePath = filepath.Join(HomeDir, mdLogFile)
	ConfigFilePath = filepath.Join(HomeDir, mdConfigFile)

	// OS default downloads path, not created here
	DefaultDownload = filepath.Join(userHomeDir, downloadsDir)
	return nil
}
