// Package parsing reads user input from files and flags.
package parsing

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"media-dupes/internal/utils/logging"
)

// URLFileParser is used to parse URL lists.
type URLFileParser struct {
	Filepath string
	mu       sync.RWMutex
}

// NewURLFileParser returns an instance of a URLFileParser.
//
// This is used to parse URLs from a file.
func NewURLFileParser(fpath string) *URLFileParser {
	return &URLFileParser{
		Filepath: fpath,
	}
}

// ParseURLs returns the URLs in a file, in file order.
//
// Users should put a single URL on each line in the file for proper parsing.
// Hashtags exclude lines (i.e. '# Comment'). Validation and deduplication are left to the queue.
func (up *URLFileParser) ParseURLs() ([]string, error) {
	up.mu.RLock()
	defer up.mu.RUnlock()

	f, err := os.Open(up.Filepath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.E("Failed to close file %q: %v", up.Filepath, err)
		}
	}()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		u := strings.TrimSpace(scanner.Text())
		if u == "" || strings.HasPrefix(u, "#") {
			continue
		}
		urls = append(urls, u)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	logging.D(1, "Parsed %d URL(s) from %q", len(urls), up.Filepath)
	return urls, nil
}
