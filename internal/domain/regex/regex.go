// Package regex compiles and caches various regex expressions.
package regex

import (
	"regexp"
	"sync"
)

var (
	ansiEscapeOnce   sync.Once
	AnsiEscape       *regexp.Regexp
	downloadPctOnce  sync.Once
	DownloadProgress *regexp.Regexp
)

// AnsiEscapeCompile compiles regex for ANSI escape codes.
func AnsiEscapeCompile() *regexp.Regexp {
	ansiEscapeOnce.Do(func() {
		AnsiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)
	})
	return AnsiEscape
}

// DownloadProgressCompile compiles regex for download tool progress lines,
// e.g. "[download]  42.3% of 3.50MiB at 1.2MiB/s ETA 00:02". The percentage is group 1.
func DownloadProgressCompile() *regexp.Regexp {
	downloadPctOnce.Do(func() {
		DownloadProgress = regexp.MustCompile(`^\[download\]\s+(\d{1,3}(?:\.\d+)?)%`)
	})
	return DownloadProgress
}
