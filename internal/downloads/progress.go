package downloads

import (
	"strconv"

	"media-dupes/internal/domain/regex"
)

// ParseProgress extracts the download percentage from an output line.
func ParseProgress(line string) (float64, bool) {
	m := regex.DownloadProgressCompile().FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil || pct > 100 {
		return 0, false
	}
	return pct, true
}
