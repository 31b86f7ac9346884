// Package consts holds various global, unchanging values.
package consts

import "time"

// Program name, used for directories, env prefix and notification titles.
const (
	ProgramName = "media-dupes"
	EnvPrefix   = "MEDIA_DUPES"
)

// Notification timeouts. Zero means sticky.
const (
	NoticeAutoDismiss = 5 * time.Second
	NoticeSticky      = time.Duration(0)
)

// Progress updates per running download.
const (
	ProgressInterval = 500 * time.Millisecond
)

// Default HTTP port for the remote UI API.
const DefaultServerPort = 8831
