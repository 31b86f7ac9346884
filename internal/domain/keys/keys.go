// Package keys holds the viper keys used across media-dupes.
package keys

// Persisted settings. Each is read through the settings store, which writes back a default when unset.
const (
	AudioFormat                  string = "audioFormat"
	EnableVerboseMode            string = "enableVerboseMode"
	AdditionalYoutubeDlParameter string = "additionalYoutubeDlParameter"
	DownloadDir                  string = "downloadDir"
)

// External tools
const (
	YoutubeDlPath string = "youtubeDlPath"
	FFmpegPath    string = "ffmpegPath"
)

// Dispatch and notifications
const (
	MaxConcurrentDownloads string = "maxConcurrentDownloads"
	NotifyURLs             string = "notifyURLs"
	DesktopNotifications   string = "desktopNotifications"
)

// Program
const (
	ConfigFile string = "config"
	DebugLevel string = "debug"
	ServerPort string = "serverPort"
	Port       string = "port"
	Mode       string = "mode"
	URLFile    string = "file"
	Since      string = "since"
	Limit      string = "limit"
)
