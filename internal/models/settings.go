package models

// Settings is the resolved configuration a batch runs with.
type Settings struct {
	AudioFormat          string   `json:"audio_format" validate:"oneof=best aac flac mp3 m4a opus vorbis wav"`
	Verbose              bool     `json:"verbose"`
	ExtraArgs            string   `json:"extra_args"`
	DownloadDir          string   `json:"download_dir" validate:"required"`
	YoutubeDlPath        string   `json:"youtube_dl_path" validate:"required"`
	FFmpegPath           string   `json:"ffmpeg_path"`
	MaxConcurrent        int      `json:"max_concurrent" validate:"gte=0"`
	NotifyURLs           []string `json:"notify_urls" validate:"dive,url"`
	DesktopNotifications bool     `json:"desktop_notifications"`
}
