package command

// General
const (
	YoutubeDL         = "youtube-dl"
	FFmpeg            = "ffmpeg"
	IgnoreErrors      = "--ignore-errors"
	RestrictFilenames = "--restrict-filenames"
	Continue          = "--continue"
	AddMetadata       = "--add-metadata"
	Fixup             = "--fixup"
	FixupDetectOrWarn = "detect_or_warn"
	Format            = "--format"
	Output            = "--output"
	PreferFFmpeg      = "--prefer-ffmpeg"
	FFmpegLocation    = "--ffmpeg-location"
)

// Audio only
const (
	FormatBestAudio = "bestaudio"
	ExtractAudio    = "--extract-audio"
	AudioFormat     = "--audio-format"
	AudioQuality    = "--audio-quality"
	AudioQualityMax = "0"
	EmbedThumbnail  = "--embed-thumbnail"
)

// Video only
const (
	FormatBest = "best"
)

// Debugging
const (
	Verbose      = "--verbose"
	PrintTraffic = "--print-traffic"
)

// Output templates, relative to the download directory.
const (
	AudioSubdir         = "Audio"
	VideoSubdir         = "Video"
	AudioFilenameSyntax = "%(artist)s-%(album)s-%(title)s-%(id)s.%(ext)s"
	VideoFilenameSyntax = "%(title)s-%(id)s.%(ext)s"
)

// Audio formats accepted by --audio-format.
var AudioFormats = [...]string{"best", "aac", "flac", "mp3", "m4a", "opus", "vorbis", "wav"}

// ThumbnailFormats are the audio containers that can carry embedded cover art.
var ThumbnailFormats = map[string]bool{
	"mp3": true,
	"m4a": true,
}
