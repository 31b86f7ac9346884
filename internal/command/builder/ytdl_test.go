package builder_test

import (
	"errors"
	"path/filepath"
	"testing"

	"media-dupes/internal/command/builder"
	"media-dupes/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settings(format string, verbose bool) *models.Settings {
	return &models.Settings{
		AudioFormat:   format,
		Verbose:       verbose,
		DownloadDir:   "/downloads",
		YoutubeDlPath: "youtube-dl",
		FFmpegPath:    "/usr/bin/ffmpeg",
	}
}

// valueAfter returns the argument following flag, or "" when missing.
func valueAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func TestAudioMP3EmbedsThumbnail(t *testing.T) {
	args, err := builder.Build(models.ModeAudio, settings("mp3", false))
	require.NoError(t, err)

	assert.Equal(t, "--embed-thumbnail", args[0])
	assert.Contains(t, args, "--extract-audio")
	assert.Equal(t, "mp3", valueAfter(args, "--audio-format"))
	assert.Equal(t, "0", valueAfter(args, "--audio-quality"))
	assert.Equal(t, "bestaudio", valueAfter(args, "--format"))
	assert.Equal(t, "/usr/bin/ffmpeg", valueAfter(args, "--ffmpeg-location"))
	assert.Equal(t,
		filepath.Join("/downloads", "Audio", "%(artist)s-%(album)s-%(title)s-%(id)s.%(ext)s"),
		valueAfter(args, "--output"))
}

func TestAudioThumbnailByFormat(t *testing.T) {
	for format, want := range map[string]bool{
		"mp3": true, "m4a": true,
		"wav": false, "flac": false, "opus": false, "aac": false, "vorbis": false, "best": false,
	} {
		args, err := builder.Build(models.ModeAudio, settings(format, false))
		require.NoError(t, err)
		assert.Equal(t, want, contains(args, "--embed-thumbnail"), format)
	}
}

func TestAlwaysOnFlags(t *testing.T) {
	for _, mode := range []models.Mode{models.ModeAudio, models.ModeVideo} {
		args, err := builder.Build(mode, settings("wav", false))
		require.NoError(t, err)
		for _, flag := range []string{"--ignore-errors", "--restrict-filenames", "--continue", "--add-metadata", "--prefer-ffmpeg"} {
			assert.Contains(t, args, flag, "%s should contain %s", mode, flag)
		}
		assert.Equal(t, "detect_or_warn", valueAfter(args, "--fixup"))
	}
}

func TestVideo(t *testing.T) {
	args, err := builder.Build(models.ModeVideo, settings("mp3", false))
	require.NoError(t, err)

	assert.Equal(t, "best", valueAfter(args, "--format"))
	assert.Equal(t, filepath.Join("/downloads", "Video", "%(title)s-%(id)s.%(ext)s"), valueAfter(args, "--output"))
	assert.NotContains(t, args, "--embed-thumbnail")
	assert.NotContains(t, args, "--audio-format")
	assert.NotContains(t, args, "--extract-audio")
}

func TestVerbosePrepended(t *testing.T) {
	args, err := builder.Build(models.ModeVideo, settings("mp3", true))
	require.NoError(t, err)
	assert.Equal(t, []string{"--verbose", "--print-traffic"}, args[:2])

	args, err = builder.Build(models.ModeAudio, settings("mp3", true))
	require.NoError(t, err)
	assert.Equal(t, []string{"--verbose", "--print-traffic", "--embed-thumbnail"}, args[:3])
}

func TestExtraArgsAppended(t *testing.T) {
	s := settings("wav", false)
	s.ExtraArgs = "  --limit-rate 1M   --no-playlist "
	args, err := builder.Build(models.ModeAudio, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"--limit-rate", "1M", "--no-playlist"}, args[len(args)-3:])
}

func TestNoTranscoderPath(t *testing.T) {
	s := settings("wav", false)
	s.FFmpegPath = ""
	args, err := builder.Build(models.ModeAudio, s)
	require.NoError(t, err)
	assert.NotContains(t, args, "--ffmpeg-location")
}

func TestInvalidMode(t *testing.T) {
	args, err := builder.Build(models.Mode("playlist"), settings("mp3", false))
	assert.Nil(t, args)

	var modeErr *builder.InvalidModeError
	require.True(t, errors.As(err, &modeErr))
	assert.Equal(t, "playlist", modeErr.Mode)
}

func contains(args []string, s string) bool {
	for _, a := range args {
		if a == s {
			return true
		}
	}
	return false
}
