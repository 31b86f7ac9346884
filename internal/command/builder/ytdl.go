// Package builder builds argument lists for the external download tool.
package builder

import (
	"errors"
	"path/filepath"
	"strings"

	"media-dupes/internal/domain/command"
	"media-dupes/internal/models"
	"media-dupes/internal/utils/logging"
)

// Build returns the ordered download tool arguments shared by every URL of a batch.
//
// The target URL is not included, callers append it last.
func Build(mode models.Mode, s *models.Settings) ([]string, error) {
	if s == nil {
		return nil, errors.New("no settings given to argument builder")
	}

	args := make([]string, 0, 32)

	// Always on
	args = append(args,
		command.IgnoreErrors,
		command.RestrictFilenames,
		command.Continue,
		command.AddMetadata,
		command.Fixup, command.FixupDetectOrWarn)

	switch mode {
	case models.ModeAudio:
		args = append(args,
			command.Format, command.FormatBestAudio,
			command.Output, filepath.Join(s.DownloadDir, command.AudioSubdir, command.AudioFilenameSyntax))
		args = appendTranscoder(args, s.FFmpegPath)
		args = append(args,
			command.ExtractAudio,
			command.AudioFormat, s.AudioFormat,
			command.AudioQuality, command.AudioQualityMax)

		// Only some containers can carry cover art
		if command.ThumbnailFormats[s.AudioFormat] {
			args = prepend(args, command.EmbedThumbnail)
		}

	case models.ModeVideo:
		args = append(args,
			command.Format, command.FormatBest,
			command.Output, filepath.Join(s.DownloadDir, command.VideoSubdir, command.VideoFilenameSyntax))
		args = appendTranscoder(args, s.FFmpegPath)
		args = append(args, command.AudioQuality, command.AudioQualityMax)

	default:
		return nil, &InvalidModeError{Mode: string(mode)}
	}

	if s.Verbose {
		args = prepend(args, command.Verbose, command.PrintTraffic)
	}

	// User supplied, passed through untouched
	if extra := strings.Fields(s.ExtraArgs); len(extra) > 0 {
		args = append(args, extra...)
	}

	logging.D(2, "Built %s arguments: %v", mode, args)
	return args, nil
}

// appendTranscoder points the download tool at ffmpeg.
func appendTranscoder(args []string, ffmpegPath string) []string {
	args = append(args, command.PreferFFmpeg)
	if ffmpegPath != "" {
		args = append(args, command.FFmpegLocation, ffmpegPath)
	}
	return args
}

func prepend(args []string, front ...string) []string {
	out := make([]string, 0, len(front)+len(args))
	out = append(out, front...)
	return append(out, args...)
}
