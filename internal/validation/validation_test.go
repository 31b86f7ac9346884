package validation_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"media-dupes/internal/models"
	"media-dupes/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateURL checks the URL grammar against common inputs.
func TestValidateURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"https with query", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"http with path", "http://soundcloud.com/artist/track-name", true},
		{"no scheme", "example.com/path/to", true},
		{"uppercase", "HTTPS://EXAMPLE.COM/WATCH", true},
		{"port and fragment", "https://media.example.org:8080/v/1#t=30", true},
		{"max port", "https://example.com:65535/a", true},
		{"single digit port", "http://10.0.0.1:8", true},
		{"percent encoded path", "https://example.com/a%20b", true},
		{"surrounding whitespace", "  https://example.com  ", true},
		{"ipv4 host", "http://192.168.1.10/stream", true},
		{"ipv4 no scheme", "10.0.0.1", true},
		{"empty", "", false},
		{"only spaces", "   ", false},
		{"no dot", "localhost", false},
		{"numeric tld", "example.123", false},
		{"single letter tld", "example.c", false},
		{"octet too large", "http://256.1.1.1", false},
		{"three octets", "http://10.0.0", false},
		{"port too large", "example.com:99999", false},
		{"port just over range", "https://example.com:65536/a", false},
		{"port zero", "https://example.com:0", false},
		{"ftp scheme", "ftp://example.com/file", false},
		{"space in host", "https://exa mple.com", false},
		{"plain word", "not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.ValidateURL(tt.input), tt.input)
		})
	}
}

// TestDecodeFully checks repeated decoding and the stray percent case.
func TestDecodeFully(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "https://example.com/a", "https://example.com/a"},
		{"single layer", "https%3A%2F%2Fexample.com%2Fa%20b", "https://example.com/a b"},
		{"double layer", "https://example.com/a%2520b", "https://example.com/a b"},
		{"triple layer", "https://example.com/%25252F", "https://example.com//"},
		{"plus kept", "https://example.com/?q=a+b", "https://example.com/?q=a+b"},
		{"stray percent", "https://example.com/100%", "https://example.com/100%"},
		{"stray percent after decode", "https://example.com/100%25", "https://example.com/100%"},
		{"invalid utf8 escape", "https://example.com/%FF", "https://example.com/%FF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validation.DecodeFully(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, validation.DecodeFully(got), "decoding must be idempotent")
		})
	}
}

// TestValidateSettings checks struct tag rules.
func TestValidateSettings(t *testing.T) {
	good := &models.Settings{
		AudioFormat:   "mp3",
		DownloadDir:   t.TempDir(),
		YoutubeDlPath: "youtube-dl",
		NotifyURLs:    []string{"http://192.168.1.2:8000/hook"},
	}
	require.NoError(t, validation.ValidateSettings(good))

	bad := *good
	bad.AudioFormat = "mp5"
	assert.Error(t, validation.ValidateSettings(&bad))

	bad = *good
	bad.MaxConcurrent = -1
	assert.Error(t, validation.ValidateSettings(&bad))

	bad = *good
	bad.NotifyURLs = []string{"not a url"}
	assert.Error(t, validation.ValidateSettings(&bad))

	assert.Error(t, validation.ValidateSettings(nil))
}

// TestMediaURLTag checks the custom validator tag.
func TestMediaURLTag(t *testing.T) {
	type req struct {
		URLs []string `validate:"required,dive,mediaurl"`
	}
	require.NoError(t, validation.Struct(req{URLs: []string{"https://example.com/v"}}))
	assert.Error(t, validation.Struct(req{URLs: []string{"https://example.com/v", "nope"}}))
	assert.Error(t, validation.Struct(req{}))
}

// TestValidateWritableDirectory checks directory creation and writability.
func TestValidateWritableDirectory(t *testing.T) {
	base := t.TempDir()

	nested := filepath.Join(base, "a", "b")
	require.NoError(t, validation.ValidateWritableDirectory(nested))
	fi, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	entries, err := os.ReadDir(nested)
	require.NoError(t, err)
	assert.Empty(t, entries, "test file must be removed")

	file := filepath.Join(base, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.Error(t, validation.ValidateWritableDirectory(file))

	assert.Error(t, validation.ValidateWritableDirectory(""))

	if runtime.GOOS != "windows" && os.Geteuid() != 0 {
		ro := filepath.Join(base, "ro")
		require.NoError(t, os.Mkdir(ro, 0o500))
		assert.Error(t, validation.ValidateWritableDirectory(ro))
	}
}
