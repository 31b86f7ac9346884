package parsing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "# music\nhttps://www.youtube.com/watch?v=1\n\n   https://soundcloud.com/a/b  \n#https://skipped.com\nhttps://www.youtube.com/watch?v=1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	urls, err := NewURLFileParser(path).ParseURLs()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://www.youtube.com/watch?v=1",
		"https://soundcloud.com/a/b",
		"https://www.youtube.com/watch?v=1",
	}, urls)

	_, err = NewURLFileParser(filepath.Join(t.TempDir(), "missing.txt")).ParseURLs()
	assert.Error(t, err)
}

func TestParseSince(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	got, err := ParseSince("", now)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = ParseSince("7d", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 3, 12, 0, 0, 0, time.Local), got)

	got, err = ParseSince("36h", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-36*time.Hour), got)

	got, err = ParseSince("2026-03-01", now)
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 1, got.Day())

	got, err = ParseSince("Mar 2, 2026", now)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Day())

	_, err = ParseSince("the day after never", now)
	assert.Error(t, err)
}

func TestSite(t *testing.T) {
	tests := map[string]string{
		"https://www.youtube.com/watch?v=1":   "youtube.com",
		"https://m.YouTube.com/watch?v=1":     "youtube.com",
		"music.bbc.co.uk/sounds/play/x":       "bbc.co.uk",
		"http://192.168.1.4:8080/media/a.mp3": "192.168.1.4",
		"https://soundcloud.com":              "soundcloud.com",
		"":                                    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Site(in), in)
	}
}
