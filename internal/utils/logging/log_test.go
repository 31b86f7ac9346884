package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixes(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	I("queued %d", 2)
	S("done")
	W("duplicate %q", "https://example.com")
	E("failed: %v", "boom")

	out := buf.String()
	assert.Contains(t, out, "[Info] ")
	assert.Contains(t, out, "queued 2")
	assert.Contains(t, out, "[Success] ")
	assert.Contains(t, out, "[Warning] ")
	assert.Contains(t, out, `duplicate "https://example.com"`)
	assert.Contains(t, out, "[ERROR] ")
	assert.Contains(t, out, "failed: boom")
	assert.NotContains(t, out, "kind")
}

func TestDebugLevelGate(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	prev := Level
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		Level = prev
	})

	Level = 1
	D(1, "shown")
	D(3, "hidden")

	assert.Contains(t, buf.String(), "shown")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestFormatWithoutArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	msg(logger.Info(), "100% literal")
	assert.Contains(t, buf.String(), "100% literal")
}

func TestSetupLoggingWritesFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "media-dupes.log")

	require.NoError(t, SetupLogging(path, &console))
	t.Cleanup(func() { _ = Close() })

	E("written to %s", "file")
	require.NoError(t, Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), `"message":"written to file"`))
	assert.Contains(t, string(b), `"level":"error"`)
	assert.Contains(t, console.String(), "written to file")
}
