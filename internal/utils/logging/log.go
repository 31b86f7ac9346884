// Package logging provides the program's leveled console and file logging, backed by zerolog.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"media-dupes/internal/domain/consts"

	"github.com/rs/zerolog"
)

const (
	kindField  = "kind"
	depthField = "debug_level"

	kindInfo    = "info"
	kindSuccess = "success"
	kindWarning = "warning"
	kindError   = "error"
	kindDebug   = "debug"
	kindPlain   = "plain"
)

var prefixes = map[string]string{
	kindInfo:    consts.BlueInfo,
	kindSuccess: consts.GreenSuccess,
	kindWarning: consts.YellowWarning,
	kindError:   consts.RedError,
	kindDebug:   consts.PurpleDebug,
}

var (
	// Level is the debug level set by the user (0-5). D(l, ...) prints when l <= Level.
	Level = 0

	mu      sync.RWMutex
	logger  = zerolog.New(newConsoleWriter(os.Stdout))
	logFile *os.File
)

// newConsoleWriter returns a human-readable writer printing "[Prefix] message".
func newConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:           out,
		PartsOrder:    []string{zerolog.MessageFieldName},
		FieldsExclude: []string{kindField, depthField, zerolog.TimestampFieldName},
		FormatPrepare: func(evt map[string]any) error {
			kind, _ := evt[kindField].(string)
			msg, _ := evt[zerolog.MessageFieldName].(string)
			evt[zerolog.MessageFieldName] = prefixes[kind] + msg
			return nil
		},
	}
}

// SetupLogging opens (or creates) the log file and writes to it alongside the console.
func SetupLogging(logFilePath string, console io.Writer) error {
	f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, consts.PermsLogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
	}

	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	logger = zerolog.New(zerolog.MultiLevelWriter(newConsoleWriter(console), f)).
		With().
		Timestamp().
		Logger()
	return nil
}

// SetOutput sends log output to the given writer only. Mainly useful in tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.New(newConsoleWriter(w))
}

// Close closes the log file, if one is open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	logger = zerolog.New(newConsoleWriter(os.Stdout))
	return err
}

// I logs an info message.
func I(format string, args ...any) {
	emit(zerolog.InfoLevel, kindInfo, format, args...)
}

// S logs a success message.
func S(format string, args ...any) {
	emit(zerolog.InfoLevel, kindSuccess, format, args...)
}

// W logs a warning.
func W(format string, args ...any) {
	emit(zerolog.WarnLevel, kindWarning, format, args...)
}

// E logs an error.
func E(format string, args ...any) {
	emit(zerolog.ErrorLevel, kindError, format, args...)
}

// D logs a debug message if the debug level is at least l.
func D(l int, format string, args ...any) {
	if l > Level {
		return
	}
	mu.RLock()
	defer mu.RUnlock()

	evt := logger.WithLevel(zerolog.DebugLevel).Str(kindField, kindDebug).Int(depthField, l)
	msg(evt, format, args...)
}

// P prints a plain message with no prefix.
func P(format string, args ...any) {
	emit(zerolog.NoLevel, kindPlain, format, args...)
}

func emit(lvl zerolog.Level, kind, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	msg(logger.WithLevel(lvl).Str(kindField, kind), format, args...)
}

func msg(evt *zerolog.Event, format string, args ...any) {
	if len(args) == 0 {
		evt.Msg(format)
		return
	}
	evt.Msgf(format, args...)
}
