package downloads

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"media-dupes/internal/domain/command"
	"media-dupes/internal/domain/regex"
	"media-dupes/internal/utils/logging"
)

// Runner runs the external download tool once for one URL.
//
// onLine receives every output line (stdout and stderr) as it arrives.
// A nil error means the tool exited successfully.
type Runner interface {
	Run(ctx context.Context, url string, args []string, onLine func(string)) error
}

// ExecRunner runs the download tool as a subprocess.
type ExecRunner struct {
	Path string
}

// NewExecRunner returns a runner for the tool at path, defaulting to youtube-dl.
func NewExecRunner(path string) *ExecRunner {
	if path == "" {
		path = command.YoutubeDL
	}
	return &ExecRunner{Path: path}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, url string, args []string, onLine func(string)) error {
	// Add target URL [ MUST GO LAST !! ]
	full := make([]string, 0, len(args)+1)
	full = append(full, args...)
	full = append(full, url)

	cmd := exec.CommandContext(ctx, r.Path, full...)
	cmd.WaitDelay = 5 * time.Second
	logging.D(1, "Built download command for URL %q:\n%v", url, cmd.String())

	// Merge stdout and stderr into one stream
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", r.Path, err)
	}

	waitErr := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		_ = pw.Close()
		waitErr <- err
	}()

	var lastError string
	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanLinesOrCR)
	for scanner.Scan() {
		line := strings.TrimSpace(regex.AnsiEscapeCompile().ReplaceAllString(scanner.Text(), ""))
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "ERROR:") {
			lastError = line
		}
		if onLine != nil {
			onLine(line)
		}
	}
	if err := scanner.Err(); err != nil {
		logging.W("Reading output for %q: %v", url, err)
		// Keep draining so the copy goroutine is never stuck
		_, _ = io.Copy(io.Discard, pr)
	}

	if err := <-waitErr; err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if lastError != "" {
			return fmt.Errorf("%s failed (%w): %s", r.Path, err, lastError)
		}
		return fmt.Errorf("%s failed: %w", r.Path, err)
	}
	return nil
}

// scanLinesOrCR splits on '\n' or '\r', so carriage-return progress updates arrive as lines.
func scanLinesOrCR(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
