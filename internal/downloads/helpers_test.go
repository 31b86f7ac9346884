package downloads

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"media-dupes/internal/models"
)

// fakeRunner fails the URLs in fail and succeeds for the rest.
type fakeRunner struct {
	fail    map[string]bool
	lines   []string
	block   chan struct{} // when set, Run waits for it to close or ctx to end
	calls   atomic.Int32
	running atomic.Int32
	peak    atomic.Int32
}

func (f *fakeRunner) Run(ctx context.Context, url string, _ []string, onLine func(string)) error {
	f.calls.Add(1)
	n := f.running.Add(1)
	defer f.running.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	for _, l := range f.lines {
		onLine(l)
	}

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.fail[url] {
		return errors.New("ERROR: unsupported URL")
	}
	return nil
}

// recordingSink keeps everything it is sent.
type recordingSink struct {
	mu       sync.Mutex
	lines    []string
	notices  []models.Severity
	desktop  []string
	progress []float64
	reports  []models.Report
}

func (s *recordingSink) Log(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
}

func (s *recordingSink) Notice(sev models.Severity, _ string, _ time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, sev)
}

func (s *recordingSink) Desktop(_, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.desktop = append(s.desktop, body)
}

func (s *recordingSink) Progress(_ string, pct float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = append(s.progress, pct)
}

func (s *recordingSink) BatchFinished(r models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, r)
}

func (s *recordingSink) reportCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}
