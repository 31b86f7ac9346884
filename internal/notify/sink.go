// Package notify delivers log lines, notices, progress and batch reports to the user.
package notify

import (
	"time"

	"media-dupes/internal/models"
)

// Sink receives everything a running batch wants the user to see.
//
// Implementations must be safe for concurrent use, downloads call them from their own goroutines.
type Sink interface {
	// Log appends a raw line to the in-app log.
	Log(line string)
	// Notice raises an in-app notice. A zero timeout means the notice is sticky.
	Notice(sev models.Severity, msg string, timeout time.Duration)
	// Desktop raises an OS-level notification. It must not wait for the OS.
	Desktop(title, body string)
	// Progress reports the download percentage of one URL.
	Progress(url string, pct float64)
	// BatchFinished delivers the terminal report. It is called once per batch,
	// before the batch is released, so slow deliveries belong in the background.
	BatchFinished(r models.Report)
}

// Nop ignores everything. Embed it to implement only part of Sink.
type Nop struct{}

func (Nop) Log(string)                                    {}
func (Nop) Notice(models.Severity, string, time.Duration) {}
func (Nop) Desktop(string, string)                        {}
func (Nop) Progress(string, float64)                      {}
func (Nop) BatchFinished(models.Report)                   {}

// Multi fans every call out to each sink in order.
type Multi []Sink

func (m Multi) Log(line string) {
	for _, s := range m {
		s.Log(line)
	}
}

func (m Multi) Notice(sev models.Severity, msg string, timeout time.Duration) {
	for _, s := range m {
		s.Notice(sev, msg, timeout)
	}
}

func (m Multi) Desktop(title, body string) {
	for _, s := range m {
		s.Desktop(title, body)
	}
}

func (m Multi) Progress(url string, pct float64) {
	for _, s := range m {
		s.Progress(url, pct)
	}
}

func (m Multi) BatchFinished(r models.Report) {
	for _, s := range m {
		s.BatchFinished(r)
	}
}

// Wait blocks until every sink that delivers in the background is done.
func (m Multi) Wait() {
	for _, s := range m {
		if w, ok := s.(interface{ Wait() }); ok {
			w.Wait()
		}
	}
}
