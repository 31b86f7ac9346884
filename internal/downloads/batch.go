package downloads

import (
	"context"
	"sync"
	"time"

	"media-dupes/internal/models"

	"github.com/google/uuid"
)

// Batch is one run of the dispatcher over a list of URLs in one mode.
type Batch struct {
	ID        string
	Mode      models.Mode
	Args      []string
	StartedAt time.Time

	tasks   []*models.DownloadTask
	tracker *Tracker
	cancel  context.CancelFunc

	mu     sync.Mutex
	report *models.Report
	done   chan struct{}
}

func newBatch(urls []string, mode models.Mode, args []string) *Batch {
	b := &Batch{
		ID:        uuid.NewString(),
		Mode:      mode,
		Args:      args,
		StartedAt: time.Now(),
		tasks:     make([]*models.DownloadTask, 0, len(urls)),
		cancel:    func() {},
		done:      make(chan struct{}),
	}
	for _, u := range urls {
		b.tasks = append(b.tasks, &models.DownloadTask{
			URL:     u,
			Mode:    mode,
			Args:    args,
			Outcome: models.OutcomePending,
		})
	}
	b.tracker = NewTracker(b.ID, mode, len(urls))
	return b
}

// Done is closed once the batch has its terminal report, or immediately for an empty batch.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the batch finishes. ok is false for an empty batch, which has no report.
func (b *Batch) Wait() (r models.Report, ok bool) {
	<-b.done
	return b.Report()
}

// WaitContext is Wait with a deadline for the caller.
func (b *Batch) WaitContext(ctx context.Context) (models.Report, bool, error) {
	select {
	case <-b.done:
		r, ok := b.Report()
		return r, ok, nil
	case <-ctx.Done():
		return models.Report{}, false, ctx.Err()
	}
}

// Report returns the terminal report if the batch has one yet.
func (b *Batch) Report() (models.Report, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.report == nil {
		return models.Report{}, false
	}
	return *b.report, true
}

// Counters returns the live counters.
func (b *Batch) Counters() models.BatchCounters {
	return b.tracker.Counters()
}

// Tasks waits for the batch to finish and returns copies of its tasks.
func (b *Batch) Tasks() []models.DownloadTask {
	<-b.done
	out := make([]models.DownloadTask, 0, len(b.tasks))
	for _, t := range b.tasks {
		out = append(out, *t)
	}
	return out
}

// Cancel stops running downloads and skips the ones not started yet.
func (b *Batch) Cancel() {
	b.cancel()
}

// finish stores the report and releases waiters.
func (b *Batch) finish(r models.Report) {
	b.mu.Lock()
	b.report = &r
	b.mu.Unlock()
	close(b.done)
}
