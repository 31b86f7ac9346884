// Package downloads runs batches of downloads through the external download tool.
package downloads

import (
	"context"
	"fmt"
	"sync"
	"time"

	"media-dupes/internal/command/builder"
	"media-dupes/internal/domain/consts"
	"media-dupes/internal/models"
	"media-dupes/internal/notify"
	"media-dupes/internal/utils/logging"
	"media-dupes/internal/validation"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Dispatcher fans a batch out to one download tool process per URL.
//
// Only one batch runs at a time per dispatcher.
type Dispatcher struct {
	runner Runner
	sink   notify.Sink

	mu      sync.Mutex
	current *Batch
}

// NewDispatcher returns a dispatcher using runner for downloads and reporting to sink.
func NewDispatcher(runner Runner, sink notify.Sink) *Dispatcher {
	if sink == nil {
		sink = notify.Nop{}
	}
	return &Dispatcher{
		runner: runner,
		sink:   sink,
	}
}

// Current returns the batch in flight, or nil.
func (d *Dispatcher) Current() *Batch {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Start launches a batch and returns without waiting for it.
//
// Arguments are built once for the whole batch. An empty urls list starts nothing and returns a
// batch that is already done and has no report. Cancelling ctx cancels the batch.
// s.MaxConcurrent caps simultaneous downloads, zero means one process per URL at once.
func (d *Dispatcher) Start(ctx context.Context, urls []string, mode models.Mode, s *models.Settings) (*Batch, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current != nil {
		return nil, &BatchAlreadyRunningError{BatchID: d.current.ID}
	}

	args, err := builder.Build(mode, s)
	if err != nil {
		return nil, err
	}

	if len(urls) == 0 {
		logging.D(1, "No URLs to download, nothing to do")
		b := newBatch(nil, mode, args)
		close(b.done)
		return b, nil
	}

	// One bad directory blocks the whole batch
	if err := validation.ValidateWritableDirectory(s.DownloadDir); err != nil {
		dirErr := &OutputDirError{Dir: s.DownloadDir, Err: err}
		d.sink.Notice(models.SeverityError, dirErr.Error(), consts.NoticeSticky)
		return nil, dirErr
	}

	b := newBatch(urls, mode, args)
	ctx, b.cancel = context.WithCancel(ctx)
	d.current = b

	logging.I("Starting %s batch %s with %d URL(s)", mode, b.ID, len(urls))
	go d.run(ctx, b, s.MaxConcurrent)
	return b, nil
}

// run schedules every task of the batch.
func (d *Dispatcher) run(ctx context.Context, b *Batch, limit int) {
	defer b.cancel()

	g := new(errgroup.Group)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, task := range b.tasks {
		if ctx.Err() != nil {
			d.record(b, task, models.OutcomeCancelled, ctx.Err())
			continue
		}
		g.Go(func() error {
			d.runTask(ctx, b, task)
			return nil
		})
	}
	_ = g.Wait()
}

// runTask runs one download and records its outcome. Errors never leave this function.
func (d *Dispatcher) runTask(ctx context.Context, b *Batch, task *models.DownloadTask) {
	if err := ctx.Err(); err != nil {
		d.record(b, task, models.OutcomeCancelled, err)
		return
	}
	task.StartedAt = time.Now()

	limiter := rate.NewLimiter(rate.Every(consts.ProgressInterval), 1)
	onLine := func(line string) {
		task.Output = append(task.Output, line)
		d.sink.Log(line)
		if pct, ok := ParseProgress(line); ok && (pct >= 100 || limiter.Allow()) {
			d.sink.Progress(task.URL, pct)
		}
	}

	err := d.runner.Run(ctx, task.URL, task.Args, onLine)
	switch {
	case err == nil:
		logging.S("Downloaded %q", task.URL)
		d.record(b, task, models.OutcomeSucceeded, nil)

	case ctx.Err() != nil:
		logging.W("Download of %q cancelled", task.URL)
		d.record(b, task, models.OutcomeCancelled, ctx.Err())

	default:
		msg := fmt.Sprintf("Failed to download %s: %v", task.URL, err)
		d.sink.Log(msg)
		d.sink.Notice(models.SeverityError, msg, consts.NoticeSticky)
		d.record(b, task, models.OutcomeFailed, err)
	}
}

// record stores the task outcome and, for the last one, emits the terminal report.
func (d *Dispatcher) record(b *Batch, task *models.DownloadTask, o models.Outcome, err error) {
	task.Outcome = o
	task.Err = err
	task.FinishedAt = time.Now()

	r, complete := b.tracker.RecordOutcome(o)
	if !complete {
		return
	}

	d.sink.Log(r.Message)
	d.sink.Notice(r.Severity, r.Message, r.Timeout)
	d.sink.Desktop(consts.ProgramName, r.Message)
	d.sink.BatchFinished(r)

	d.mu.Lock()
	if d.current == b {
		d.current = nil
	}
	d.mu.Unlock()

	b.finish(r)
}
