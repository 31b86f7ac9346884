// Package app contains core application functionality.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"media-dupes/internal/contracts"
	"media-dupes/internal/downloads"
	"media-dupes/internal/models"
	"media-dupes/internal/parsing"
	"media-dupes/internal/queue"
	"media-dupes/internal/utils/logging"
)

// App ties the in-memory queue, its persisted copy, the dispatcher and history together.
type App struct {
	Queue      *queue.Queue
	Dispatcher *downloads.Dispatcher

	queueStore contracts.QueueStore
	history    contracts.HistoryStore

	// settling tracks batches whose results are not saved yet
	settling sync.WaitGroup
}

// New returns an App. Either store may be nil, the app then keeps that state in memory only.
func New(d *downloads.Dispatcher, qs contracts.QueueStore, hs contracts.HistoryStore) *App {
	return &App{
		Queue:      queue.New(),
		Dispatcher: d,
		queueStore: qs,
		history:    hs,
	}
}

// LoadQueue fills the in-memory queue from the persisted one.
func (a *App) LoadQueue(ctx context.Context) error {
	if a.queueStore == nil {
		return nil
	}
	urls, err := a.queueStore.Load(ctx)
	if err != nil {
		return err
	}
	for _, u := range urls {
		if _, _, err := a.Queue.Add(u); err != nil {
			logging.W("Dropping stored queue entry %q: %v", u, err)
		}
	}
	logging.D(1, "Loaded %d queued URL(s)", a.Queue.Size())
	return nil
}

// Enqueue adds a URL to the queue and persists it.
//
// Returns the normalized URL and whether it was already queued.
func (a *App) Enqueue(ctx context.Context, raw string) (string, bool, error) {
	normalized, duplicate, err := a.Queue.Add(raw)
	if err != nil || duplicate {
		return normalized, duplicate, err
	}
	if a.queueStore != nil {
		if _, err := a.queueStore.Add(ctx, normalized); err != nil {
			return normalized, false, err
		}
	}
	return normalized, false, nil
}

// ResetQueue empties the queue and its persisted copy.
func (a *App) ResetQueue(ctx context.Context) error {
	a.Queue.Reset()
	if a.queueStore != nil {
		return a.queueStore.Clear(ctx)
	}
	return nil
}

// StartBatch launches a batch over the current queue.
//
// Once the batch ends its results are saved to history, and the queue is reset
// if the batch succeeded at least partly.
func (a *App) StartBatch(ctx context.Context, mode models.Mode, s *models.Settings) (*downloads.Batch, error) {
	b, err := a.Dispatcher.Start(ctx, a.Queue.Snapshot(), mode, s)
	if err != nil {
		return nil, err
	}

	a.settling.Add(1)
	go func() {
		defer a.settling.Done()
		a.settle(context.WithoutCancel(ctx), b)
	}()
	return b, nil
}

// RunBatch is StartBatch, waiting for the batch and its bookkeeping to finish.
//
// ok is false if the queue was empty and nothing ran.
func (a *App) RunBatch(ctx context.Context, mode models.Mode, s *models.Settings) (r models.Report, ok bool, err error) {
	b, err := a.StartBatch(ctx, mode, s)
	if err != nil {
		return models.Report{}, false, err
	}
	r, ok = b.Wait()
	a.settling.Wait()
	return r, ok, nil
}

// Settle waits for every finished batch to be saved.
func (a *App) Settle() {
	a.settling.Wait()
}

// settle runs after a batch ends.
func (a *App) settle(ctx context.Context, b *downloads.Batch) {
	r, ok := b.Wait()
	if !ok {
		return
	}

	if r.Classification.ClearsQueue() {
		if err := a.ResetQueue(ctx); err != nil {
			logging.E("Failed to reset queue after batch %s: %v", b.ID, err)
		}
	}

	if a.history == nil {
		return
	}
	if err := a.history.SaveBatch(ctx, Record(b, r)); err != nil {
		logging.E("Failed to save batch %s to history: %v", b.ID, err)
	}
}

// Record converts a finished batch to its history form.
func Record(b *downloads.Batch, r models.Report) *models.BatchRecord {
	tasks := b.Tasks()
	rec := &models.BatchRecord{
		ID:             b.ID,
		Mode:           b.Mode,
		Counters:       r.Counters,
		Classification: r.Classification,
		StartedAt:      b.StartedAt,
		FinishedAt:     r.FinishedAt,
		Items:          make([]models.ItemRecord, 0, len(tasks)),
	}
	for _, t := range tasks {
		rec.Items = append(rec.Items, models.ItemRecord{
			URL:        t.URL,
			Site:       parsing.Site(t.URL),
			Outcome:    t.Outcome,
			Error:      t.ErrorText(),
			FinishedAt: t.FinishedAt,
		})
	}
	return rec
}

// History returns finished batches, newest first.
func (a *App) History(ctx context.Context, since time.Time, limit int) ([]models.BatchRecord, error) {
	if a.history == nil {
		return nil, fmt.Errorf("no history store configured")
	}
	return a.history.ListBatches(ctx, since, limit)
}

// SiteCounts returns downloaded URL counts per site since the given time.
func (a *App) SiteCounts(ctx context.Context, since time.Time) (map[string]int, error) {
	if a.history == nil {
		return nil, fmt.Errorf("no history store configured")
	}
	return a.history.SiteCounts(ctx, since)
}
