// Package contracts defines interfaces that decouple the application layer from storage implementations.
package contracts

import (
	"context"
	"time"

	"media-dupes/internal/models"
)

// QueueStore allows access to the persisted queue.
type QueueStore interface {
	Load(ctx context.Context) ([]string, error)
	Add(ctx context.Context, url string) (bool, error)
	Clear(ctx context.Context) error
}

// HistoryStore allows access to finished batches.
type HistoryStore interface {
	SaveBatch(ctx context.Context, rec *models.BatchRecord) error
	ListBatches(ctx context.Context, since time.Time, limit int) ([]models.BatchRecord, error)
	GetBatch(ctx context.Context, id string) (*models.BatchRecord, bool, error)
	SiteCounts(ctx context.Context, since time.Time) (map[string]int, error)
}
