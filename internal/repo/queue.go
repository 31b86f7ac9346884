package repo

import (
	"context"
	"database/sql"
	"fmt"

	"media-dupes/internal/domain/consts"
	"media-dupes/internal/utils/logging"

	"github.com/Masterminds/squirrel"
)

// QueueStore persists the pending queue between program runs.
type QueueStore struct {
	DB *sql.DB
}

// GetQueueStore returns a queue store instance with injected database.
func GetQueueStore(db *sql.DB) *QueueStore {
	return &QueueStore{
		DB: db,
	}
}

// Load returns the stored URLs in insertion order.
func (qs *QueueStore) Load(ctx context.Context) ([]string, error) {
	rows, err := squirrel.
		Select(consts.QQueueURL).
		From(consts.DBQueue).
		OrderBy(consts.QQueueID).
		RunWith(qs.DB).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load queue: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logging.E("Failed to close rows: %v", err)
		}
	}()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan queued URL: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

// Add stores a URL, returning false if it was already stored.
func (qs *QueueStore) Add(ctx context.Context, url string) (bool, error) {
	res, err := squirrel.
		Insert(consts.DBQueue).
		Options("OR IGNORE").
		Columns(consts.QQueueURL).
		Values(url).
		RunWith(qs.DB).
		ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to queue URL %q: %w", url, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Clear deletes every stored URL.
func (qs *QueueStore) Clear(ctx context.Context) error {
	if _, err := squirrel.Delete(consts.DBQueue).RunWith(qs.DB).ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}
	return nil
}
