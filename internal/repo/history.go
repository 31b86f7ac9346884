// Package repo holds the database stores.
package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"media-dupes/internal/domain/consts"
	"media-dupes/internal/models"
	"media-dupes/internal/utils/logging"

	"github.com/Masterminds/squirrel"
)

// HistoryStore holds a pointer to the sql.DB.
type HistoryStore struct {
	DB *sql.DB
}

// GetHistoryStore returns a history store instance with injected database.
func GetHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{
		DB: db,
	}
}

var batchColumns = []string{
	consts.QBatchID,
	consts.QBatchMode,
	consts.QBatchTotal,
	consts.QBatchSucceeded,
	consts.QBatchFailed,
	consts.QBatchCancelled,
	consts.QBatchClassification,
	consts.QBatchStartedAt,
	consts.QBatchFinishedAt,
}

// SaveBatch stores a finished batch and its items in one transaction.
func (hs *HistoryStore) SaveBatch(ctx context.Context, rec *models.BatchRecord) (err error) {
	tx, err := hs.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Panic rollback failed for batch %q: %v", rec.ID, rbErr)
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Error rolling back batch %q (original error: %v): %v", rec.ID, err, rbErr)
			}
		}
	}()

	query := squirrel.
		Insert(consts.DBBatches).
		Columns(batchColumns...).
		Values(
			rec.ID,
			string(rec.Mode),
			rec.Counters.Total,
			rec.Counters.Succeeded,
			rec.Counters.Failed,
			rec.Counters.Cancelled,
			string(rec.Classification),
			rec.StartedAt.UTC(),
			rec.FinishedAt.UTC(),
		).
		RunWith(tx)

	if _, err = query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to insert batch %q: %w", rec.ID, err)
	}

	if len(rec.Items) > 0 {
		items := squirrel.
			Insert(consts.DBBatchItems).
			Columns(
				consts.QItemBatchID,
				consts.QItemURL,
				consts.QItemSite,
				consts.QItemStatus,
				consts.QItemError,
				consts.QItemFinishedAt,
			)
		for _, it := range rec.Items {
			items = items.Values(rec.ID, it.URL, it.Site, string(it.Outcome), it.Error, it.FinishedAt.UTC())
		}
		if _, err = items.RunWith(tx).ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to insert items for batch %q: %w", rec.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	logging.D(1, "Saved batch %q with %d item(s)", rec.ID, len(rec.Items))
	return nil
}

// ListBatches returns batches finished at or after since, newest first.
// A zero since returns every batch, and limit <= 0 means no limit. Items are not loaded.
func (hs *HistoryStore) ListBatches(ctx context.Context, since time.Time, limit int) ([]models.BatchRecord, error) {
	q := squirrel.
		Select(batchColumns...).
		From(consts.DBBatches).
		OrderBy(consts.QBatchFinishedAt + " DESC")

	if !since.IsZero() {
		q = q.Where(squirrel.GtOrEq{consts.QBatchFinishedAt: since.UTC()})
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	rows, err := q.RunWith(hs.DB).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logging.E("Failed to close rows: %v", err)
		}
	}()

	var out []models.BatchRecord
	for rows.Next() {
		rec, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetBatch returns one batch with its items.
func (hs *HistoryStore) GetBatch(ctx context.Context, id string) (*models.BatchRecord, bool, error) {
	row := squirrel.
		Select(batchColumns...).
		From(consts.DBBatches).
		Where(squirrel.Eq{consts.QBatchID: id}).
		RunWith(hs.DB).
		QueryRowContext(ctx)

	rec, err := scanBatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	rec.Items, err = hs.items(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return &rec, true, nil
}

func (hs *HistoryStore) items(ctx context.Context, batchID string) ([]models.ItemRecord, error) {
	rows, err := squirrel.
		Select(consts.QItemURL, consts.QItemSite, consts.QItemStatus, consts.QItemError, consts.QItemFinishedAt).
		From(consts.DBBatchItems).
		Where(squirrel.Eq{consts.QItemBatchID: batchID}).
		OrderBy(consts.QItemID).
		RunWith(hs.DB).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for batch %q: %w", batchID, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logging.E("Failed to close rows: %v", err)
		}
	}()

	var out []models.ItemRecord
	for rows.Next() {
		var (
			it         models.ItemRecord
			site, msg  sql.NullString
			status     string
			finishedAt sql.NullTime
		)
		if err := rows.Scan(&it.URL, &site, &status, &msg, &finishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item for batch %q: %w", batchID, err)
		}
		it.Site = site.String
		it.Outcome = models.Outcome(status)
		it.Error = msg.String
		it.FinishedAt = finishedAt.Time
		out = append(out, it)
	}
	return out, rows.Err()
}

// SiteCounts returns how many URLs per site were downloaded in batches finished since the given time.
func (hs *HistoryStore) SiteCounts(ctx context.Context, since time.Time) (map[string]int, error) {
	q := squirrel.
		Select("i."+consts.QItemSite, "COUNT(*)").
		From(consts.DBBatchItems + " i").
		Join(consts.DBBatches + " b ON b." + consts.QBatchID + " = i." + consts.QItemBatchID).
		Where(squirrel.Eq{"i." + consts.QItemStatus: string(models.OutcomeSucceeded)}).
		GroupBy("i." + consts.QItemSite)

	if !since.IsZero() {
		q = q.Where(squirrel.GtOrEq{"b." + consts.QBatchFinishedAt: since.UTC()})
	}

	rows, err := q.RunWith(hs.DB).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count sites: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logging.E("Failed to close rows: %v", err)
		}
	}()

	out := make(map[string]int)
	for rows.Next() {
		var (
			site sql.NullString
			n    int
		)
		if err := rows.Scan(&site, &n); err != nil {
			return nil, fmt.Errorf("failed to scan site count: %w", err)
		}
		out[site.String] += n
	}
	return out, rows.Err()
}

func scanBatch(row squirrel.RowScanner) (models.BatchRecord, error) {
	var (
		rec            models.BatchRecord
		mode, classify string
	)
	err := row.Scan(
		&rec.ID,
		&mode,
		&rec.Counters.Total,
		&rec.Counters.Succeeded,
		&rec.Counters.Failed,
		&rec.Counters.Cancelled,
		&classify,
		&rec.StartedAt,
		&rec.FinishedAt,
	)
	if err != nil {
		return rec, err
	}
	rec.Mode = models.Mode(mode)
	rec.Classification = models.Classification(classify)
	return rec, nil
}
