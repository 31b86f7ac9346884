package database

import (
	"database/sql"
	"fmt"
)

// initBatchesTable initializes the finished batch table.
func initBatchesTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS batches (
        id TEXT PRIMARY KEY,
        mode TEXT NOT NULL,
        total INTEGER NOT NULL,
        succeeded INTEGER NOT NULL DEFAULT 0,
        failed INTEGER NOT NULL DEFAULT 0,
        cancelled INTEGER NOT NULL DEFAULT 0,
        classification TEXT NOT NULL,
        started_at TIMESTAMP NOT NULL,
        finished_at TIMESTAMP NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_batches_finished_at ON batches(finished_at);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create batches table: %w", err)
	}
	return nil
}

// initBatchItemsTable initializes the per-URL outcome table.
func initBatchItemsTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS batch_items (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        batch_id TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
        url TEXT NOT NULL,
        site TEXT,
        status TEXT NOT NULL,
        error_message TEXT,
        finished_at TIMESTAMP
    );
    CREATE INDEX IF NOT EXISTS idx_batch_items_batch ON batch_items(batch_id);
    CREATE INDEX IF NOT EXISTS idx_batch_items_site ON batch_items(site);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create batch_items table: %w", err)
	}
	return nil
}

// initQueueTable initializes the persisted queue.
func initQueueTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS queue (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        url TEXT NOT NULL UNIQUE,
        added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create queue table: %w", err)
	}
	return nil
}
