// Package database sets up/opens the program database.
package database

import (
	"database/sql"
	"fmt"
	"os"

	"media-dupes/internal/domain/consts"
	"media-dupes/internal/utils/logging"

	// Package sqlite3 provides interface to SQLite3 databases.
	_ "github.com/mattn/go-sqlite3"
)

const (
	dbDriver = "sqlite3"
)

// Database holds the database handle for media-dupes.
type Database struct {
	DB *sql.DB
}

// InitDB opens the database at path and makes sure every table exists.
func InitDB(path string) (_ *Database, err error) {
	d := new(Database)
	d.DB, err = sql.Open(dbDriver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path %q: %w", path, err)
	}
	defer func() {
		if err != nil {
			if closeErr := d.DB.Close(); closeErr != nil {
				logging.E("Failed to close database after setup error: %v", closeErr)
			}
		}
	}()

	// PRAGMAs are per connection, keep a single one
	d.DB.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err = d.DB.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Enable Write-Ahead Logging so the API server and CLI can share the file
	if _, err = d.DB.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Allow SQLite to wait for locks (in milliseconds)
	if _, err = d.DB.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}

	// Slightly reduce fsync frequency for faster writes
	if _, err = d.DB.Exec(`PRAGMA synchronous = NORMAL;`); err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	if err = d.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	// Keep the history private, the file exists once tables are created
	if chmodErr := os.Chmod(path, consts.PermsDBFile); chmodErr != nil {
		logging.W("Failed to set permissions on database %q: %v", path, chmodErr)
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.DB.Close()
}

// initTables initializes the SQL tables.
func (d *Database) initTables() (err error) {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Panic rollback failed for table creation: %v", rbErr)
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Transaction rollback failed after original error %v: %v", err, rbErr)
			}
		}
	}()

	if err = initBatchesTable(tx); err != nil {
		return err
	}
	if err = initBatchItemsTable(tx); err != nil {
		return err
	}
	if err = initQueueTable(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
