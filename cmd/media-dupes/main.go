// Package main is the entrypoint of media-dupes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-dupes/internal/cfg"
	"media-dupes/internal/database"
	"media-dupes/internal/domain/paths"
	"media-dupes/internal/utils/logging"
)

// main is the main entrypoint of the program.
func main() {
	os.Exit(run())
}

func run() int {
	startTime := time.Now()

	if err := paths.InitProgFilesDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "media-dupes exiting with error: %v\n", err)
		return 1
	}

	// Setup logging, continuing on the console if the log file is unavailable
	if err := logging.SetupLogging(paths.LogFilePath, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "could not set up logging, proceeding without: %v\n", err)
	}
	defer func() {
		if err := logging.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}()

	db, err := database.InitDB(paths.DBFilePath)
	if err != nil {
		logging.E("Error initializing database: %v", err)
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.E("Failed to close database: %v", err)
		}
	}()

	logging.D(1, "media-dupes (PID: %d) started at: %v", os.Getpid(), startTime.Format("2006-01-02 15:04:05.00 MST"))

	// Interrupts cancel the running batch
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cfg.Execute(ctx, db.DB); err != nil {
		logging.E("Error: %v", err)
		return 1
	}

	logging.D(1, "media-dupes finished in %v", time.Since(startTime).Round(time.Millisecond))
	return 0
}
