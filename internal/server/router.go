// Package server exposes the queue and dispatcher to remote UIs over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"media-dupes/internal/app"
	"media-dupes/internal/models"
	"media-dupes/internal/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server holds the handler dependencies.
type Server struct {
	app      *app.App
	settings *models.Settings
	events   *EventLogSink

	// batchCtx parents every batch started over the API, requests end before their batches do
	batchCtx context.Context
}

// NewRouter returns a http Handler.
//
// Batches started through the API run under ctx. events may be nil.
func NewRouter(ctx context.Context, a *app.App, s *models.Settings, events *EventLogSink) http.Handler {
	srv := &Server{
		app:      a,
		settings: s,
		events:   events,
		batchCtx: ctx,
	}

	// Initialize router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// --- API Routes ---
	r.Route("/api/v1", func(r chi.Router) {
		// Queue API
		r.Route("/queue", func(r chi.Router) {
			r.Get("/", srv.handleGetQueue)
			r.Post("/", srv.handleAddToQueue)
			r.Delete("/", srv.handleResetQueue)
		})

		// Batches API
		r.Route("/batches", func(r chi.Router) {
			r.Post("/", srv.handleStartBatch)
			r.Get("/current", srv.handleCurrentBatch)
			r.Delete("/current", srv.handleCancelBatch)
		})

		r.Get("/history", srv.handleHistory)
		r.Get("/events", srv.handleEvents)
	})

	return r
}

// StartServer serves h on addr until ctx is cancelled.
func StartServer(ctx context.Context, addr string, h http.Handler) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.S("media-dupes web server running on http://localhost%s", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logging.I("Web server stopped")
	return nil
}
