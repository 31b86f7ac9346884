package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"media-dupes/internal/command/builder"
	"media-dupes/internal/downloads"
	"media-dupes/internal/models"
	"media-dupes/internal/parsing"
	"media-dupes/internal/queue"
	"media-dupes/internal/utils/logging"
	"media-dupes/internal/validation"
)

type addURLRequest struct {
	URL string `json:"url" validate:"required,mediaurl"`
}

type addURLResponse struct {
	URL       string `json:"url"`
	Duplicate bool   `json:"duplicate"`
	Size      int    `json:"size"`
}

type queueResponse struct {
	URLs []string `json:"urls"`
	Size int      `json:"size"`
}

type startBatchRequest struct {
	Mode string `json:"mode" validate:"required,oneof=audio video"`
}

type batchResponse struct {
	ID        string               `json:"id"`
	Mode      models.Mode          `json:"mode"`
	StartedAt time.Time            `json:"started_at"`
	Counters  models.BatchCounters `json:"counters"`
	Done      bool                 `json:"done"`
	Report    *models.Report       `json:"report,omitempty"`
}

// handleGetQueue lists the queued URLs.
func (s *Server) handleGetQueue(w http.ResponseWriter, r *http.Request) {
	urls := s.app.Queue.Snapshot()
	writeJSON(w, http.StatusOK, queueResponse{URLs: urls, Size: len(urls)})
}

// handleAddToQueue adds one URL to the queue.
func (s *Server) handleAddToQueue(w http.ResponseWriter, r *http.Request) {
	var req addURLRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	normalized, duplicate, err := s.app.Enqueue(r.Context(), req.URL)
	if err != nil {
		var emptyErr *queue.EmptyURLError
		var invalidErr *queue.InvalidURLError
		if errors.As(err, &emptyErr) || errors.As(err, &invalidErr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logging.E("Failed to queue %q: %v", req.URL, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	status := http.StatusCreated
	if duplicate {
		status = http.StatusOK
	}
	writeJSON(w, status, addURLResponse{URL: normalized, Duplicate: duplicate, Size: s.app.Queue.Size()})
}

// handleResetQueue empties the queue.
func (s *Server) handleResetQueue(w http.ResponseWriter, r *http.Request) {
	if err := s.app.ResetQueue(r.Context()); err != nil {
		logging.E("Failed to reset queue: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleStartBatch starts a batch over the current queue.
func (s *Server) handleStartBatch(w http.ResponseWriter, r *http.Request) {
	var req startBatchRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	b, err := s.app.StartBatch(s.batchCtx, models.Mode(req.Mode), s.settings)
	if err != nil {
		var (
			runningErr *downloads.BatchAlreadyRunningError
			modeErr    *builder.InvalidModeError
			dirErr     *downloads.OutputDirError
		)
		switch {
		case errors.As(err, &runningErr):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.As(err, &modeErr):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.As(err, &dirErr):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			logging.E("Failed to start batch: %v", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	status := http.StatusAccepted
	select {
	case <-b.Done():
		status = http.StatusOK
	default:
	}
	writeJSON(w, status, batchView(b))
}

// handleCurrentBatch returns the batch in flight.
func (s *Server) handleCurrentBatch(w http.ResponseWriter, r *http.Request) {
	b := s.app.Dispatcher.Current()
	if b == nil {
		http.Error(w, "no batch running", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, batchView(b))
}

// handleCancelBatch cancels the batch in flight.
func (s *Server) handleCancelBatch(w http.ResponseWriter, r *http.Request) {
	b := s.app.Dispatcher.Current()
	if b == nil {
		http.Error(w, "no batch running", http.StatusNotFound)
		return
	}
	b.Cancel()
	logging.W("Batch %s cancelled over the API", b.ID)
	writeJSON(w, http.StatusAccepted, batchView(b))
}

// handleHistory lists finished batches. Accepts ?since= and ?limit=.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	since, err := parsing.ParseSince(r.URL.Query().Get("since"), time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if limit, err = strconv.Atoi(l); err != nil || limit < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}

	recs, err := s.app.History(r.Context(), since, limit)
	if err != nil {
		logging.E("Failed to list history: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []models.BatchRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// handleEvents returns sink events newer than ?after=.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.events == nil {
		writeJSON(w, http.StatusOK, []Event{})
		return
	}

	var after uint64
	if a := r.URL.Query().Get("after"); a != "" {
		var err error
		if after, err = strconv.ParseUint(a, 10, 64); err != nil {
			http.Error(w, "invalid after", http.StatusBadRequest)
			return
		}
	}
	writeJSON(w, http.StatusOK, s.events.After(after))
}

func batchView(b *downloads.Batch) batchResponse {
	resp := batchResponse{
		ID:        b.ID,
		Mode:      b.Mode,
		StartedAt: b.StartedAt,
		Counters:  b.Counters(),
	}
	select {
	case <-b.Done():
		resp.Done = true
	default:
	}
	if rep, ok := b.Report(); ok {
		resp.Report = &rep
	}
	return resp
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	if err := validation.Struct(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.E("Failed to encode JSON response: %v", err)
	}
}
