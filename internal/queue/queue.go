// Package queue holds the ordered set of unique URLs waiting for the next batch.
package queue

import (
	"strings"
	"sync"

	"media-dupes/internal/utils/logging"
	"media-dupes/internal/validation"
)

// Queue is an insertion-ordered set of normalized URLs. It is safe for concurrent use.
type Queue struct {
	mu    sync.RWMutex
	urls  []string
	index map[string]struct{}
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{
		index: make(map[string]struct{}),
	}
}

// Add validates and normalizes raw, then appends it unless already present.
//
// The returned URL is the normalized form. duplicate is true when the queue already held it,
// in which case the queue is unchanged.
func (q *Queue) Add(raw string) (normalized string, duplicate bool, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false, &EmptyURLError{}
	}
	if !validation.ValidateURL(trimmed) {
		return "", false, &InvalidURLError{URL: trimmed}
	}
	normalized = validation.DecodeFully(trimmed)

	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.index[normalized]; exists {
		logging.W("URL %q is already in the queue, skipping", normalized)
		return normalized, true, nil
	}
	q.index[normalized] = struct{}{}
	q.urls = append(q.urls, normalized)
	logging.D(1, "Queued URL %q (queue size %d)", normalized, len(q.urls))
	return normalized, false, nil
}

// Snapshot returns the queued URLs in insertion order. The queue is not modified.
func (q *Queue) Snapshot() []string {
	q.mu.RLock()
	defer q.mu.RUnlock()

	out := make([]string, len(q.urls))
	copy(out, q.urls)
	return out
}

// String renders the queue one URL per line, for previews.
func (q *Queue) String() string {
	return strings.Join(q.Snapshot(), "\n")
}

// Reset empties the queue.
func (q *Queue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.urls = nil
	q.index = make(map[string]struct{})
}

// Size returns the number of queued URLs.
func (q *Queue) Size() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.urls)
}
