package downloads

import (
	"fmt"
	"sync"
	"time"

	"media-dupes/internal/domain/consts"
	"media-dupes/internal/models"
	"media-dupes/internal/utils/logging"
)

// Tracker does the completion accounting for one batch.
//
// Counter updates and the completion check happen in one critical section,
// so the terminal report is produced exactly once.
type Tracker struct {
	mu       sync.Mutex
	batchID  string
	mode     models.Mode
	counters models.BatchCounters
	reported bool
}

// NewTracker returns a tracker expecting total outcomes.
func NewTracker(batchID string, mode models.Mode, total int) *Tracker {
	return &Tracker{
		batchID:  batchID,
		mode:     mode,
		counters: models.BatchCounters{Total: total},
	}
}

// RecordOutcome counts one finished task.
//
// It returns the terminal report, and true, for the call that completes the batch.
// Every other call returns false. Outcomes arriving after completion are ignored.
func (t *Tracker) RecordOutcome(o models.Outcome) (models.Report, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.reported || t.counters.Complete() {
		logging.E("Outcome %q recorded for batch %s after it finished, ignoring", o, t.batchID)
		return models.Report{}, false
	}

	switch o {
	case models.OutcomeSucceeded:
		t.counters.Succeeded++
	case models.OutcomeFailed:
		t.counters.Failed++
	case models.OutcomeCancelled:
		t.counters.Cancelled++
	default:
		logging.E("Outcome %q is not terminal, ignoring", o)
		return models.Report{}, false
	}

	if !t.counters.Complete() {
		logging.D(2, "Batch %s: %d/%d finished", t.batchID, t.counters.Finished(), t.counters.Total)
		return models.Report{}, false
	}

	t.reported = true
	r := Classify(t.counters)
	r.BatchID = t.batchID
	r.Mode = t.mode
	r.FinishedAt = time.Now()
	return r, true
}

// Counters returns a copy of the current counters.
func (t *Tracker) Counters() models.BatchCounters {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counters
}

// Classify builds the report for a completed set of counters.
func Classify(c models.BatchCounters) models.Report {
	r := models.Report{Counters: c}

	switch {
	case c.Cancelled > 0:
		r.Classification = models.Cancelled
		r.Message = fmt.Sprintf("Download queue (%d) cancelled - %d succeeded, %d failed, %d cancelled.",
			c.Total, c.Succeeded, c.Failed, c.Cancelled)
		r.Severity = models.SeverityWarning
		r.Timeout = consts.NoticeSticky

	case c.Succeeded == c.Total:
		r.Classification = models.FullSuccess
		r.Message = fmt.Sprintf("Finished entire download queue (%d) successfully", c.Total)
		r.Severity = models.SeveritySuccess
		r.Timeout = consts.NoticeAutoDismiss

	case c.Failed == c.Total:
		r.Classification = models.TotalFailure
		r.Message = fmt.Sprintf("Finished entire download queue (%d) - but all downloads failed with errors.", c.Total)
		r.Severity = models.SeverityError
		r.Timeout = consts.NoticeSticky

	default:
		r.Classification = models.PartialFailure
		r.Message = fmt.Sprintf("Finished entire download queue (%d) - %d succeeded and %d failed with errors.",
			c.Total, c.Succeeded, c.Failed)
		r.Severity = models.SeverityWarning
		r.Timeout = consts.NoticeSticky
	}
	return r
}
