package models

import "time"

// BatchCounters holds the completion accounting for one batch.
type BatchCounters struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Cancelled int `json:"cancelled"`
}

// Finished returns the number of tasks with a terminal outcome.
func (c BatchCounters) Finished() int {
	return c.Succeeded + c.Failed + c.Cancelled
}

// Complete reports whether every task has finished.
func (c BatchCounters) Complete() bool {
	return c.Finished() == c.Total
}

// Classification is the terminal verdict of a batch.
type Classification string

const (
	FullSuccess    Classification = "full_success"
	PartialFailure Classification = "partial_failure"
	TotalFailure   Classification = "total_failure"
	Cancelled      Classification = "cancelled"
)

// String returns the string representation of Classification.
func (c Classification) String() string {
	return string(c)
}

// ClearsQueue reports whether the queue should be emptied after a batch with this classification.
func (c Classification) ClearsQueue() bool {
	return c == FullSuccess || c == PartialFailure
}

// Severity of a user-facing notice.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Report is the single terminal report closing out a batch.
type Report struct {
	BatchID        string         `json:"batch_id"`
	Mode           Mode           `json:"mode"`
	Classification Classification `json:"classification"`
	Counters       BatchCounters  `json:"counters"`
	Message        string         `json:"message"`
	Severity       Severity       `json:"severity"`
	// Timeout is how long the notice stays up. Zero means the user must dismiss it.
	Timeout    time.Duration `json:"timeout"`
	FinishedAt time.Time     `json:"finished_at"`
}
