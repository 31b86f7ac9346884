package models

import "time"

// Outcome is the state of a single DownloadTask.
type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
)

// String returns the string representation of Outcome.
func (o Outcome) String() string {
	return string(o)
}

// IsFinished returns true once the task has reached a terminal outcome.
func (o Outcome) IsFinished() bool {
	return o == OutcomeSucceeded || o == OutcomeFailed || o == OutcomeCancelled
}

// DownloadTask is one URL in one batch.
//
// A task is owned by the dispatcher goroutine running it until its outcome is recorded.
type DownloadTask struct {
	URL        string
	Mode       Mode
	Args       []string
	Outcome    Outcome
	Output     []string
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
}

// ErrorText returns the task error as a string, or "" when there is none.
func (t DownloadTask) ErrorText() string {
	if t.Err == nil {
		return ""
	}
	return t.Err.Error()
}
