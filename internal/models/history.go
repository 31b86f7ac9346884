package models

import "time"

// BatchRecord is a finished batch as stored in the history database.
type BatchRecord struct {
	ID             string         `json:"id"`
	Mode           Mode           `json:"mode"`
	Counters       BatchCounters  `json:"counters"`
	Classification Classification `json:"classification"`
	StartedAt      time.Time      `json:"started_at"`
	FinishedAt     time.Time      `json:"finished_at"`
	Items          []ItemRecord   `json:"items,omitempty"`
}

// ItemRecord is the stored outcome of one URL in a batch.
type ItemRecord struct {
	URL        string    `json:"url"`
	Site       string    `json:"site"`
	Outcome    Outcome   `json:"outcome"`
	Error      string    `json:"error,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}
