package server

import (
	"sync"
	"time"

	"media-dupes/internal/models"
)

// EventKind tells a remote UI how to render an Event.
type EventKind string

const (
	EventLog      EventKind = "log"
	EventNotice   EventKind = "notice"
	EventDesktop  EventKind = "desktop"
	EventProgress EventKind = "progress"
	EventReport   EventKind = "report"
)

// Event is one entry of the event log.
type Event struct {
	Seq      uint64          `json:"seq"`
	Kind     EventKind       `json:"kind"`
	Time     time.Time       `json:"time"`
	Severity models.Severity `json:"severity,omitempty"`
	Title    string          `json:"title,omitempty"`
	Message  string          `json:"message,omitempty"`
	URL      string          `json:"url,omitempty"`
	Percent  float64         `json:"percent,omitempty"`
	// TimeoutMS is how long a notice stays up, zero for sticky.
	TimeoutMS int64          `json:"timeout_ms"`
	Report    *models.Report `json:"report,omitempty"`
}

// EventLogSink keeps the most recent sink calls for clients polling the API.
type EventLogSink struct {
	mu     sync.Mutex
	events []Event
	size   int
	seq    uint64
}

// NewEventLogSink returns an event log holding at most size events.
func NewEventLogSink(size int) *EventLogSink {
	if size <= 0 {
		size = 500
	}
	return &EventLogSink{size: size}
}

func (e *EventLogSink) push(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.seq++
	ev.Seq = e.seq
	ev.Time = time.Now()
	e.events = append(e.events, ev)
	if over := len(e.events) - e.size; over > 0 {
		e.events = append(e.events[:0], e.events[over:]...)
	}
}

// After returns the retained events with a sequence number greater than seq.
func (e *EventLogSink) After(seq uint64) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Event, 0, len(e.events))
	for _, ev := range e.events {
		if ev.Seq > seq {
			out = append(out, ev)
		}
	}
	return out
}

func (e *EventLogSink) Log(line string) {
	e.push(Event{Kind: EventLog, Message: line})
}

func (e *EventLogSink) Notice(sev models.Severity, msg string, timeout time.Duration) {
	e.push(Event{Kind: EventNotice, Severity: sev, Message: msg, TimeoutMS: timeout.Milliseconds()})
}

func (e *EventLogSink) Desktop(title, body string) {
	e.push(Event{Kind: EventDesktop, Title: title, Message: body})
}

func (e *EventLogSink) Progress(url string, pct float64) {
	e.push(Event{Kind: EventProgress, URL: url, Percent: pct})
}

func (e *EventLogSink) BatchFinished(r models.Report) {
	e.push(Event{Kind: EventReport, Severity: r.Severity, Message: r.Message, TimeoutMS: r.Timeout.Milliseconds(), Report: &r})
}
