package models

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"audio", ModeAudio, true},
		{"video", ModeVideo, true},
		{"Audio", Mode("Audio"), false},
		{"", Mode(""), false},
		{"playlist", Mode("playlist"), false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCountersComplete(t *testing.T) {
	c := BatchCounters{Total: 3, Succeeded: 1, Failed: 1}
	if c.Complete() {
		t.Fatalf("2 of 3 finished should not be complete")
	}
	c.Cancelled = 1
	if !c.Complete() || c.Finished() != 3 {
		t.Fatalf("expected complete batch, got %+v", c)
	}
}

func TestClassificationClearsQueue(t *testing.T) {
	for c, want := range map[Classification]bool{
		FullSuccess:    true,
		PartialFailure: true,
		TotalFailure:   false,
		Cancelled:      false,
	} {
		if got := c.ClearsQueue(); got != want {
			t.Errorf("%s.ClearsQueue() = %v, want %v", c, got, want)
		}
	}
}

func TestOutcomeIsFinished(t *testing.T) {
	if OutcomePending.IsFinished() {
		t.Fatalf("pending is not finished")
	}
	for _, o := range []Outcome{OutcomeSucceeded, OutcomeFailed, OutcomeCancelled} {
		if !o.IsFinished() {
			t.Fatalf("%s should be finished", o)
		}
	}
}

func TestTaskErrorText(t *testing.T) {
	task := &DownloadTask{}
	if task.ErrorText() != "" {
		t.Fatalf("expected empty error text")
	}
	task.Err = errors.New("exit status 1")
	if task.ErrorText() != "exit status 1" {
		t.Fatalf("unexpected error text %q", task.ErrorText())
	}
}

func TestTaskErrorTextOnMapValue(t *testing.T) {
	byURL := map[string]DownloadTask{
		"https://a.example.com/v": {URL: "https://a.example.com/v", Err: errors.New("unsupported URL")},
	}
	if got := byURL["https://a.example.com/v"].ErrorText(); got != "unsupported URL" {
		t.Fatalf("unexpected error text %q", got)
	}
	if got := byURL["https://missing.example.com"].ErrorText(); got != "" {
		t.Fatalf("expected empty error text for missing entry, got %q", got)
	}
}
