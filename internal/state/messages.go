package state

import "time"

// PulseAnimateMsg is sent periodically during progress display to advance the
// sweeping progress bar animation.
type PulseAnimateMsg struct{}

// ProgressMsg represents a progress update message
type ProgressMsg struct {
	Percentage float64
	Message    string
	Done       bool
}

// ErrorMsg represents an error message that may require dismissal
type ErrorMsg struct {
	Message               string
	RequiresManualDismiss bool
}

// CompletionMsg represents a successful operation completion
type CompletionMsg struct {
	Message string
}

// CancelMsg represents a cancellation request
type CancelMsg struct{}

// TimeoutMsg represents a timeout event
type TimeoutMsg struct {
	Time time.Time
}
