package domain

import "time"

// CopyOutcome classifies the result of a fetch-and-copy invocation.
type CopyOutcome string

const (
	CopyOutcomeOK        CopyOutcome = "ok"
	CopyOutcomeNetwork   CopyOutcome = "network"
	CopyOutcomeStatus    CopyOutcome = "status"
	CopyOutcomeDecode    CopyOutcome = "decode"
	CopyOutcomeClipboard CopyOutcome = "clipboard"
)

// IsValid checks if the outcome is one of the allowed values.
func (o CopyOutcome) IsValid() bool {
	switch o {
	case CopyOutcomeOK, CopyOutcomeNetwork, CopyOutcomeStatus,
		CopyOutcomeDecode, CopyOutcomeClipboard:
		return true
	default:
		return false
	}
}

// CopyEvent records one fetch-and-copy invocation.
type CopyEvent struct {
	ID        string
	CardID    string
	URL       string
	Source    string // "web", "tui" or "cli"
	Outcome   CopyOutcome
	Bytes     int
	Error     string
	CreatedAt time.Time
}

// CopyStat aggregates copy events for one card and outcome.
type CopyStat struct {
	CardID  string
	Outcome CopyOutcome
	Count   int
	LastAt  time.Time
}
