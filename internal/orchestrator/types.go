package orchestrator

import (
	"time"

	"github.com/nguyentantai21042004/live-summary/internal/transcript"
)

type State string

const (
	StateEmpty        State = "empty"
	StateInsufficient State = "insufficient"
	StateComputed     State = "computed"
	// StateDegraded marks a recomputation that failed unexpectedly.
	StateDegraded State = "degraded"
)

const (
	EmptyMessage    = "No content to summarize yet."
	DegradedMessage = "Summary temporarily unavailable."
)

// Summary is replaced as a whole; Revision is the transcript revision it was
// computed from.
type Summary struct {
	Text      string    `json:"summary"`
	State     State     `json:"state"`
	Revision  uint64    `json:"revision"`
	Strategy  string    `json:"strategy,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// View is the read-state answer: transcript plus current summary.
type View struct {
	Transcript transcript.Snapshot
	Summary    Summary
}
