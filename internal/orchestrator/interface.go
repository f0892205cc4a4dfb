package orchestrator

import (
	"context"

	"github.com/nguyentantai21042004/live-summary/internal/transcript"
)

// Orchestrator owns the current summary and keeps it in step with the
// transcript.
type Orchestrator interface {
	// Ingest appends an utterance, notifies observers and schedules a
	// recomputation. It never waits for summarization.
	Ingest(ctx context.Context, speaker, text string) (transcript.Utterance, error)
	// Recompute summarizes the current transcript. Calls are mutually
	// exclusive.
	Recompute(ctx context.Context)
	// Schedule queues a recomputation without blocking. It reports false
	// when the request was coalesced into one already pending.
	Schedule() bool
	// Clear empties the transcript and resets the summary. Observers are
	// notified before it returns.
	Clear(ctx context.Context)
	State() View
	// Run drains the recomputation queue until ctx is done.
	Run(ctx context.Context) error
}

// Observer receives change notifications. Implementations must not block.
// Transcript notifications arrive in revision order.
type Observer interface {
	// TranscriptChanged is called after every append (added is the new
	// utterance) and every clear (added is nil).
	TranscriptChanged(ctx context.Context, snap transcript.Snapshot, added *transcript.Utterance)
	SummaryChanged(ctx context.Context, s Summary)
}

// Observers fans notifications out to every member.
type Observers []Observer

func (obs Observers) TranscriptChanged(ctx context.Context, snap transcript.Snapshot, added *transcript.Utterance) {
	for _, o := range obs {
		o.TranscriptChanged(ctx, snap, added)
	}
}

func (obs Observers) SummaryChanged(ctx context.Context, s Summary) {
	for _, o := range obs {
		o.SummaryChanged(ctx, s)
	}
}
