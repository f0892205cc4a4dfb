package orchestrator

import (
	"context"

	"github.com/nguyentantai21042004/live-summary/internal/transcript"
)

func (o *implOrchestrator) Ingest(ctx context.Context, speaker, text string) (transcript.Utterance, error) {
	u, err := o.appendAndNotify(ctx, speaker, text)
	if err != nil {
		return transcript.Utterance{}, err
	}
	o.Schedule()
	return u, nil
}

// appendAndNotify delivers transcript notifications in revision order, and
// never after a Clear that happened later.
func (o *implOrchestrator) appendAndNotify(ctx context.Context, speaker, text string) (transcript.Utterance, error) {
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()

	u, err := o.store.Append(speaker, text)
	if err != nil {
		return transcript.Utterance{}, err
	}

	o.logger.Info(ctx, "Added transcript entry #%d: %s: %s", u.ID, u.Speaker, truncate(u.Text, 50))

	o.notifyTranscript(ctx, o.store.Snapshot(), &u)
	return u, nil
}

func (o *implOrchestrator) Recompute(ctx context.Context) {
	o.recomputeMu.Lock()
	defer o.recomputeMu.Unlock()

	snap := o.store.Snapshot()
	if current := o.current(); snap.Revision <= current.Revision {
		o.logger.Debug(ctx, "Summary already at revision %d, skipping", current.Revision)
		return
	}

	s := o.compute(ctx, snap)
	if !o.commit(s) {
		o.logger.Debug(ctx, "Discarded stale summary for revision %d", s.Revision)
		return
	}

	o.logger.Info(ctx, "Summary updated (revision %d, %s, %s)", s.Revision, s.State, s.Strategy)
	o.notifySummary(ctx, s)
}

// compute never panics; an unexpected failure degrades to a placeholder.
func (o *implOrchestrator) compute(ctx context.Context, snap transcript.Snapshot) (s Summary) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error(ctx, "Recomputation for revision %d failed: %v", snap.Revision, r)
			s = Summary{
				Text:      DegradedMessage,
				State:     StateDegraded,
				Revision:  snap.Revision,
				UpdatedAt: o.now(),
			}
		}
	}()

	if len(snap.Utterances) == 0 {
		return Summary{Text: EmptyMessage, State: StateEmpty, Revision: snap.Revision, UpdatedAt: o.now()}
	}

	res := o.engine.Summarize(ctx, snap.Text())
	s = Summary{
		Text:     res.Text,
		State:    StateComputed,
		Revision: snap.Revision,
		Strategy: res.Strategy,
	}
	if res.Insufficient {
		s.State = StateInsufficient
	}
	s.UpdatedAt = o.now()
	return s
}

// commit stores s unless a summary of a newer revision is already committed.
func (o *implOrchestrator) commit(s Summary) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if s.Revision < o.summary.Revision {
		return false
	}
	o.summary = s
	return true
}

func (o *implOrchestrator) current() Summary {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.summary
}

func (o *implOrchestrator) Clear(ctx context.Context) {
	o.recomputeMu.Lock()
	defer o.recomputeMu.Unlock()

	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()

	rev := o.store.Clear()
	s := Summary{Text: EmptyMessage, State: StateEmpty, Revision: rev, UpdatedAt: o.now()}
	o.commit(s)

	o.logger.Info(ctx, "Transcript cleared (revision %d)", rev)

	o.notifyTranscript(ctx, transcript.Snapshot{Revision: rev, Utterances: []transcript.Utterance{}}, nil)
	o.notifySummary(ctx, s)
}

// A misbehaving observer is logged and skipped; it must not take the
// worker down.
func (o *implOrchestrator) notifyTranscript(ctx context.Context, snap transcript.Snapshot, added *transcript.Utterance) {
	defer o.recoverObserver(ctx, "transcript", snap.Revision)
	o.observer.TranscriptChanged(ctx, snap, added)
}

func (o *implOrchestrator) notifySummary(ctx context.Context, s Summary) {
	defer o.recoverObserver(ctx, "summary", s.Revision)
	o.observer.SummaryChanged(ctx, s)
}

func (o *implOrchestrator) recoverObserver(ctx context.Context, kind string, rev uint64) {
	if r := recover(); r != nil {
		o.logger.Error(ctx, "Observer panicked on %s notification for revision %d: %v", kind, rev, r)
	}
}

func (o *implOrchestrator) State() View {
	return View{
		Transcript: o.store.Snapshot(),
		Summary:    o.current(),
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
