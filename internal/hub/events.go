package hub

import (
	"encoding/json"

	"github.com/nguyentantai21042004/live-summary/internal/orchestrator"
	"github.com/nguyentantai21042004/live-summary/internal/transcript"
)

const (
	EventTranscriptUpdate = "transcript_update"
	EventSummaryUpdate    = "summary_update"
	EventRequestUpdate    = "request_update"
)

type transcriptEvent struct {
	Event      string                 `json:"event"`
	Transcript []transcript.Utterance `json:"transcript"`
	NewEntry   *transcript.Utterance  `json:"new_entry,omitempty"`
	Revision   uint64                 `json:"revision"`
}

type summaryEvent struct {
	Event    string             `json:"event"`
	Summary  string             `json:"summary"`
	State    orchestrator.State `json:"state"`
	Strategy string             `json:"strategy,omitempty"`
	Revision uint64             `json:"revision"`
}

// clientMessage is what clients may send; only request_update is understood.
type clientMessage struct {
	Event string `json:"event"`
}

func encodeTranscript(snap transcript.Snapshot, added *transcript.Utterance) ([]byte, error) {
	utterances := snap.Utterances
	if utterances == nil {
		utterances = []transcript.Utterance{}
	}
	return json.Marshal(transcriptEvent{
		Event:      EventTranscriptUpdate,
		Transcript: utterances,
		NewEntry:   added,
		Revision:   snap.Revision,
	})
}

func encodeSummary(s orchestrator.Summary) ([]byte, error) {
	return json.Marshal(summaryEvent{
		Event:    EventSummaryUpdate,
		Summary:  s.Text,
		State:    s.State,
		Strategy: s.Strategy,
		Revision: s.Revision,
	})
}
