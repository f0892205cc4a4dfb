package processor

import (
	"context"

	"github.com/nguyentantai21042004/live-summary/internal/transcript"
)

// Processor ingests one caption file.
type Processor interface {
	Process(ctx context.Context, path string) error
}

// Ingester accepts utterances; the orchestrator satisfies it.
type Ingester interface {
	Ingest(ctx context.Context, speaker, text string) (transcript.Utterance, error)
}
