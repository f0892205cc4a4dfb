package summarizer

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/live-summary/internal/backend"
	"github.com/nguyentantai21042004/live-summary/internal/logger"
)

type implEngine struct {
	primary  Strategy
	fallback Strategy
	minWords int
	logger   logger.Logger
}

// New creates an Engine. primary may be nil, in which case every summary is
// extractive.
func New(primary Strategy, minWords int, log logger.Logger) Engine {
	return &implEngine{
		primary:  primary,
		fallback: NewExtractive(),
		minWords: minWords,
		logger:   log,
	}
}

// Select probes the backends in order and returns an abstractive strategy
// over the first available one, or nil when none is.
func Select(ctx context.Context, backends []backend.Backend, timeout time.Duration, log logger.Logger) Strategy {
	for _, b := range backends {
		if b.Available() {
			log.Info(ctx, "Abstractive summarizer: %s", b.Name())
			return NewAbstractive(b, timeout)
		}
		log.Info(ctx, "Backend %s not available, skipping", b.Name())
	}
	log.Warn(ctx, "No model backend available, using extractive summaries only")
	return nil
}
