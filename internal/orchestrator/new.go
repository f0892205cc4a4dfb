package orchestrator

import (
	"sync"
	"time"

	"github.com/nguyentantai21042004/live-summary/internal/logger"
	"github.com/nguyentantai21042004/live-summary/internal/summarizer"
	"github.com/nguyentantai21042004/live-summary/internal/transcript"
)

type implOrchestrator struct {
	store    *transcript.Store
	engine   summarizer.Engine
	observer Observer
	logger   logger.Logger
	now      func() time.Time

	queue chan struct{}

	// recomputeMu is the single critical section for Recompute and Clear.
	recomputeMu sync.Mutex
	// notifyMu orders appends, clears and their transcript notifications.
	// Lock order is recomputeMu then notifyMu.
	notifyMu sync.Mutex

	mu      sync.RWMutex
	summary Summary
}

// New creates an Orchestrator. queueSize bounds pending recomputations;
// requests beyond it are coalesced. observer may be nil.
func New(store *transcript.Store, engine summarizer.Engine, observer Observer, queueSize int, log logger.Logger) Orchestrator {
	if queueSize <= 0 {
		queueSize = 1
	}
	if observer == nil {
		observer = Observers{}
	}

	o := &implOrchestrator{
		store:    store,
		engine:   engine,
		observer: observer,
		logger:   log,
		now:      time.Now,
		queue:    make(chan struct{}, queueSize),
	}
	o.summary = Summary{
		Text:      EmptyMessage,
		State:     StateEmpty,
		Revision:  store.Snapshot().Revision,
		UpdatedAt: o.now(),
	}
	return o
}
