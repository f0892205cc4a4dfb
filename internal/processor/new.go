package processor

import (
	"github.com/nguyentantai21042004/live-summary/internal/logger"
)

type implProcessor struct {
	ingester       Ingester
	archivedDir    string
	defaultSpeaker string
	logger         logger.Logger
}

// New creates a Processor that ingests caption files and moves them to
// archivedDir afterwards.
func New(ingester Ingester, archivedDir, defaultSpeaker string, log logger.Logger) Processor {
	return &implProcessor{
		ingester:       ingester,
		archivedDir:    archivedDir,
		defaultSpeaker: defaultSpeaker,
		logger:         log,
	}
}
