package watcher

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/live-summary/internal/logger"
)

// CaptionExtensions are the file types the inbox picks up by default.
var CaptionExtensions = []string{".txt", ".srt"}

// New creates a Watcher on inputDir that calls handler for every new file
// with one of the given extensions, at most maxConcurrent at a time.
func New(inputDir string, extensions []string, handler EventHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	// Default to 2 concurrent if not specified
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	exts := make(map[string]struct{}, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = struct{}{}
	}

	return &implWatcher{
		inputDir:      inputDir,
		extensions:    exts,
		handler:       handler,
		logger:        log,
		watcher:       watcher,
		maxConcurrent: maxConcurrent,
		sem:           newSemaphore(maxConcurrent),
		settleDelay:   defaultSettleDelay,
	}, nil
}
