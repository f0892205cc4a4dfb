package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/live-summary/internal/logger"
)

const defaultSettleDelay = 500 * time.Millisecond

type implWatcher struct {
	inputDir      string
	extensions    map[string]struct{}
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	sem           *semaphore
	settleDelay   time.Duration
	wg            sync.WaitGroup
}

// Start monitors the inbox until ctx is done, then waits for running
// handlers.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Caption inbox watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for caption files in progress...")
			w.wg.Wait()
			w.logger.Info(ctx, "Caption inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Files moved into the inbox arrive as CREATE too.
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !w.isCaptionFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-caption file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New caption file detected: %s", event.Name)

			// Small delay to ensure file is fully written
			time.Sleep(w.settleDelay)

			if err := w.sem.acquire(ctx); err != nil {
				return err
			}
			w.wg.Add(1)
			go func(filePath string) {
				defer w.wg.Done()
				defer w.sem.release()

				if err := w.handler(ctx, filePath); err != nil {
					w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
				}
			}(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) isCaptionFile(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	_, ok := w.extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}
