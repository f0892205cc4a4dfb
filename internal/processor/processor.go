package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/live-summary/internal/transcript"
)

// Process reads every caption line of path, ingests it and archives the file.
// Invalid lines are skipped.
func (p *implProcessor) Process(ctx context.Context, path string) error {
	startTime := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read caption file: %w", err)
	}

	lines := parseCaptions(string(data), filepath.Ext(path), p.defaultSpeaker)
	p.logger.Info(ctx, "Ingesting %d caption lines from %s", len(lines), path)

	ingested, skipped := 0, 0
	for _, l := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := p.ingester.Ingest(ctx, l.speaker, l.text); err != nil {
			if errors.Is(err, transcript.ErrValidation) {
				p.logger.Warn(ctx, "Skipping caption line %d of %s: %v", l.lineNo, path, err)
				skipped++
				continue
			}
			return fmt.Errorf("ingest line %d: %w", l.lineNo, err)
		}
		ingested++
	}

	if err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to archive %s: %v", path, err)
	}

	p.logger.Info(ctx, "Caption file done: %d ingested, %d skipped in %s", ingested, skipped, time.Since(startTime))
	return nil
}

// moveToArchived moves a processed caption file out of the inbox.
func (p *implProcessor) moveToArchived(ctx context.Context, path string) error {
	if err := os.MkdirAll(p.archivedDir, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	dest := filepath.Join(p.archivedDir, filepath.Base(path))
	p.logger.Debug(ctx, "Archiving caption file: %s -> %s", path, dest)

	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
