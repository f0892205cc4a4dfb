package summarizer

import (
	"context"
	"strings"
)

func (e *implEngine) Summarize(ctx context.Context, text string) Result {
	if len(strings.Fields(text)) < e.minWords {
		return Result{Text: InsufficientMessage, Insufficient: true}
	}

	if e.primary != nil {
		summary, err := e.primary.Summarize(ctx, text)
		if err == nil {
			return Result{Text: summary, Strategy: e.primary.Name()}
		}
		e.logger.Warn(ctx, "%s failed, falling back to %s: %v", e.primary.Name(), e.fallback.Name(), err)

		return Result{Text: SummarizeExtractive(text), Strategy: e.fallback.Name(), Fallback: true}
	}

	return Result{Text: SummarizeExtractive(text), Strategy: e.fallback.Name()}
}
