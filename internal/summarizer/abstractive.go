package summarizer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nguyentantai21042004/live-summary/internal/backend"
)

type abstractive struct {
	backend backend.Backend
	timeout time.Duration
}

// NewAbstractive wraps a model backend. Input longer than the backend's
// MaxInputWords is summarized chunk by chunk and the partial summaries are
// condensed once more.
func NewAbstractive(b backend.Backend, timeout time.Duration) Strategy {
	return &abstractive{backend: b, timeout: timeout}
}

func (a *abstractive) Name() string { return "abstractive:" + a.backend.Name() }

func (a *abstractive) Summarize(ctx context.Context, text string) (string, error) {
	limit := a.backend.MaxInputWords()
	words := strings.Fields(text)
	if limit <= 0 || len(words) <= limit {
		return a.call(ctx, text)
	}

	chunks := chunkWords(words, limit)
	partials := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		s, err := a.call(ctx, chunk)
		if err != nil {
			return "", err
		}
		partials = append(partials, s)
	}

	combined := strings.Fields(strings.Join(partials, " "))
	if len(combined) > limit {
		combined = combined[:limit]
	}
	return a.call(ctx, strings.Join(combined, " "))
}

func (a *abstractive) call(ctx context.Context, text string) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	summary, err := a.backend.Summarize(ctx, text)
	if err == nil && strings.TrimSpace(summary) == "" {
		err = backend.ErrEmptyOutput
	}
	if err != nil {
		if !errors.Is(err, backend.ErrBackend) {
			err = &backend.Error{Backend: a.backend.Name(), Err: err}
		}
		return "", err
	}
	return summary, nil
}

func chunkWords(words []string, size int) []string {
	var chunks []string
	for start := 0; start < len(words); start += size {
		end := min(start+size, len(words))
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
