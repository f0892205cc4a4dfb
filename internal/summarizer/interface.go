package summarizer

import "context"

const (
	// InsufficientMessage is returned when the text is too short to be worth
	// summarizing.
	InsufficientMessage = "Not enough content to summarize yet."
	// NoContentMessage is the extractive output for empty input.
	NoContentMessage = "No content to summarize."
)

// Strategy turns text into a summary.
type Strategy interface {
	Name() string
	Summarize(ctx context.Context, text string) (string, error)
}

// Engine produces one summary for the full transcript text. It never fails:
// when the preferred strategy errors it falls back to extractive output.
type Engine interface {
	Summarize(ctx context.Context, text string) Result
}

type Result struct {
	Text         string
	Strategy     string
	Insufficient bool
	// Fallback is set when the primary strategy failed and extractive output
	// was used instead.
	Fallback bool
}
