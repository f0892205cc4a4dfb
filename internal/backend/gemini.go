package backend

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/live-summary/internal/logger"
)

type gemini struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	maxWords   int
	logger     logger.Logger
}

// NewGemini creates a Gemini backend that rotates through the supplied API
// keys when one is rate limited.
func NewGemini(apiKeys []string, model string, maxWords int, log logger.Logger) Backend {
	return &gemini{
		apiKeys:  apiKeys,
		model:    model,
		maxWords: maxWords,
		logger:   log,
	}
}

func (g *gemini) Name() string { return "gemini" }

func (g *gemini) Available() bool { return len(g.apiKeys) > 0 && g.model != "" }

func (g *gemini) MaxInputWords() int { return g.maxWords }

func (g *gemini) Summarize(ctx context.Context, text string) (string, error) {
	if !g.Available() {
		return "", wrap(g.Name(), ErrUnavailable)
	}
	summary, err := g.callGemini(ctx, text)
	return summary, wrap(g.Name(), err)
}

// callGemini rotates keys on 429 / quota errors until every key was tried.
func (g *gemini) callGemini(ctx context.Context, text string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key := g.apiKeys[g.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		cfg := &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		}
		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(text)), cfg)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", g.currentKey+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var sb strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					sb.WriteString(part.Text)
				}
			}
			if summary := strings.TrimSpace(sb.String()); summary != "" {
				return summary, nil
			}
		}

		return "", ErrEmptyOutput
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *gemini) rotateKey() {
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}
