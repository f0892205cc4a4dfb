package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/live-summary/internal/logger"
)

type openAI struct {
	client   *openai.Client
	model    string
	maxWords int
	logger   logger.Logger
}

// NewOpenAI creates a chat-completion backend. An empty apiKey yields an
// unavailable backend.
func NewOpenAI(apiKey, model string, maxWords int, log logger.Logger) Backend {
	b := &openAI{
		model:    model,
		maxWords: maxWords,
		logger:   log,
	}
	if apiKey != "" {
		b.client = openai.NewClient(apiKey)
	}
	return b
}

func (o *openAI) Name() string { return "openai" }

func (o *openAI) Available() bool { return o.client != nil && o.model != "" }

func (o *openAI) MaxInputWords() int { return o.maxWords }

func (o *openAI) Summarize(ctx context.Context, text string) (string, error) {
	if !o.Available() {
		return "", wrap(o.Name(), ErrUnavailable)
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(text)},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", wrap(o.Name(), fmt.Errorf("create chat completion: %w", err))
	}

	o.logger.Debug(ctx, "OpenAI usage: prompt=%d completion=%d", resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return "", wrap(o.Name(), ErrEmptyOutput)
	}
	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", wrap(o.Name(), ErrEmptyOutput)
	}
	return summary, nil
}
