package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docqa-api/pkg/apperr"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are an assistant that answers questions using only the provided context.

Instructions:
1. Answer ONLY from the numbered context passages below
2. If the context does not contain the answer, say explicitly that the provided documents do not cover it
3. Keep answers clear and concise`

type ChatClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewChatClient creates a new OpenAI chat client. An empty baseURL uses the
// OpenAI default; tests point it at a stub server.
func NewChatClient(apiKey, baseURL, model string, timeout time.Duration) *ChatClient {
	return &ChatClient{
		client:  newClient(apiKey, baseURL),
		model:   model,
		timeout: timeout,
	}
}

func newClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// GenerateAnswer builds a grounding prompt from the ranked contexts and asks
// the completion model. Low temperature, bounded output length, no retry.
func (c *ChatClient) GenerateAnswer(ctx context.Context, question string, contexts []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var b strings.Builder
	b.WriteString("Context:\n")
	for i, text := range contexts {
		fmt.Fprintf(&b, "[%d] %s\n\n", i+1, text)
	}
	fmt.Fprintf(&b, "Question: %s\n\nAnswer:", question)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: b.String(),
			},
		},
		Temperature: 0.1,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrGeneration, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", apperr.ErrGeneration)
	}

	return resp.Choices[0].Message.Content, nil
}
