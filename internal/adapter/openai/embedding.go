package openai

import (
	"context"
	"fmt"
	"time"

	"docqa-api/pkg/apperr"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

type EmbeddingClient struct {
	client     *openai.Client
	model      string
	dimensions int
	timeout    time.Duration
}

// NewEmbeddingClient creates a new OpenAI embedding client. An empty baseURL
// uses the OpenAI default; tests point it at a stub server.
func NewEmbeddingClient(apiKey, baseURL, model string, dimensions int, timeout time.Duration) *EmbeddingClient {
	return &EmbeddingClient{
		client:     newClient(apiKey, baseURL),
		model:      model,
		dimensions: dimensions,
		timeout:    timeout,
	}
}

// Embed generates the embedding vector for a single text.
func (c *EmbeddingClient) Embed(ctx context.Context, text string) (pgvector.Vector, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("%w: %v", apperr.ErrEmbedding, err)
	}

	if len(resp.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("%w: empty response", apperr.ErrEmbedding)
	}

	embedding := resp.Data[0].Embedding
	if len(embedding) != c.dimensions {
		return pgvector.Vector{}, fmt.Errorf("%w: expected %d dimensions, got %d",
			apperr.ErrEmbedding, c.dimensions, len(embedding))
	}

	return pgvector.NewVector(embedding), nil
}

// EmbedMany embeds each text one call at a time, in order, so that
// result[i] corresponds to texts[i]. The first failure aborts the batch.
func (c *EmbeddingClient) EmbedMany(ctx context.Context, texts []string) ([]pgvector.Vector, error) {
	vectors := make([]pgvector.Vector, len(texts))
	for i, text := range texts {
		v, err := c.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}
