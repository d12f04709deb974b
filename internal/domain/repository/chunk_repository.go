package repository

import (
	"context"

	"docqa-api/internal/domain/entity"

	"github.com/pgvector/pgvector-go"
)

type ChunkRepository interface {
	// SearchSimilar returns at most topK chunks ordered by descending cosine
	// similarity to the given embedding. An empty store yields an empty
	// slice, not an error.
	SearchSimilar(ctx context.Context, embedding pgvector.Vector, topK int) ([]entity.SimilarChunk, error)
	CountByDocumentID(ctx context.Context, documentID string) (int, error)
}
