package postgres

import (
	"context"
	"fmt"

	"docqa-api/internal/domain/entity"
	"docqa-api/internal/domain/repository"
	"docqa-api/pkg/apperr"

	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"
)

type chunkRepository struct {
	db *sqlx.DB
}

func NewChunkRepository(db *sqlx.DB) repository.ChunkRepository {
	return &chunkRepository{db: db}
}

// SearchSimilar delegates to the match_chunks function, which orders by
// ascending <=> distance (descending cosine similarity) and caps at topK.
func (r *chunkRepository) SearchSimilar(ctx context.Context, embedding pgvector.Vector, topK int) ([]entity.SimilarChunk, error) {
	query := `SELECT content, similarity FROM match_chunks($1, $2)`

	rows, err := r.db.QueryContext(ctx, query, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStore, err)
	}
	defer rows.Close()

	var chunks []entity.SimilarChunk
	for rows.Next() {
		var chunk entity.SimilarChunk
		if err := rows.Scan(&chunk.Content, &chunk.Similarity); err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrStore, err)
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStore, err)
	}

	return chunks, nil
}

func (r *chunkRepository) CountByDocumentID(ctx context.Context, documentID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM chunks WHERE document_id = $1`
	if err := r.db.GetContext(ctx, &count, query, documentID); err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrStore, err)
	}
	return count, nil
}
