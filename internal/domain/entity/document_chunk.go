package entity

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// DocumentChunk holds one bounded substring of a document's extracted text
// together with its embedding. (document_id, chunk_index) is unique; indexes
// are zero-based and contiguous within a document.
type DocumentChunk struct {
	ID         string          `db:"id" json:"id"`
	DocumentID string          `db:"document_id" json:"documentId"`
	ChunkIndex int             `db:"chunk_index" json:"chunkIndex"`
	Content    string          `db:"content" json:"content"`
	Embedding  pgvector.Vector `db:"embedding" json:"-"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updatedAt"`
}

// SimilarChunk is a retrieval result: chunk content plus its cosine
// similarity to the query embedding. Never persisted.
type SimilarChunk struct {
	Content    string  `db:"content" json:"content"`
	Similarity float64 `db:"similarity" json:"similarity"`
}
