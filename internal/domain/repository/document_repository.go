package repository

import (
	"context"

	"docqa-api/internal/domain/entity"
)

type DocumentRepository interface {
	// CreateWithChunks stores the document and all of its chunks in a single
	// transaction: either everything is durably recorded or nothing is.
	CreateWithChunks(ctx context.Context, doc *entity.Document, chunks []entity.DocumentChunk) error
	FindByID(ctx context.Context, id string) (*entity.Document, error)
	List(ctx context.Context) ([]entity.Document, error)
	Delete(ctx context.Context, id string) error
}
