package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"docqa-api/internal/domain/entity"
	"docqa-api/internal/domain/repository"
	"docqa-api/pkg/apperr"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

// CreateWithChunks inserts the document row and every chunk row in one
// transaction so a failed chunk insert never leaves an orphaned document.
func (r *documentRepository) CreateWithChunks(ctx context.Context, doc *entity.Document, chunks []entity.DocumentChunk) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStore, err)
	}
	defer tx.Rollback()

	now := time.Now()
	doc.ID = uuid.New().String()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docQuery := `
		INSERT INTO documents (id, filename, original_name, upload_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.ExecContext(ctx, docQuery,
		doc.ID, doc.Filename, doc.OriginalName, doc.UploadDate, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStore, err)
	}

	chunkQuery := `
		INSERT INTO chunks (id, document_id, chunk_index, content, embedding, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i := range chunks {
		chunks[i].ID = uuid.New().String()
		chunks[i].DocumentID = doc.ID
		chunks[i].CreatedAt = now
		chunks[i].UpdatedAt = now

		_, err := tx.ExecContext(ctx, chunkQuery,
			chunks[i].ID,
			chunks[i].DocumentID,
			chunks[i].ChunkIndex,
			chunks[i].Content,
			chunks[i].Embedding,
			chunks[i].CreatedAt,
			chunks[i].UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrStore, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStore, err)
	}
	return nil
}

// FindByID returns nil without error when the document does not exist.
func (r *documentRepository) FindByID(ctx context.Context, id string) (*entity.Document, error) {
	var doc entity.Document
	query := `SELECT * FROM documents WHERE id = $1`
	err := r.db.GetContext(ctx, &doc, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStore, err)
	}
	return &doc, nil
}

func (r *documentRepository) List(ctx context.Context) ([]entity.Document, error) {
	var docs []entity.Document
	query := `SELECT * FROM documents ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &docs, query); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStore, err)
	}
	return docs, nil
}

// Delete removes the document; its chunks go with it via cascade.
func (r *documentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM documents WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrStore, err)
	}
	return nil
}
