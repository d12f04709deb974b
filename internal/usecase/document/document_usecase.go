package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"docqa-api/internal/domain/entity"
	"docqa-api/internal/domain/repository"
	"docqa-api/pkg/apperr"
	"docqa-api/pkg/logger"

	"github.com/pgvector/pgvector-go"
)

// NoRelevantInfoAnswer is returned by Ask when the store holds nothing
// similar to the question; the completion model is not called in that case.
const NoRelevantInfoAnswer = "I don't have any relevant information to answer that question. Try uploading related documents first."

type ChatService interface {
	GenerateAnswer(ctx context.Context, question string, contexts []string) (string, error)
}

type EmbeddingService interface {
	Embed(ctx context.Context, text string) (pgvector.Vector, error)
	EmbedMany(ctx context.Context, texts []string) ([]pgvector.Vector, error)
}

type DocumentUsecase struct {
	docRepo     repository.DocumentRepository
	chunkRepo   repository.ChunkRepository
	embedder    EmbeddingService
	chatService ChatService
	extractor   *TextExtractor
	chunker     *Chunker
	topK        int
}

func NewDocumentUsecase(
	docRepo repository.DocumentRepository,
	chunkRepo repository.ChunkRepository,
	embedder EmbeddingService,
	chatService ChatService,
	chunkSize, chunkOverlap int,
	topK int,
) *DocumentUsecase {
	return &DocumentUsecase{
		docRepo:     docRepo,
		chunkRepo:   chunkRepo,
		embedder:    embedder,
		chatService: chatService,
		extractor:   NewTextExtractor(),
		chunker:     NewChunker(chunkSize, chunkOverlap),
		topK:        topK,
	}
}

// IngestDocument runs the full ingestion pipeline on an uploaded file:
// extract -> chunk -> embed -> store, synchronously. Whatever the outcome,
// the transient upload file is removed best-effort before returning; a
// failed removal is logged, never surfaced. On success the stored document
// and its chunk count are returned; any stage failure short-circuits into a
// single error with nothing persisted.
func (uc *DocumentUsecase) IngestDocument(
	ctx context.Context,
	filePath string,
	originalName string,
) (*entity.Document, int, error) {
	defer func() {
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			logger.Warnf("failed to remove uploaded file %s: %v", filePath, err)
		}
	}()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	// 1 extract text
	text, err := uc.extractor.Extract(data, filepath.Ext(originalName))
	if err != nil {
		return nil, 0, err
	}

	// 2 chunk text
	textChunks := uc.chunker.ChunkText(text)
	if len(textChunks) == 0 {
		return nil, 0, fmt.Errorf("%w: no text extracted from document", apperr.ErrParse)
	}
	logger.Infof("generated %d chunks from %s", len(textChunks), originalName)

	// 3 generate embeddings, one chunk at a time
	embeddings, err := uc.embedder.EmbedMany(ctx, textChunks)
	if err != nil {
		return nil, 0, err
	}

	// 4 build chunk rows; embeddings[i] matches textChunks[i]
	chunks := make([]entity.DocumentChunk, len(textChunks))
	for i, content := range textChunks {
		chunks[i] = entity.DocumentChunk{
			ChunkIndex: i,
			Content:    content,
			Embedding:  embeddings[i],
		}
	}

	// 5 store document and chunks atomically
	doc := &entity.Document{
		Filename:     filepath.Base(filePath),
		OriginalName: originalName,
		UploadDate:   time.Now(),
	}
	if err := uc.docRepo.CreateWithChunks(ctx, doc, chunks); err != nil {
		return nil, 0, err
	}

	logger.Infow("document ingested",
		"documentId", doc.ID,
		"originalName", originalName,
		"chunks", len(chunks),
	)
	return doc, len(chunks), nil
}

// Ask runs the query pipeline: embed the question, retrieve the topK most
// similar chunks, then generate a grounded answer. With zero hits it returns
// the fixed no-information answer without calling the completion model. The
// retrieved contexts come back alongside the answer for caller-side auditing.
func (uc *DocumentUsecase) Ask(
	ctx context.Context,
	question string,
) (string, []entity.SimilarChunk, error) {
	queryEmbedding, err := uc.embedder.Embed(ctx, question)
	if err != nil {
		return "", nil, err
	}

	chunks, err := uc.chunkRepo.SearchSimilar(ctx, queryEmbedding, uc.topK)
	if err != nil {
		return "", nil, err
	}

	if len(chunks) == 0 {
		return NoRelevantInfoAnswer, []entity.SimilarChunk{}, nil
	}

	contexts := make([]string, len(chunks))
	for i, chunk := range chunks {
		contexts[i] = chunk.Content
	}

	answer, err := uc.chatService.GenerateAnswer(ctx, question, contexts)
	if err != nil {
		return "", nil, err
	}

	return answer, chunks, nil
}

// list documents
func (uc *DocumentUsecase) ListDocuments(ctx context.Context) ([]entity.Document, error) {
	return uc.docRepo.List(ctx)
}

// GetDocumentByID returns the document plus its stored chunk count, or nil
// when it does not exist.
func (uc *DocumentUsecase) GetDocumentByID(ctx context.Context, documentID string) (*entity.Document, int, error) {
	doc, err := uc.docRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, 0, err
	}
	if doc == nil {
		return nil, 0, nil
	}

	count, err := uc.chunkRepo.CountByDocumentID(ctx, documentID)
	if err != nil {
		return nil, 0, err
	}
	return doc, count, nil
}

// DeleteDocument removes a document; its chunks follow via cascade.
func (uc *DocumentUsecase) DeleteDocument(ctx context.Context, documentID string) error {
	doc, err := uc.docRepo.FindByID(ctx, documentID)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("%w: document not found", apperr.ErrValidation)
	}

	return uc.docRepo.Delete(ctx, documentID)
}
