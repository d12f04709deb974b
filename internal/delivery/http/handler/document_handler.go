package handler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"docqa-api/internal/delivery/http/dto"
	"docqa-api/internal/domain/entity"
	"docqa-api/pkg/apperr"
	"docqa-api/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// DocumentService is the slice of the document usecase the HTTP layer needs;
// tests substitute fakes behind it.
type DocumentService interface {
	IngestDocument(ctx context.Context, filePath, originalName string) (*entity.Document, int, error)
	Ask(ctx context.Context, question string) (string, []entity.SimilarChunk, error)
	ListDocuments(ctx context.Context) ([]entity.Document, error)
	GetDocumentByID(ctx context.Context, id string) (*entity.Document, int, error)
	DeleteDocument(ctx context.Context, id string) error
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

type DocumentHandler struct {
	docService    DocumentService
	uploadDir     string
	maxUploadSize int64
}

func NewDocumentHandler(docService DocumentService, uploadDir string, maxUploadSizeMB int) *DocumentHandler {
	return &DocumentHandler{
		docService:    docService,
		uploadDir:     uploadDir,
		maxUploadSize: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Upload godoc
// @Summary      Upload a document
// @Description  Upload a .pdf, .docx or .txt file for ingestion
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "File to upload"
// @Success      201  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/upload [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "no file uploaded"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: fmt.Sprintf("unsupported file type: %s (allowed: .pdf, .docx, .txt)", ext),
		})
	}

	if file.Size > h.maxUploadSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
			Error: fmt.Sprintf("file too large (max %d bytes)", h.maxUploadSize),
		})
	}

	// transient upload file; the pipeline removes it when done
	storedName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	uploadPath := filepath.Join(h.uploadDir, storedName)
	if err := c.SaveFile(file, uploadPath); err != nil {
		logger.Errorf("failed to save upload: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "failed to save uploaded file"})
	}

	doc, chunksCount, err := h.docService.IngestDocument(c.Context(), uploadPath, file.Filename)
	if err != nil {
		logger.Errorf("ingestion failed for %s: %v", file.Filename, err)
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UploadResponse{
		Message: "Document uploaded and processed successfully",
		Document: dto.DocumentSummary{
			ID:           doc.ID,
			OriginalName: doc.OriginalName,
			UploadDate:   doc.UploadDate,
		},
		ChunksCount: chunksCount,
	})
}

// Ask godoc
// @Summary      Ask a question
// @Description  Answer a question from the ingested documents
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        request  body  dto.AskRequest  true  "Question"
// @Success      200  {object}  dto.AskResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/ask [post]
func (h *DocumentHandler) Ask(c *fiber.Ctx) error {
	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if strings.TrimSpace(req.Question) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "question is required"})
	}

	answer, chunks, err := h.docService.Ask(c.Context(), req.Question)
	if err != nil {
		logger.Errorf("ask failed: %v", err)
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	results := make([]dto.ChunkResult, len(chunks))
	for i, chunk := range chunks {
		results[i] = dto.ChunkResult{
			Content:    chunk.Content,
			Similarity: chunk.Similarity,
		}
	}

	return c.Status(fiber.StatusOK).JSON(dto.AskResponse{
		Answer: answer,
		Chunks: results,
	})
}

// List godoc
// @Summary      List documents
// @Tags         Documents
// @Produce      json
// @Success      200  {object}  dto.ListDocumentsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	docs, err := h.docService.ListDocuments(c.Context())
	if err != nil {
		logger.Errorf("list documents failed: %v", err)
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	infos := make([]dto.DocumentInfo, len(docs))
	for i, doc := range docs {
		infos[i] = documentInfo(doc)
	}

	return c.Status(fiber.StatusOK).JSON(dto.ListDocumentsResponse{Data: infos})
}

// GetByID godoc
// @Summary      Get document by ID
// @Tags         Documents
// @Produce      json
// @Param        id  path  string  true  "Document ID"
// @Success      200  {object}  dto.DocumentDetail
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	doc, chunksCount, err := h.docService.GetDocumentByID(c.Context(), c.Params("id"))
	if err != nil {
		logger.Errorf("get document failed: %v", err)
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	if doc == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "document not found"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.DocumentDetail{
		DocumentInfo: documentInfo(*doc),
		ChunksCount:  chunksCount,
	})
}

// Delete godoc
// @Summary      Delete a document
// @Tags         Documents
// @Produce      json
// @Param        id  path  string  true  "Document ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.docService.DeleteDocument(c.Context(), c.Params("id")); err != nil {
		logger.Errorf("delete document failed: %v", err)
		if errors.Is(err, apperr.ErrValidation) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "document not found"})
		}
		return c.Status(statusForError(err)).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Message: "Document deleted successfully"})
}

func documentInfo(doc entity.Document) dto.DocumentInfo {
	return dto.DocumentInfo{
		ID:           doc.ID,
		Filename:     doc.Filename,
		OriginalName: doc.OriginalName,
		UploadDate:   doc.UploadDate,
		CreatedAt:    doc.CreatedAt,
	}
}

// statusForError maps pipeline errors to HTTP status codes. Only the message
// text reaches the client.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperr.ErrUnsupportedFileType), errors.Is(err, apperr.ErrValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
