package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docqa-api/internal/delivery/http/dto"
	"docqa-api/internal/domain/entity"
	"docqa-api/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fake service ---

type fakeDocService struct {
	doc          *entity.Document
	chunksCount  int
	ingestErr    error
	ingestedPath string

	answer       string
	chunks       []entity.SimilarChunk
	askErr       error
	lastQuestion string

	docs      []entity.Document
	deleteErr error
}

func (f *fakeDocService) IngestDocument(_ context.Context, filePath, _ string) (*entity.Document, int, error) {
	f.ingestedPath = filePath
	if f.ingestErr != nil {
		return nil, 0, f.ingestErr
	}
	return f.doc, f.chunksCount, nil
}

func (f *fakeDocService) Ask(_ context.Context, question string) (string, []entity.SimilarChunk, error) {
	f.lastQuestion = question
	if f.askErr != nil {
		return "", nil, f.askErr
	}
	return f.answer, f.chunks, nil
}

func (f *fakeDocService) ListDocuments(_ context.Context) ([]entity.Document, error) {
	return f.docs, nil
}

func (f *fakeDocService) GetDocumentByID(_ context.Context, _ string) (*entity.Document, int, error) {
	return f.doc, f.chunksCount, nil
}

func (f *fakeDocService) DeleteDocument(_ context.Context, _ string) error {
	return f.deleteErr
}

func newTestApp(t *testing.T, svc DocumentService) *fiber.App {
	t.Helper()
	h := NewDocumentHandler(svc, t.TempDir(), 5)

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/upload", h.Upload)
	api.Post("/ask", h.Ask)
	api.Get("/documents", h.List)
	api.Get("/documents/:id", h.GetByID)
	api.Delete("/documents/:id", h.Delete)
	return app
}

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

// --- upload ---

func TestUpload_MissingFile(t *testing.T) {
	app := newTestApp(t, &fakeDocService{})

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpload_UnsupportedExtension(t *testing.T) {
	svc := &fakeDocService{}
	app := newTestApp(t, svc)

	body, contentType := multipartUpload(t, "payload.exe", "data")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, svc.ingestedPath, "pipeline must not run for rejected types")
}

func TestUpload_OversizeFile(t *testing.T) {
	svc := &fakeDocService{}
	h := NewDocumentHandler(svc, t.TempDir(), 0) // zero cap: everything is oversize

	app := fiber.New()
	app.Post("/api/upload", h.Upload)

	body, contentType := multipartUpload(t, "notes.txt", "tiny but over the cap")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestUpload_Success(t *testing.T) {
	svc := &fakeDocService{
		doc:         &entity.Document{ID: "doc-1", OriginalName: "notes.txt"},
		chunksCount: 3,
	}
	app := newTestApp(t, svc)

	body, contentType := multipartUpload(t, "notes.txt", "Some document content.")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out dto.UploadResponse
	decodeJSON(t, resp, &out)
	assert.Equal(t, "doc-1", out.Document.ID)
	assert.Equal(t, 3, out.ChunksCount)
	assert.NotEmpty(t, svc.ingestedPath)
}

func TestUpload_PipelineError(t *testing.T) {
	svc := &fakeDocService{ingestErr: apperr.ErrParse}
	app := newTestApp(t, svc)

	body, contentType := multipartUpload(t, "notes.txt", "content")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

// --- ask ---

func TestAsk_MissingQuestion(t *testing.T) {
	app := newTestApp(t, &fakeDocService{})

	for _, body := range []string{`{}`, `{"question":"  "}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "body %s", body)
	}
}

func TestAsk_Success(t *testing.T) {
	svc := &fakeDocService{
		answer: "the answer",
		chunks: []entity.SimilarChunk{
			{Content: "first", Similarity: 0.91},
			{Content: "second", Similarity: 0.82},
		},
	}
	app := newTestApp(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"what?"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.AskResponse
	decodeJSON(t, resp, &out)
	assert.Equal(t, "the answer", out.Answer)
	require.Len(t, out.Chunks, 2)
	assert.Equal(t, "first", out.Chunks[0].Content)
	assert.InDelta(t, 0.91, out.Chunks[0].Similarity, 1e-9)
	assert.Equal(t, "what?", svc.lastQuestion)
}

func TestAsk_EmptyStoreFixedAnswer(t *testing.T) {
	svc := &fakeDocService{
		answer: "I don't have any relevant information to answer that question.",
		chunks: []entity.SimilarChunk{},
	}
	app := newTestApp(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"anything?"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.AskResponse
	decodeJSON(t, resp, &out)
	assert.Contains(t, out.Answer, "don't have any relevant information")
	assert.Empty(t, out.Chunks)
}

func TestAsk_PipelineError(t *testing.T) {
	svc := &fakeDocService{askErr: apperr.ErrEmbedding}
	app := newTestApp(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{"question":"what?"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

// --- documents ---

func TestGetByID_NotFound(t *testing.T) {
	app := newTestApp(t, &fakeDocService{}) // doc stays nil

	req := httptest.NewRequest(http.MethodGet, "/api/documents/missing", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDelete_NotFound(t *testing.T) {
	svc := &fakeDocService{deleteErr: apperr.ErrValidation}
	app := newTestApp(t, svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/documents/missing", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
