// Package apperr defines the error taxonomy of the document Q&A pipeline.
// Each stage wraps its failures around one of these sentinels so the HTTP
// boundary can map them to a status code with errors.Is without inspecting
// anything beyond the message text.
package apperr

import "errors"

var (
	// ErrUnsupportedFileType rejects uploads with an extension the extractor
	// does not handle.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrParse covers extraction failures on otherwise accepted files.
	ErrParse = errors.New("failed to parse file")

	// ErrEmbedding covers embedding service failures.
	ErrEmbedding = errors.New("failed to generate embedding")

	// ErrStore covers datastore failures.
	ErrStore = errors.New("failed to store data")

	// ErrGeneration covers completion service failures.
	ErrGeneration = errors.New("failed to generate answer")

	// ErrValidation covers missing or malformed request fields.
	ErrValidation = errors.New("invalid request")
)
