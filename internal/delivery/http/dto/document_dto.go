package dto

import "time"

type UploadResponse struct {
	Message     string          `json:"message"`
	Document    DocumentSummary `json:"document"`
	ChunksCount int             `json:"chunks_count"`
}

type DocumentSummary struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"originalName"`
	UploadDate   time.Time `json:"uploadDate"`
}

type DocumentInfo struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	UploadDate   time.Time `json:"uploadDate"`
	CreatedAt    time.Time `json:"createdAt"`
}

type DocumentDetail struct {
	DocumentInfo
	ChunksCount int `json:"chunksCount"`
}

type ListDocumentsResponse struct {
	Data []DocumentInfo `json:"data"`
}

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Answer string        `json:"answer"`
	Chunks []ChunkResult `json:"chunks"`
}

type ChunkResult struct {
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// generic response
type MessageResponse struct {
	Message string `json:"message" example:"Operation successful"`
}

// error response
type ErrorResponse struct {
	Error string `json:"error" example:"Something went wrong"`
}
