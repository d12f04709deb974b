package entity

import "time"

// Document is the owner of its chunks: created once per successful ingestion,
// immutable afterwards, removed together with them.
type Document struct {
	ID           string    `db:"id" json:"id"`
	Filename     string    `db:"filename" json:"filename"`
	OriginalName string    `db:"original_name" json:"originalName"`
	UploadDate   time.Time `db:"upload_date" json:"uploadDate"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
