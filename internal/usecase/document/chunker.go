package document

import (
	"strings"
)

type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

// NewChunker creates a new chunker. Overlap must stay below chunk size or the
// window would never advance; invalid values fall back to the 1000/200
// defaults.
func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 5
	}
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// ChunkText walks the text left to right in windows of chunkSize characters.
// A window that does not end exactly at the text's end is cut just after the
// last sentence terminator (. ? !) found within its final chunkOverlap
// characters, so chunks prefer sentence boundaries over mid-word cuts; with
// no terminator there, the raw fixed-size cut stands. Consecutive windows
// overlap by chunkOverlap characters.
//
// Sizes and offsets are byte-oriented: a multibyte rune straddling a window
// edge is split unless a terminator cut lands before it. Terminators are
// ASCII, so the boundary scan itself is rune-safe.
func (c *Chunker) ChunkText(text string) []string {
	if len(strings.TrimSpace(text)) == 0 {
		return []string{}
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + c.chunkSize
		if end > len(text) {
			end = len(text)
		}

		// try to break at a sentence boundary inside the overlap tail
		if end < len(text) {
			for i := end - 1; i >= end-c.chunkOverlap && i > start; i-- {
				if text[i] == '.' || text[i] == '?' || text[i] == '!' {
					end = i + 1
					break
				}
			}
		}

		chunk := strings.TrimSpace(text[start:end])
		if len(chunk) > 0 {
			chunks = append(chunks, chunk)
		}

		if end == len(text) {
			break
		}

		// move start position with overlap, always making progress
		newStart := end - c.chunkOverlap
		if newStart <= start {
			newStart = start + 1
		}
		start = newStart
	}

	return chunks
}
