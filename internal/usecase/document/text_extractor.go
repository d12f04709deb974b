package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"docqa-api/pkg/apperr"

	"github.com/ledongthuc/pdf"
)

type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract converts an uploaded payload into plain text based on its file
// extension. Unsupported extensions are rejected before any chunking happens.
func (te *TextExtractor) Extract(data []byte, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return te.extractFromPDF(data)
	case ".docx":
		return te.extractFromDOCX(data)
	case ".txt":
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", apperr.ErrUnsupportedFileType, ext)
	}
}

func (te *TextExtractor) extractFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrParse, err)
	}

	var fullText strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		fullText.WriteString(text)
		fullText.WriteString("\n")
	}

	return fullText.String(), nil
}

// docx is a zip archive; the text lives in word/document.xml as runs of
// <w:t> elements grouped into paragraphs.
type docxDocument struct {
	Body struct {
		Paragraphs []docxParagraph `xml:"p"`
	} `xml:"body"`
}

type docxParagraph struct {
	Runs []struct {
		Text []struct {
			Content string `xml:",chardata"`
		} `xml:"t"`
	} `xml:"r"`
}

func (te *TextExtractor) extractFromDOCX(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrParse, err)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", apperr.ErrParse, err)
		}
		content := new(bytes.Buffer)
		_, err = content.ReadFrom(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("%w: %v", apperr.ErrParse, err)
		}

		var doc docxDocument
		if err := xml.Unmarshal(content.Bytes(), &doc); err != nil {
			return "", fmt.Errorf("%w: %v", apperr.ErrParse, err)
		}

		var result strings.Builder
		for i, para := range doc.Body.Paragraphs {
			if i > 0 {
				result.WriteString("\n")
			}
			for _, run := range para.Runs {
				for _, text := range run.Text {
					result.WriteString(text.Content)
				}
			}
		}
		return result.String(), nil
	}

	return "", fmt.Errorf("%w: missing word/document.xml", apperr.ErrParse)
}
