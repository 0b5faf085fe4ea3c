// Package ocr turns uploaded documents into text for the pattern and LLM
// extractors.
package ocr

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"docfill/internal/domain"
)

// Document is an uploaded file. Only the first page of a PDF is processed.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadFile loads a document from disk.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return Document{Name: filepath.Base(path), Data: data}, nil
}

// FileType resolves the document's type from its extension, then its
// declared content type, then its leading bytes.
func (d Document) FileType() (domain.FileType, error) {
	if len(d.Data) == 0 {
		return "", domain.ErrEmptyDocument
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(d.Name)), ".")
	if ft, ok := domain.AllowedExtensions[ext]; ok {
		return ft, nil
	}
	if ft, ok := domain.AllowedContentTypes[d.ContentType]; ok {
		return ft, nil
	}
	sniffed := http.DetectContentType(d.Data)
	if ft, ok := domain.AllowedContentTypes[sniffed]; ok {
		return ft, nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, sniffed)
}

// MimeType returns the MIME type matching FileType, for vision models.
func (d Document) MimeType() string {
	ft, err := d.FileType()
	if err != nil {
		return "application/octet-stream"
	}
	return domain.AllowedFileTypes[ft]
}
