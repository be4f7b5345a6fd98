// Package extract converts supported document containers (PDF, DOCX, TXT)
// into raw text for downstream processing.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedType is returned for file extensions with no registered
// extractor. Callers must treat this as rejected input: it is raised before
// any chunking or indexing happens.
var ErrUnsupportedType = errors.New("unsupported file type")

// Extractor extracts raw text from a document file.
type Extractor interface {
	// Extract reads the file at path and returns its text content.
	Extract(path string) (string, error)
}

// SupportedExtensions lists the file extensions kbsearch can ingest.
func SupportedExtensions() []string {
	return []string{".pdf", ".docx", ".txt"}
}

// ForFile returns the extractor for the file's extension.
func ForFile(path string) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".txt":
		return &TXTExtractor{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(path))
	}
}

// Supported reports whether the file's extension has a registered extractor.
func Supported(path string) bool {
	_, err := ForFile(path)
	return err == nil
}
