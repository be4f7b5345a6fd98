// Package processor turns raw document files into indexed-ready chunks:
// text extraction, cleaning, metadata derivation, and token-window chunking.
package processor

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/kbsearch/internal/extract"
)

// Processor drives the per-document ingestion pipeline.
type Processor struct {
	chunker *Chunker
}

// New creates a Processor with the given chunking parameters.
func New(tk Codec, chunkSize, chunkOverlap int) (*Processor, error) {
	chunker, err := NewChunker(tk, chunkSize, chunkOverlap)
	if err != nil {
		return nil, err
	}
	return &Processor{chunker: chunker}, nil
}

// Process extracts, cleans, and chunks the document at path. An unsupported
// extension is rejected before any extraction happens. A document with no
// extractable text yields zero chunks and no error. Metadata extraction
// failures degrade to a minimal record and never abort processing.
func (p *Processor) Process(path string) ([]Chunk, Metadata, error) {
	extractor, err := extract.ForFile(path)
	if err != nil {
		return nil, nil, err
	}

	text, err := extractor.Extract(path)
	if err != nil {
		return nil, nil, fmt.Errorf("extracting text from %s: %w", path, err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, nil, nil
	}

	cleaned := CleanText(text)
	meta := ExtractMetadata(path, cleaned)
	chunks := p.chunker.Split(cleaned, meta)

	return chunks, meta, nil
}
