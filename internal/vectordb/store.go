package vectordb

import (
	"context"

	"github.com/ziadkadry99/kbsearch/internal/processor"
)

// Store defines the interface for indexing and retrieving document chunks
// by semantic similarity.
type Store interface {
	// Add indexes the chunks of a single source document.
	Add(ctx context.Context, chunks []processor.Chunk, source string) error

	// Search performs a semantic search, returning results ordered by
	// descending similarity. Filters narrow the candidate set.
	Search(ctx context.Context, query string, limit int, filters *QueryFilters) ([]Result, error)

	// GetBySource retrieves all indexed chunks of the given source document.
	GetBySource(ctx context.Context, source string) ([]Document, error)

	// DeleteBySource removes every chunk of the given source document and
	// reports whether any chunk existed.
	DeleteBySource(ctx context.Context, source string) (bool, error)

	// Count returns the total number of indexed chunks.
	Count() int

	// Persist saves the index snapshot to the given directory.
	Persist(dir string) error

	// Load restores the index snapshot from the given directory.
	Load(dir string) error
}
