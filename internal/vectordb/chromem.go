package vectordb

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/ziadkadry99/kbsearch/internal/embeddings"
	"github.com/ziadkadry99/kbsearch/internal/processor"
)

const (
	collectionName = "knowledge_base"
	snapshotFile   = "chromem.gob.gz"
)

// ChromemStore implements Store using chromem-go.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemStore creates a new in-memory ChromemStore backed by the given
// embedder.
func NewChromemStore(embedder embeddings.Embedder) (*ChromemStore, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &ChromemStore{
		db:         db,
		collection: col,
		embedFunc:  ef,
	}, nil
}

// Add indexes the chunks under IDs of the form "<source>_<chunkIndex>".
// Re-ingesting the same source overwrites the same IDs, which is what keeps
// ingestion idempotent. Chunk metadata is flattened at this boundary.
func (s *ChromemStore) Add(ctx context.Context, chunks []processor.Chunk, source string) error {
	if len(chunks) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(chunks))
	for i, chunk := range chunks {
		id := fmt.Sprintf("%s_%d", source, chunk.Index)

		md := chunk.Metadata.Flatten()
		md["source"] = source
		md["chunk_id"] = id

		docs[i] = chromem.Document{
			ID:       id,
			Content:  chunk.Content,
			Metadata: md,
		}
	}

	return s.collection.AddDocuments(ctx, docs, 1)
}

func (s *ChromemStore) Search(ctx context.Context, query string, limit int, filters *QueryFilters) ([]Result, error) {
	if limit <= 0 {
		limit = 5
	}

	// chromem-go requires nResults <= collection size.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	where := buildWhereClause(filters)

	results, err := s.collection.Query(ctx, query, limit, where, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]Result, 0, len(results))
	for _, r := range results {
		res := Result{
			Content:  r.Content,
			Metadata: r.Metadata,
			// chromem reports cosine similarity, which is 1 - cosine
			// distance: already the [0,1] score the pipeline expects.
			Score: float64(r.Similarity),
		}
		if matchesPostFilters(res, filters) {
			out = append(out, res)
		}
	}

	return out, nil
}

// GetBySource retrieves every chunk of the source. chromem has no metadata
// scan, so this issues a query constrained to the source with the full
// collection size as the limit.
func (s *ChromemStore) GetBySource(ctx context.Context, source string) ([]Document, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}

	where := map[string]string{"source": source}
	results, err := s.collection.Query(ctx, source, count, where, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query by source: %w", err)
	}

	docs := make([]Document, len(results))
	for i, r := range results {
		docs[i] = Document{
			ID:       r.ID,
			Content:  r.Content,
			Metadata: r.Metadata,
		}
	}
	return docs, nil
}

func (s *ChromemStore) DeleteBySource(ctx context.Context, source string) (bool, error) {
	before := s.collection.Count()

	where := map[string]string{"source": source}
	if err := s.collection.Delete(ctx, where, nil); err != nil {
		return false, fmt.Errorf("chromem delete: %w", err)
	}

	return s.collection.Count() < before, nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

func (s *ChromemStore) Persist(dir string) error {
	return s.db.ExportToFile(filepath.Join(dir, snapshotFile), true, "")
}

func (s *ChromemStore) Load(dir string) error {
	if err := s.db.ImportFromFile(filepath.Join(dir, snapshotFile), ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	s.collection = col
	return nil
}

// buildWhereClause converts the exact-match filters to a chromem where
// clause. Topics membership and the created_at range cannot be expressed as
// chromem exact matches and are applied as post-filters instead.
func buildWhereClause(filters *QueryFilters) map[string]string {
	if filters.Empty() {
		return nil
	}

	where := make(map[string]string)
	if filters.FileType != "" {
		where["file_type"] = filters.FileType
	}
	if filters.Language != "" {
		where["language"] = filters.Language
	}
	if filters.Source != "" {
		where["source"] = filters.Source
	}

	if len(where) == 0 {
		return nil
	}
	return where
}

// matchesPostFilters applies the predicates chromem cannot evaluate:
// topic membership over the comma-joined topics value and the inclusive
// created_at range. RFC 3339 timestamps compare correctly as strings, so a
// plain date like "2024-01-15" works as a bound.
func matchesPostFilters(r Result, filters *QueryFilters) bool {
	if filters.Empty() {
		return true
	}

	if len(filters.Topics) > 0 {
		chunkTopics := splitFlatList(r.Metadata["topics"])
		found := false
		for _, want := range filters.Topics {
			for _, have := range chunkTopics {
				if strings.EqualFold(have, want) {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}

	if filters.DateFrom != "" || filters.DateTo != "" {
		created := r.Metadata["created_at"]
		if created == "" {
			return false
		}
		if filters.DateFrom != "" && created < filters.DateFrom {
			return false
		}
		// Append a max sentinel so a date-only upper bound still matches
		// timestamps from that day.
		if filters.DateTo != "" && created > filters.DateTo+"\uffff" {
			return false
		}
	}

	return true
}

// splitFlatList reverses the comma-join normalization applied at indexing.
func splitFlatList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
