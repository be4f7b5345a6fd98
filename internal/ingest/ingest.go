package ingest

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/kbsearch/internal/extract"
	"github.com/ziadkadry99/kbsearch/internal/processor"
	"github.com/ziadkadry99/kbsearch/internal/progress"
	"github.com/ziadkadry99/kbsearch/internal/registry"
	"github.com/ziadkadry99/kbsearch/internal/vectordb"
)

// Service drives document ingestion: extract, chunk, index, and record.
type Service struct {
	processor *processor.Processor
	store     vectordb.Store
	registry  *registry.Registry
}

// New creates an ingestion service. The registry may be nil, in which case
// skip-unchanged detection and the document catalog are disabled.
func New(p *processor.Processor, store vectordb.Store, reg *registry.Registry) *Service {
	return &Service{processor: p, store: store, registry: reg}
}

// Result describes one ingested file.
type Result struct {
	Filename string
	Chunks   int
	Skipped  bool
}

// File ingests a single document. The stored source name defaults to the
// file's base name; pass sourceName to override it (e.g. for uploads staged
// under temporary paths). Re-ingesting an unchanged file is a no-op.
func (s *Service) File(ctx context.Context, path, sourceName string) (Result, error) {
	if sourceName == "" {
		sourceName = filepath.Base(path)
	}
	res := Result{Filename: sourceName}

	if !extract.Supported(path) {
		return res, fmt.Errorf("%w: %s", extract.ErrUnsupportedType, filepath.Ext(path))
	}

	hash := processor.FileHash(path)
	if s.registry != nil && hash != "unknown" {
		unchanged, err := s.registry.Unchanged(sourceName, hash)
		if err != nil {
			return res, fmt.Errorf("checking registry for %s: %w", sourceName, err)
		}
		if unchanged {
			res.Skipped = true
			return res, nil
		}
	}

	chunks, meta, err := s.processor.Process(path)
	if err != nil {
		return res, fmt.Errorf("processing %s: %w", sourceName, err)
	}
	if len(chunks) == 0 {
		log.Printf("no indexable chunks in %s", sourceName)
		return res, nil
	}

	// Uploads arrive through throwaway staging paths. Indexed metadata must
	// carry the name the document is known by, not the staging name.
	if filepath.Base(path) != sourceName {
		meta["filename"] = processor.StringValue(sourceName)
		meta["file_path"] = processor.StringValue(sourceName)
		for i := range chunks {
			chunks[i].Metadata["filename"] = processor.StringValue(sourceName)
			chunks[i].Metadata["file_path"] = processor.StringValue(sourceName)
		}
	}

	// Replace any previous version before indexing the new chunks, so a
	// shrinking document does not leave stale trailing chunks behind.
	if _, err := s.store.DeleteBySource(ctx, sourceName); err != nil {
		return res, fmt.Errorf("clearing previous chunks of %s: %w", sourceName, err)
	}
	if err := s.store.Add(ctx, chunks, sourceName); err != nil {
		return res, fmt.Errorf("indexing %s: %w", sourceName, err)
	}
	res.Chunks = len(chunks)

	if s.registry != nil {
		var size int64
		if info, err := os.Stat(path); err == nil {
			size = info.Size()
		}
		rec := registry.Record{
			Filename:   sourceName,
			FileHash:   hash,
			FileType:   filepath.Ext(sourceName),
			FileSize:   size,
			ChunkCount: len(chunks),
			Language:   meta["language"].String(),
		}
		if err := s.registry.Upsert(rec); err != nil {
			return res, fmt.Errorf("recording %s: %w", sourceName, err)
		}
	}

	return res, nil
}

// Files ingests a batch of documents with progress reporting. Individual
// file failures are logged and skipped; the batch continues.
func (s *Service) Files(ctx context.Context, paths []string, reporter progress.Reporter) []Result {
	results := make([]Result, 0, len(paths))

	reporter.Start(len(paths))
	for i, path := range paths {
		reporter.Update(i+1, filepath.Base(path))
		res, err := s.File(ctx, path, "")
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			continue
		}
		results = append(results, res)
	}
	reporter.Finish()

	return results
}

// Delete removes a document from both the index and the registry. Returns
// false when the document was not present in either.
func (s *Service) Delete(ctx context.Context, sourceName string) (bool, error) {
	found, err := s.store.DeleteBySource(ctx, sourceName)
	if err != nil {
		return false, err
	}
	if s.registry != nil {
		recorded, err := s.registry.Delete(sourceName)
		if err != nil {
			return found, err
		}
		found = found || recorded
	}
	return found, nil
}
