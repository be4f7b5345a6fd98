package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/kbsearch/internal/extract"
	"github.com/ziadkadry99/kbsearch/internal/processor"
	"github.com/ziadkadry99/kbsearch/internal/progress"
	"github.com/ziadkadry99/kbsearch/internal/registry"
	"github.com/ziadkadry99/kbsearch/internal/vectordb"
)

// wordCodec treats every whitespace-separated word as one token.
type wordCodec struct {
	ids   map[string]int
	words []string
}

func newWordCodec() *wordCodec {
	return &wordCodec{ids: make(map[string]int)}
}

func (c *wordCodec) Encode(text string) []int {
	var out []int
	for _, w := range strings.Fields(text) {
		id, ok := c.ids[w]
		if !ok {
			id = len(c.words)
			c.ids[w] = id
			c.words = append(c.words, w)
		}
		out = append(out, id)
	}
	return out
}

func (c *wordCodec) Decode(ids []int) string {
	words := make([]string, len(ids))
	for i, id := range ids {
		words[i] = c.words[id]
	}
	return strings.Join(words, " ")
}

// memStore records Add/Delete calls in memory.
type memStore struct {
	chunks  map[string][]processor.Chunk
	addErr  error
	adds    int
	deletes int
}

func newMemStore() *memStore {
	return &memStore{chunks: make(map[string][]processor.Chunk)}
}

func (m *memStore) Add(_ context.Context, chunks []processor.Chunk, source string) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.adds++
	m.chunks[source] = chunks
	return nil
}

func (m *memStore) Search(context.Context, string, int, *vectordb.QueryFilters) ([]vectordb.Result, error) {
	return nil, nil
}

func (m *memStore) GetBySource(context.Context, string) ([]vectordb.Document, error) {
	return nil, nil
}

func (m *memStore) DeleteBySource(_ context.Context, source string) (bool, error) {
	m.deletes++
	_, ok := m.chunks[source]
	delete(m.chunks, source)
	return ok, nil
}

func (m *memStore) Count() int {
	n := 0
	for _, c := range m.chunks {
		n += len(c)
	}
	return n
}

func (m *memStore) Persist(string) error { return nil }
func (m *memStore) Load(string) error    { return nil }

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func docContent() string {
	var sb strings.Builder
	for i := 0; i < 60; i++ {
		sb.WriteString("Searchable knowledge lives in overlapping indexed token windows. ")
	}
	return sb.String()
}

func newService(t *testing.T, store vectordb.Store) (*Service, *registry.Registry) {
	t.Helper()
	p, err := processor.New(newWordCodec(), 50, 10)
	if err != nil {
		t.Fatal(err)
	}
	reg, err := registry.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { reg.Close() })
	return New(p, store, reg), reg
}

func TestFileIngestsAndRecords(t *testing.T) {
	store := newMemStore()
	svc, reg := newService(t, store)
	path := writeDoc(t, t.TempDir(), "kb.txt", docContent())

	res, err := svc.File(context.Background(), path, "")
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if res.Skipped || res.Chunks == 0 {
		t.Fatalf("got %+v", res)
	}
	if store.Count() != res.Chunks {
		t.Errorf("store holds %d chunks, result says %d", store.Count(), res.Chunks)
	}

	rec, err := reg.Get("kb.txt")
	if err != nil {
		t.Fatalf("registry record missing: %v", err)
	}
	if rec.ChunkCount != res.Chunks || rec.FileType != ".txt" {
		t.Errorf("got record %+v", rec)
	}
	if rec.FileHash == "" || rec.FileHash == "unknown" {
		t.Errorf("bad hash %q", rec.FileHash)
	}
}

func TestFileOverridesStagingMetadata(t *testing.T) {
	store := newMemStore()
	svc, reg := newService(t, store)
	path := writeDoc(t, t.TempDir(), "3f2a9c1e-temp.txt", docContent())

	res, err := svc.File(context.Background(), path, "report.txt")
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if res.Filename != "report.txt" || res.Chunks == 0 {
		t.Fatalf("got %+v", res)
	}

	chunks := store.chunks["report.txt"]
	if len(chunks) == 0 {
		t.Fatal("chunks not indexed under the source name")
	}
	for _, c := range chunks {
		if got := c.Metadata["filename"].String(); got != "report.txt" {
			t.Errorf("chunk %d filename = %q, want %q", c.Index, got, "report.txt")
		}
		if got := c.Metadata["file_path"].String(); strings.Contains(got, "3f2a9c1e") {
			t.Errorf("chunk %d file_path %q leaks the staging name", c.Index, got)
		}
	}

	if _, err := reg.Get("report.txt"); err != nil {
		t.Errorf("registry record missing: %v", err)
	}
}

func TestFileSkipsUnchanged(t *testing.T) {
	store := newMemStore()
	svc, _ := newService(t, store)
	path := writeDoc(t, t.TempDir(), "kb.txt", docContent())

	if _, err := svc.File(context.Background(), path, ""); err != nil {
		t.Fatal(err)
	}
	addsAfterFirst := store.adds

	res, err := svc.File(context.Background(), path, "")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Skipped {
		t.Error("unchanged file should be skipped")
	}
	if store.adds != addsAfterFirst {
		t.Error("skipped file must not be re-indexed")
	}
}

func TestFileReingestsChangedContent(t *testing.T) {
	store := newMemStore()
	svc, _ := newService(t, store)
	dir := t.TempDir()
	path := writeDoc(t, dir, "kb.txt", docContent())

	if _, err := svc.File(context.Background(), path, ""); err != nil {
		t.Fatal(err)
	}

	writeDoc(t, dir, "kb.txt", docContent()+" Updated material follows the original text body here.")
	res, err := svc.File(context.Background(), path, "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped {
		t.Error("changed content must be re-ingested")
	}
	if store.deletes == 0 {
		t.Error("re-ingestion must clear previous chunks first")
	}
}

func TestFileRejectsUnsupportedType(t *testing.T) {
	store := newMemStore()
	svc, _ := newService(t, store)
	path := writeDoc(t, t.TempDir(), "image.png", "not really an image")

	_, err := svc.File(context.Background(), path, "")
	if !errors.Is(err, extract.ErrUnsupportedType) {
		t.Errorf("got %v", err)
	}
}

func TestFilesContinuesPastFailures(t *testing.T) {
	store := newMemStore()
	svc, _ := newService(t, store)
	dir := t.TempDir()

	good := writeDoc(t, dir, "good.txt", docContent())
	bad := filepath.Join(dir, "missing.txt")

	results := svc.Files(context.Background(), []string{bad, good}, progress.NopReporter{})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Filename != "good.txt" {
		t.Errorf("got %+v", results[0])
	}
}

func TestDelete(t *testing.T) {
	store := newMemStore()
	svc, reg := newService(t, store)
	path := writeDoc(t, t.TempDir(), "kb.txt", docContent())

	if _, err := svc.File(context.Background(), path, ""); err != nil {
		t.Fatal(err)
	}

	found, err := svc.Delete(context.Background(), "kb.txt")
	if err != nil || !found {
		t.Fatalf("Delete: found=%v err=%v", found, err)
	}
	if _, err := reg.Get("kb.txt"); !errors.Is(err, registry.ErrNotFound) {
		t.Error("registry record should be gone")
	}

	found, err = svc.Delete(context.Background(), "kb.txt")
	if err != nil || found {
		t.Errorf("second Delete: found=%v err=%v", found, err)
	}
}
