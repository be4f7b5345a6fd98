package server

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ziadkadry99/kbsearch/internal/extract"
	"github.com/ziadkadry99/kbsearch/internal/rag"
	"github.com/ziadkadry99/kbsearch/internal/vectordb"
)

type queryRequest struct {
	Query      string        `json:"query"`
	MaxResults int           `json:"max_results"`
	Filters    *queryFilters `json:"filters"`
}

type queryFilters struct {
	FileType string   `json:"file_type"`
	Language string   `json:"language"`
	Source   string   `json:"source"`
	Topics   []string `json:"topics"`
	DateFrom string   `json:"date_from"`
	DateTo   string   `json:"date_to"`
}

func (f *queryFilters) toVectorFilters() *vectordb.QueryFilters {
	if f == nil {
		return nil
	}
	return &vectordb.QueryFilters{
		FileType: f.FileType,
		Language: f.Language,
		Source:   f.Source,
		Topics:   f.Topics,
		DateFrom: f.DateFrom,
		DateTo:   f.DateTo,
	}
}

type sourceInfo struct {
	Source  string  `json:"source"`
	Score   float64 `json:"score"`
	Content string  `json:"content"`
}

type queryResponse struct {
	Answer         string       `json:"answer"`
	Sources        []sourceInfo `json:"sources"`
	Confidence     float64      `json:"confidence"`
	RetrievalScore float64      `json:"retrieval_score"`
	SynthesisScore float64      `json:"synthesis_score"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Knowledge Base Search Engine API",
		"version": apiVersion,
		"status":  "running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "healthy",
		"vector_store_ready": s.store != nil,
		"indexed_chunks":     s.store.Count(),
		"timestamp":          time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files provided")
		return
	}

	// Reject the whole batch up front if any file has an unsupported type.
	for _, fh := range files {
		if !extract.Supported(fh.Filename) {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("Unsupported file type: %s", filepath.Ext(fh.Filename)))
			return
		}
	}

	uploadDir := filepath.Join(s.cfg.DataDir, "uploads")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var processed []string
	totalChunks := 0

	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		// Stage under a random name so concurrent uploads of the same
		// filename cannot collide on disk.
		tmpPath := filepath.Join(uploadDir, uuid.NewString()+filepath.Ext(fh.Filename))
		dst, err := os.Create(tmpPath)
		if err != nil {
			src.Close()
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		_, copyErr := dst.ReadFrom(src)
		src.Close()
		dst.Close()
		if copyErr != nil {
			os.Remove(tmpPath)
			writeError(w, http.StatusInternalServerError, copyErr.Error())
			return
		}

		res, err := s.ingester.File(r.Context(), tmpPath, fh.Filename)
		os.Remove(tmpPath)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("processing %s: %v", fh.Filename, err))
			return
		}

		processed = append(processed, fh.Filename)
		totalChunks += res.Chunks
	}

	s.persistSnapshot()

	writeJSON(w, http.StatusOK, map[string]any{
		"message":         fmt.Sprintf("Processed %d file(s) successfully.", len(processed)),
		"processed_files": processed,
		"total_chunks":    totalChunks,
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "Query cannot be empty")
		return
	}
	if req.MaxResults <= 0 {
		req.MaxResults = s.cfg.MaxResults
	}

	results, err := s.store.Search(r.Context(), req.Query, req.MaxResults, req.Filters.toVectorFilters())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if len(results) == 0 {
		writeJSON(w, http.StatusOK, queryResponse{
			Answer:  "No relevant documents found.",
			Sources: []sourceInfo{},
		})
		return
	}

	answer, confidence := s.engine.GenerateAnswer(r.Context(), req.Query, results)

	var scoreSum float64
	sources := make([]sourceInfo, len(results))
	for i, res := range results {
		scoreSum += res.Score
		sources[i] = sourceInfo{
			Source:  res.Source(),
			Score:   round3(res.Score),
			Content: vectordb.Preview(res.Content, 250),
		}
	}
	retrievalScore := round3(scoreSum / float64(len(results)))

	synthesisScore := s.engine.EvaluateSynthesis(r.Context(), req.Query, answer)

	log.Printf("query processed: retrieval=%.3f synthesis=%.2f confidence=%.2f",
		retrievalScore, synthesisScore, confidence)

	writeJSON(w, http.StatusOK, queryResponse{
		Answer:         answer,
		Sources:        sources,
		Confidence:     confidence,
		RetrievalScore: retrievalScore,
		SynthesisScore: synthesisScore,
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	records, err := s.registry.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	docs := make([]map[string]any, len(records))
	for i, rec := range records {
		docs[i] = map[string]any{
			"filename":    rec.Filename,
			"file_type":   rec.FileType,
			"file_size":   rec.FileSize,
			"chunk_count": rec.ChunkCount,
			"language":    rec.Language,
			"ingested_at": rec.IngestedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (s *Server) handleDocumentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.registry.Stats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"documents":      stats.Documents,
		"total_chunks":   stats.TotalChunks,
		"total_bytes":    stats.TotalBytes,
		"indexed_chunks": s.store.Count(),
	})
}

func (s *Server) handleAdvancedSearch(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "Query cannot be empty")
		return
	}
	if req.MaxResults <= 0 {
		req.MaxResults = s.cfg.MaxResults
	}

	results, err := s.store.Search(r.Context(), req.Query, req.MaxResults, req.Filters.toVectorFilters())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ranked := rag.Rerank(req.Query, results)
	out := make([]map[string]any, len(ranked))
	for i, res := range ranked {
		out[i] = map[string]any{
			"content":         res.Content,
			"metadata":        res.Metadata,
			"score":           round3(res.Score),
			"keyword_overlap": round3(res.KeywordOverlap),
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":         req.Query,
		"results":       out,
		"total_results": len(out),
	})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	found, err := s.ingester.Delete(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Document not found")
		return
	}

	s.persistSnapshot()

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Document '%s' deleted successfully", name),
	})
}

// persistSnapshot saves the index after mutations. Failures are logged, not
// surfaced: the in-memory index is still correct.
func (s *Server) persistSnapshot() {
	if s.cfg.DataDir == "" {
		return
	}
	if err := s.store.Persist(s.cfg.DataDir); err != nil {
		log.Printf("persisting index snapshot: %v", err)
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
