package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/kbsearch/internal/vectordb"
)

// handleSearch performs semantic search over the knowledge base.
func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 5)
	if limit <= 0 {
		limit = 5
	}

	filters := &vectordb.QueryFilters{
		Source:   request.GetString("source", ""),
		FileType: request.GetString("file_type", ""),
		Language: request.GetString("language", ""),
	}
	if filters.Empty() {
		filters = nil
	}

	results, err := s.store.Search(ctx, query, limit, filters)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No results found. The knowledge base may be empty; ingest documents first."), nil
	}

	return mcp.NewToolResultText(vectordb.FormatResults(results)), nil
}

// handleAsk runs the full answer pipeline over retrieved context.
func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	limit := request.GetInt("limit", 5)
	if limit <= 0 {
		limit = 5
	}

	results, err := s.store.Search(ctx, question, limit, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	answer, confidence := s.engine.GenerateAnswer(ctx, question, results)

	var sb strings.Builder
	sb.WriteString(answer)
	sb.WriteString(fmt.Sprintf("\n\nConfidence: %.2f", confidence))
	if len(results) > 0 {
		sb.WriteString("\nSources:")
		seen := make(map[string]bool)
		for _, r := range results {
			src := r.Source()
			if !seen[src] {
				seen[src] = true
				sb.WriteString(fmt.Sprintf("\n- %s", src))
			}
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// handleListDocuments returns the document catalog.
func (s *Server) handleListDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.registry == nil {
		return mcp.NewToolResultText("No documents ingested."), nil
	}

	records, err := s.registry.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing documents failed: %v", err)), nil
	}
	if len(records) == 0 {
		return mcp.NewToolResultText("No documents ingested."), nil
	}

	var sb strings.Builder
	for _, rec := range records {
		sb.WriteString(fmt.Sprintf("%s (%d chunks, %s, ingested %s)\n",
			rec.Filename, rec.ChunkCount, rec.Language, rec.IngestedAt.Format("2006-01-02")))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
