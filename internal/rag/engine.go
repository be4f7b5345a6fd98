package rag

import (
	"context"
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ziadkadry99/kbsearch/internal/llm"
	"github.com/ziadkadry99/kbsearch/internal/vectordb"
)

// NoDocumentsMessage is returned when no retrieved result clears the
// similarity threshold.
const NoDocumentsMessage = "No relevant documents found. Please rephrase your question or upload more data."

var numericRe = regexp.MustCompile(`\d+(\.\d+)?`)

// Options configures an Engine. Zero values take the listed defaults.
type Options struct {
	SimilarityThreshold float64 // default 0.3
	MaxTokens           int     // default 1000
	Temperature         float64 // default 0.7
}

// Engine orchestrates answer synthesis over retrieved document chunks.
// Each call is stateless beyond the configuration, so one Engine serves
// concurrent requests.
type Engine struct {
	provider  llm.Provider
	threshold float64
	maxTokens int
	temp      float64
}

// New creates an Engine on top of the given chat provider.
func New(provider llm.Provider, opts Options) *Engine {
	if opts.SimilarityThreshold == 0 {
		opts.SimilarityThreshold = 0.3
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 1000
	}
	if opts.Temperature == 0 {
		opts.Temperature = 0.7
	}
	return &Engine{
		provider:  provider,
		threshold: opts.SimilarityThreshold,
		maxTokens: opts.MaxTokens,
		temp:      opts.Temperature,
	}
}

// GenerateAnswer produces a context-grounded answer and its confidence from
// raw retrieval results. It never returns an error: a failed LLM call yields
// an error-describing answer with zero confidence, and an empty filtered set
// yields the fixed no-documents message without calling the LLM at all.
func (e *Engine) GenerateAnswer(ctx context.Context, query string, results []vectordb.Result) (string, float64) {
	filtered := FilterBySimilarity(results, e.threshold)
	if len(filtered) == 0 {
		log.Printf("no documents met similarity threshold %.2f for query %q", e.threshold, truncate(query, 60))
		return NoDocumentsMessage, 0.0
	}

	docContext := prepareContext(filtered)

	// Expansion is best-effort: on failure the original query stands.
	expanded := e.expandQuery(ctx, query)

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: answerSystemPrompt},
			{Role: llm.RoleUser, Content: answerPrompt(expanded, docContext)},
		},
		MaxTokens:   e.maxTokens,
		Temperature: e.temp,
	})
	if err != nil {
		log.Printf("answer generation failed: %v", err)
		return fmt.Sprintf("Error generating answer: %v", err), 0.0
	}

	answer := strings.TrimSpace(resp.Content)
	return answer, Confidence(filtered, answer)
}

// expandQuery asks the model for related terms to broaden retrieval. Any
// failure falls back to the original query.
func (e *Engine) expandQuery(ctx context.Context, query string) string {
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: expansionSystemPrompt},
			{Role: llm.RoleUser, Content: expansionPrompt(query)},
		},
		MaxTokens:   80,
		Temperature: 0.4,
	})
	if err != nil {
		log.Printf("query expansion failed: %v", err)
		return query
	}
	expanded := strings.TrimSpace(resp.Content)
	if expanded == "" {
		return query
	}
	return expanded
}

// Summarize produces a concise summary of the given results.
func (e *Engine) Summarize(ctx context.Context, results []vectordb.Result) string {
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: summarySystemPrompt},
			{Role: llm.RoleUser, Content: summaryPrompt(prepareContext(results))},
		},
		MaxTokens:   500,
		Temperature: 0.5,
	})
	if err != nil {
		log.Printf("summary generation failed: %v", err)
		return fmt.Sprintf("Error generating summary: %v", err)
	}
	return strings.TrimSpace(resp.Content)
}

// ExtractKeywords pulls 3-6 key terms out of a query. On failure the query
// itself is returned as the only keyword.
func (e *Engine) ExtractKeywords(ctx context.Context, query string) []string {
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: keywordSystemPrompt},
			{Role: llm.RoleUser, Content: keywordPrompt(query)},
		},
		MaxTokens:   80,
		Temperature: 0.3,
	})
	if err != nil {
		log.Printf("keyword extraction failed: %v", err)
		return []string{query}
	}

	var keywords []string
	for _, part := range strings.FieldsFunc(resp.Content, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	}) {
		if kw := strings.TrimSpace(part); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return []string{query}
	}
	return keywords
}

// EvaluateSynthesis asks the model to grade the generated answer against a
// reference on a 0-10 scale and maps the first numeric token to [0,1].
// Advisory only; any failure yields 0.0.
func (e *Engine) EvaluateSynthesis(ctx context.Context, reference, answer string) float64 {
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: evalSystemPrompt},
			{Role: llm.RoleUser, Content: evalPrompt(reference, answer)},
		},
		MaxTokens:   10,
		Temperature: 0.0,
	})
	if err != nil {
		log.Printf("synthesis evaluation failed: %v", err)
		return 0.0
	}

	match := numericRe.FindString(resp.Content)
	if match == "" {
		return 0.0
	}
	raw, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0.0
	}

	score := math.Min(math.Max(raw/10, 0.0), 1.0)
	return math.Round(score*100) / 100
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// prepareContext renders the retrieved chunks into the block handed to the
// model, one header line per document followed by its normalized content.
func prepareContext(results []vectordb.Result) string {
	parts := make([]string, len(results))
	for i, r := range results {
		content := strings.TrimSpace(whitespaceRe.ReplaceAllString(r.Content, " "))
		parts[i] = fmt.Sprintf("[Document %d | Source: %s | Relevance: %.2f]\n%s\n",
			i+1, r.Source(), r.Score, content)
	}
	return strings.Join(parts, "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
