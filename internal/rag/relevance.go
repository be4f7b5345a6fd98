package rag

import (
	"sort"
	"strings"

	"github.com/ziadkadry99/kbsearch/internal/vectordb"
)

// FilterBySimilarity returns the subsequence of results whose score meets
// the threshold. Order is preserved, no re-sort.
func FilterBySimilarity(results []vectordb.Result, threshold float64) []vectordb.Result {
	filtered := make([]vectordb.Result, 0, len(results))
	for _, r := range results {
		if r.Score >= threshold {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// RankedResult is a retrieved result annotated with its keyword overlap
// against the query. The overlap augments the similarity score for
// presentation, it does not replace it.
type RankedResult struct {
	vectordb.Result
	KeywordOverlap float64
}

// Rerank orders results by the fraction of query terms appearing in each
// result's content, case-insensitive. The sort is stable, so equal overlap
// preserves the upstream similarity order.
func Rerank(query string, results []vectordb.Result) []RankedResult {
	terms := strings.Fields(strings.ToLower(query))

	ranked := make([]RankedResult, len(results))
	for i, r := range results {
		ranked[i] = RankedResult{
			Result:         r,
			KeywordOverlap: keywordOverlap(terms, r.Content),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].KeywordOverlap > ranked[j].KeywordOverlap
	})
	return ranked
}

// keywordOverlap returns the fraction of terms present in the content.
func keywordOverlap(terms []string, content string) float64 {
	if len(terms) == 0 {
		return 0
	}
	lower := strings.ToLower(content)
	hits := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}
