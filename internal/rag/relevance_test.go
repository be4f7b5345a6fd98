package rag

import (
	"testing"

	"github.com/ziadkadry99/kbsearch/internal/vectordb"
)

func TestFilterBySimilarity(t *testing.T) {
	results := []vectordb.Result{
		result("a", "a.txt", 0.9),
		result("b", "b.txt", 0.5),
		result("c", "c.txt", 0.2),
	}

	filtered := FilterBySimilarity(results, 0.3)
	if len(filtered) != 2 {
		t.Fatalf("got %d results, want 2", len(filtered))
	}
	if filtered[0].Score != 0.9 || filtered[1].Score != 0.5 {
		t.Errorf("filter must preserve order: %v, %v", filtered[0].Score, filtered[1].Score)
	}

	if got := FilterBySimilarity(nil, 0.3); len(got) != 0 {
		t.Errorf("nil input: got %d results", len(got))
	}
}

func TestRerank(t *testing.T) {
	results := []vectordb.Result{
		result("nothing in common here", "a.txt", 0.9),
		result("Postgres handles replication lag with standby nodes", "b.txt", 0.7),
		result("replication only", "c.txt", 0.5),
	}

	ranked := Rerank("postgres replication lag", results)
	if len(ranked) != 3 {
		t.Fatalf("got %d results", len(ranked))
	}
	if ranked[0].Source() != "b.txt" {
		t.Errorf("best overlap first: got %s", ranked[0].Source())
	}
	if ranked[0].KeywordOverlap != 1.0 {
		t.Errorf("full overlap: got %v", ranked[0].KeywordOverlap)
	}
	if ranked[2].KeywordOverlap != 0.0 {
		t.Errorf("no overlap last: got %v", ranked[2].KeywordOverlap)
	}
	// Similarity scores survive reranking untouched.
	if ranked[0].Score != 0.7 {
		t.Errorf("score must not be replaced: got %v", ranked[0].Score)
	}
}

func TestRerankStableOnTies(t *testing.T) {
	results := []vectordb.Result{
		result("alpha term", "first.txt", 0.9),
		result("alpha term", "second.txt", 0.8),
	}

	ranked := Rerank("term", results)
	if ranked[0].Source() != "first.txt" || ranked[1].Source() != "second.txt" {
		t.Error("equal overlap must preserve upstream order")
	}
}

func TestConfidence(t *testing.T) {
	answer := "One. Two. Three. Four. Five."

	if got := Confidence(nil, answer); got != 0.0 {
		t.Errorf("empty results: got %v, want exactly 0.0", got)
	}

	// Single result, coherence saturated: 0.7*score + 0.3.
	got := Confidence([]vectordb.Result{result("x", "a.txt", 1.0)}, answer)
	if got != 1.0 {
		t.Errorf("got %v, want 1.0", got)
	}

	got = Confidence([]vectordb.Result{result("x", "a.txt", 0.5)}, answer)
	if got != 0.65 {
		t.Errorf("got %v, want 0.65", got)
	}

	// No sentence punctuation: coherence contributes nothing.
	got = Confidence([]vectordb.Result{result("x", "a.txt", 0.5)}, "fragment without ending")
	if got != 0.35 {
		t.Errorf("got %v, want 0.35", got)
	}
}

func TestConfidenceBounds(t *testing.T) {
	many := make([]vectordb.Result, 8)
	for i := range many {
		many[i] = result("x", "a.txt", 1.0)
	}
	got := Confidence(many, "A. B. C. D. E. F. G. H.")
	if got < 0 || got > 1 {
		t.Errorf("out of bounds: %v", got)
	}
	if got != 1.0 {
		t.Errorf("maximal inputs: got %v, want 1.0", got)
	}
}

func TestConfidenceOrdering(t *testing.T) {
	answer := "A statement. Another statement."
	low := []vectordb.Result{result("x", "a.txt", 0.4), result("y", "b.txt", 0.3)}
	high := []vectordb.Result{result("x", "a.txt", 0.9), result("y", "b.txt", 0.8)}

	if Confidence(high, answer) < Confidence(low, answer) {
		t.Error("higher similarity scores must not lower confidence")
	}
}
