package rag

import (
	"math"
	"regexp"

	"github.com/ziadkadry99/kbsearch/internal/vectordb"
)

// Positional weights for the similarity average. Results past the fifth
// position do not contribute.
var confidenceWeights = []float64{1.0, 0.8, 0.6, 0.4, 0.2}

var sentenceEndRe = regexp.MustCompile(`[.!?]`)

// Confidence blends the weighted average of the top result similarities
// with a coherence proxy derived from the answer text. Returns a value in
// [0,1] rounded to two decimals; no results means exactly 0.0.
func Confidence(results []vectordb.Result, answer string) float64 {
	if len(results) == 0 {
		return 0.0
	}

	n := len(results)
	if n > len(confidenceWeights) {
		n = len(confidenceWeights)
	}

	var weightedSum, weightTotal float64
	for i := 0; i < n; i++ {
		weightedSum += results[i].Score * confidenceWeights[i]
		weightTotal += confidenceWeights[i]
	}
	weighted := weightedSum / weightTotal

	// Coherence proxy: sentence-terminal punctuation count, saturating at 5.
	coherence := math.Min(float64(len(sentenceEndRe.FindAllString(answer, -1)))/5.0, 1.0)

	conf := math.Min(weighted*0.7+coherence*0.3, 1.0)
	return math.Round(conf*100) / 100
}
