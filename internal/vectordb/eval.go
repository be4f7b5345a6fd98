package vectordb

import "math"

// RetrievalMetrics summarizes retrieval quality for one query against a
// known relevant set.
type RetrievalMetrics struct {
	PrecisionAtK float64 `json:"precision_at_k"`
	RecallAtK    float64 `json:"recall_at_k"`
	MRR          float64 `json:"mrr"`
	K            int     `json:"k"`
	Retrieved    int     `json:"retrieved"`
	Relevant     int     `json:"relevant"`
}

// EvaluateRetrieval scores the top-k retrieved sources against the expected
// relevant sources. Precision and recall are computed over the top k
// results; MRR uses the rank of the first relevant hit. All metrics are
// rounded to four decimal places.
func EvaluateRetrieval(retrieved []Result, relevantSources []string, k int) RetrievalMetrics {
	if k <= 0 {
		k = len(retrieved)
	}
	if k > len(retrieved) {
		k = len(retrieved)
	}

	relevant := make(map[string]bool, len(relevantSources))
	for _, s := range relevantSources {
		relevant[s] = true
	}

	m := RetrievalMetrics{
		K:         k,
		Retrieved: len(retrieved),
		Relevant:  len(relevantSources),
	}
	if k == 0 || len(relevant) == 0 {
		return m
	}

	hits := 0
	seen := make(map[string]bool)
	for i := 0; i < k; i++ {
		src := retrieved[i].Source()
		if relevant[src] {
			hits++
			if m.MRR == 0 {
				m.MRR = 1.0 / float64(i+1)
			}
			seen[src] = true
		}
	}

	m.PrecisionAtK = round4(float64(hits) / float64(k))
	m.RecallAtK = round4(float64(len(seen)) / float64(len(relevant)))
	m.MRR = round4(m.MRR)
	return m
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
