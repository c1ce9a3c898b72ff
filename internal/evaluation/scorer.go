package evaluation

import (
	"fmt"
	"math"
	"strings"
)

// TokenOverlapScorer scores summaries by token multiset overlap. It is a
// lexical stand-in for an embedding-based semantic scorer behind the
// same contract.
type TokenOverlapScorer struct {
	lowercase bool
}

func NewTokenOverlapScorer() *TokenOverlapScorer {
	return &TokenOverlapScorer{lowercase: true}
}

func (s *TokenOverlapScorer) Score(candidates, references []string) ([]float64, []float64, []float64, error) {
	if len(candidates) != len(references) {
		return nil, nil, nil, fmt.Errorf("candidate and reference counts differ: %d vs %d", len(candidates), len(references))
	}
	if len(candidates) == 0 {
		return nil, nil, nil, fmt.Errorf("nothing to score")
	}

	precision := make([]float64, len(candidates))
	recall := make([]float64, len(candidates))
	f1 := make([]float64, len(candidates))

	for i := range candidates {
		candCounts := s.tokenCounts(candidates[i])
		refCounts := s.tokenCounts(references[i])

		overlap := 0
		candTotal := 0
		refTotal := 0
		for token, count := range candCounts {
			candTotal += count
			if refCount, ok := refCounts[token]; ok {
				overlap += minInt(count, refCount)
			}
		}
		for _, count := range refCounts {
			refTotal += count
		}

		precision[i] = safeDivide(float64(overlap), float64(candTotal))
		recall[i] = safeDivide(float64(overlap), float64(refTotal))
		f1[i] = safeDivide(2*precision[i]*recall[i], precision[i]+recall[i])
	}

	return precision, recall, f1, nil
}

func (s *TokenOverlapScorer) tokenCounts(text string) map[string]int {
	if s.lowercase {
		text = strings.ToLower(text)
	}
	counts := make(map[string]int)
	for _, token := range strings.Fields(text) {
		counts[token]++
	}
	return counts
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0.0
	}
	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0.0
	}
	return result
}
