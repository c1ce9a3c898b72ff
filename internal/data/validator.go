package data

import (
	"fmt"
	"strings"
)

// ValidatePairs rejects empty pair sets and pairs with a blank text or
// summary.
func ValidatePairs(pairs []Pair) error {
	if len(pairs) == 0 {
		return fmt.Errorf("pair set is empty")
	}

	for i, pair := range pairs {
		if strings.TrimSpace(pair.Text) == "" {
			return fmt.Errorf("empty text at pair %d", i)
		}
		if strings.TrimSpace(pair.Summary) == "" {
			return fmt.Errorf("empty summary at pair %d", i)
		}
	}

	return nil
}

// GetPairStats summarizes a pair set for display.
func GetPairStats(pairs []Pair) map[string]any {
	if len(pairs) == 0 {
		return map[string]any{}
	}

	stats := make(map[string]any)
	stats["pairs"] = len(pairs)

	minWords, maxWords, totalWords := CountWords(pairs[0].Text), 0, 0
	for _, pair := range pairs {
		words := CountWords(pair.Text)
		if words < minWords {
			minWords = words
		}
		if words > maxWords {
			maxWords = words
		}
		totalWords += words
	}
	stats["min_text_words"] = minWords
	stats["max_text_words"] = maxWords
	stats["mean_text_words"] = float64(totalWords) / float64(len(pairs))

	return stats
}
