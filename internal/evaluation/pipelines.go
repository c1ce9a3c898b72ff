package evaluation

import (
	"fmt"
	"strings"
)

// LeadPipeline is the classic lead baseline: the summary is the first
// maxWords words of the text.
func LeadPipeline(maxWords int) Pipeline {
	return func(texts []string) ([]string, error) {
		if maxWords <= 0 {
			return nil, fmt.Errorf("lead pipeline needs a positive word count, got %d", maxWords)
		}
		summaries := make([]string, len(texts))
		for i, text := range texts {
			words := strings.Fields(text)
			if len(words) > maxWords {
				words = words[:maxWords]
			}
			summaries[i] = strings.Join(words, " ")
		}
		return summaries, nil
	}
}
