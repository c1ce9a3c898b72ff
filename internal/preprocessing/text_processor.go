package preprocessing

import (
	"regexp"
	"strings"
)

type patternSub struct {
	pattern *regexp.Regexp
	sub     string
}

var cleanupPatterns = []patternSub{
	// Non-ASCII quotes
	{regexp.MustCompile("‘|’"), "'"},
	{regexp.MustCompile("“|”"), `"`},
	// Non-ASCII characters
	{regexp.MustCompile(`[^\x00-\x7f]+`), ""},
	// Emails
	{regexp.MustCompile(`[^\s]+@[^\s]+\.com`), ""},
	// Hyperlinks
	{regexp.MustCompile(`[^\s]*://[^\s]*`), ""},
	// Hashtags
	{regexp.MustCompile(`#[^\s]+`), ""},
	// HTML tags
	{regexp.MustCompile(`<[^\n>]+>`), ""},
}

var numberPattern = patternSub{regexp.MustCompile(`[+?\d+-?]+`), ""}

var whitespacePatterns = []patternSub{
	// Multiple spaces and tabs
	{regexp.MustCompile(`([ \t]){2,}`), "$1"},
	// Spaces and tabs before newline
	{regexp.MustCompile(`[ \t]\n`), "\n"},
	// Multiple newlines
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

type TextProcessor struct {
	patterns []patternSub
}

func NewTextProcessor(clean bool, removeNumbers bool, ignoreTokens []string) *TextProcessor {
	var patterns []patternSub
	if clean {
		patterns = append(patterns, cleanupPatterns...)
	}
	if removeNumbers {
		patterns = append(patterns, numberPattern)
	}
	if len(ignoreTokens) > 0 {
		escaped := make([]string, len(ignoreTokens))
		for i, token := range ignoreTokens {
			escaped[i] = regexp.QuoteMeta(token)
		}
		patterns = append(patterns, patternSub{
			regexp.MustCompile(strings.Join(escaped, "|")), "",
		})
	}
	patterns = append(patterns, whitespacePatterns...)

	return &TextProcessor{patterns: patterns}
}

func (tp *TextProcessor) Process(text string) string {
	for _, ps := range tp.patterns {
		text = ps.pattern.ReplaceAllString(text, ps.sub)
	}
	return strings.TrimSpace(text)
}

// ProcessAll cleans every text, preserving order and count.
func (tp *TextProcessor) ProcessAll(texts []string) []string {
	processed := make([]string, len(texts))
	for i, text := range texts {
		processed[i] = tp.Process(text)
	}
	return processed
}
