package encoding

import (
	"fmt"
	"strings"
)

const (
	padToken = "<pad>"
	unkToken = "<unk>"
)

// WordTokenizer is a whitespace tokenizer with a corpus-built vocabulary.
// It stands in for a production subword tokenizer behind the Tokenizer
// contract.
type WordTokenizer struct {
	WordToID map[string]int
	IDToWord []string
	IsFitted bool
}

func NewWordTokenizer() *WordTokenizer {
	wt := &WordTokenizer{
		WordToID: make(map[string]int),
	}
	wt.addWord(padToken)
	wt.addWord(unkToken)
	return wt
}

func (wt *WordTokenizer) addWord(word string) int {
	if id, ok := wt.WordToID[word]; ok {
		return id
	}
	id := len(wt.IDToWord)
	wt.WordToID[word] = id
	wt.IDToWord = append(wt.IDToWord, word)
	return id
}

// Fit builds the vocabulary from texts in first-seen order.
func (wt *WordTokenizer) Fit(texts []string) {
	for _, text := range texts {
		for _, word := range strings.Fields(text) {
			wt.addWord(word)
		}
	}
	wt.IsFitted = true
}

func (wt *WordTokenizer) VocabSize() int {
	return len(wt.IDToWord)
}

func (wt *WordTokenizer) PadID() int {
	return wt.WordToID[padToken]
}

func (wt *WordTokenizer) Tokenize(texts []string, opts TokenizeOptions) (BatchEncoding, error) {
	if !wt.IsFitted {
		return nil, fmt.Errorf("tokenizer must be fitted before tokenizing")
	}

	unkID := wt.WordToID[unkToken]
	ids := make([][]int, len(texts))
	maxLen := 0
	for i, text := range texts {
		words := strings.Fields(text)
		seq := make([]int, 0, len(words))
		for _, word := range words {
			id, ok := wt.WordToID[word]
			if !ok {
				id = unkID
			}
			seq = append(seq, id)
		}
		if opts.Truncation && opts.MaxLength > 0 && len(seq) > opts.MaxLength {
			seq = seq[:opts.MaxLength]
		}
		ids[i] = seq
		if len(seq) > maxLen {
			maxLen = len(seq)
		}
	}

	mask := make([][]int, len(ids))
	for i, seq := range ids {
		mask[i] = make([]int, len(seq))
		for j := range seq {
			mask[i][j] = 1
		}
	}

	if opts.Padding {
		padID := wt.PadID()
		for i, seq := range ids {
			for len(seq) < maxLen {
				seq = append(seq, padID)
				mask[i] = append(mask[i], 0)
			}
			ids[i] = seq
		}
	}

	return BatchEncoding{
		"input_ids":      ids,
		"attention_mask": mask,
	}, nil
}

// Decode maps ids back to words, skipping padding.
func (wt *WordTokenizer) Decode(ids []int) string {
	words := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == wt.PadID() || id < 0 || id >= len(wt.IDToWord) {
			continue
		}
		words = append(words, wt.IDToWord[id])
	}
	return strings.Join(words, " ")
}
