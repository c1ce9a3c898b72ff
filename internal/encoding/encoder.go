package encoding

import (
	"fmt"

	"summarizer/internal/preprocessing"
)

// IgnoreID marks padded label positions excluded from the loss.
const IgnoreID = -100

type TokenizeOptions struct {
	Padding    bool
	Truncation bool
	MaxLength  int
}

// BatchEncoding is a model-ready batch keyed by input name
// ("input_ids", "attention_mask", "labels", ...).
type BatchEncoding map[string][][]int

func (be BatchEncoding) InputIDs() [][]int {
	return be["input_ids"]
}

func (be BatchEncoding) Labels() [][]int {
	return be["labels"]
}

type Tokenizer interface {
	PadID() int
	Tokenize(texts []string, opts TokenizeOptions) (BatchEncoding, error)
}

// Strategy produces encodings for already-preprocessed texts.
type Strategy interface {
	GenerateEncodings(texts []string) (BatchEncoding, error)
}

// Encoder applies an optional preprocessor to texts, then delegates to a
// tokenization strategy. It keeps no state between calls.
type Encoder struct {
	tokenizer    Tokenizer
	strategy     Strategy
	preprocessor *preprocessing.TextProcessor
}

func NewEncoder(tokenizer Tokenizer, preprocessor *preprocessing.TextProcessor, strategy Strategy) (*Encoder, error) {
	if tokenizer == nil {
		return nil, fmt.Errorf("encoder requires a tokenizer")
	}
	if strategy == nil {
		strategy = paddedStrategy{tokenizer: tokenizer}
	}
	return &Encoder{
		tokenizer:    tokenizer,
		strategy:     strategy,
		preprocessor: preprocessor,
	}, nil
}

func (e *Encoder) Tokenizer() Tokenizer {
	return e.tokenizer
}

func (e *Encoder) Encode(texts []string) (BatchEncoding, error) {
	if e.preprocessor != nil {
		texts = e.preprocessor.ProcessAll(texts)
	}
	return e.strategy.GenerateEncodings(texts)
}

// EncodeText encodes a single text as a one-element batch.
func (e *Encoder) EncodeText(text string) (BatchEncoding, error) {
	return e.Encode([]string{text})
}

// paddedStrategy is the default strategy: batch tokenization padded to
// the longest sequence in the batch.
type paddedStrategy struct {
	tokenizer Tokenizer
}

func (s paddedStrategy) GenerateEncodings(texts []string) (BatchEncoding, error) {
	return s.tokenizer.Tokenize(texts, TokenizeOptions{Padding: true})
}
