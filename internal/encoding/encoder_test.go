package encoding

import (
	"testing"

	"summarizer/internal/preprocessing"
)

func fittedTokenizer(t *testing.T, texts ...string) *WordTokenizer {
	t.Helper()
	wt := NewWordTokenizer()
	wt.Fit(texts)
	return wt
}

func TestWordTokenizerPadding(t *testing.T) {
	wt := fittedTokenizer(t, "a b c", "d e")

	enc, err := wt.Tokenize([]string{"a b c", "d e"}, TokenizeOptions{Padding: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := enc.InputIDs()
	if len(ids) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ids))
	}
	if len(ids[0]) != 3 || len(ids[1]) != 3 {
		t.Fatalf("expected rows padded to 3, got %d and %d", len(ids[0]), len(ids[1]))
	}
	if ids[1][2] != wt.PadID() {
		t.Errorf("expected pad id %d at padded position, got %d", wt.PadID(), ids[1][2])
	}

	mask := enc["attention_mask"]
	if mask[1][2] != 0 || mask[1][1] != 1 {
		t.Errorf("attention mask does not match padding: %v", mask[1])
	}
}

func TestWordTokenizerTruncation(t *testing.T) {
	wt := fittedTokenizer(t, "a b c d e")

	enc, err := wt.Tokenize([]string{"a b c d e"}, TokenizeOptions{Truncation: true, MaxLength: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(enc.InputIDs()[0]); got != 3 {
		t.Errorf("expected truncation to 3 ids, got %d", got)
	}
}

func TestWordTokenizerUnknownWords(t *testing.T) {
	wt := fittedTokenizer(t, "known words")

	enc, err := wt.Tokenize([]string{"unseen"}, TokenizeOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc.InputIDs()[0][0] != wt.WordToID[unkToken] {
		t.Errorf("expected unk id for unseen word, got %d", enc.InputIDs()[0][0])
	}
}

func TestWordTokenizerRequiresFit(t *testing.T) {
	wt := NewWordTokenizer()
	if _, err := wt.Tokenize([]string{"a"}, TokenizeOptions{}); err == nil {
		t.Error("expected error from unfitted tokenizer")
	}
}

func TestWordTokenizerDecode(t *testing.T) {
	wt := fittedTokenizer(t, "hello world")

	enc, err := wt.Tokenize([]string{"hello world", "hello"}, TokenizeOptions{Padding: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := wt.Decode(enc.InputIDs()[1]); got != "hello" {
		t.Errorf("expected padding skipped in decode, got %q", got)
	}
}

// capturingStrategy records the texts it is asked to encode.
type capturingStrategy struct {
	tokenizer Tokenizer
	seen      [][]string
}

func (s *capturingStrategy) GenerateEncodings(texts []string) (BatchEncoding, error) {
	captured := make([]string, len(texts))
	copy(captured, texts)
	s.seen = append(s.seen, captured)
	return s.tokenizer.Tokenize(texts, TokenizeOptions{Padding: true})
}

func TestEncoderPreprocessesBeforeEncoding(t *testing.T) {
	wt := fittedTokenizer(t, "some bold text")
	processor := preprocessing.NewTextProcessor(true, false, nil)
	strategy := &capturingStrategy{tokenizer: wt}

	encoder, err := NewEncoder(wt, processor, strategy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := encoder.Encode([]string{"some <b>bold</b> text"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(strategy.seen) != 1 {
		t.Fatalf("expected 1 strategy call, got %d", len(strategy.seen))
	}
	if strategy.seen[0][0] != "some bold text" {
		t.Errorf("strategy saw unpreprocessed text: %q", strategy.seen[0][0])
	}
}

func TestEncodeTextNormalizesToBatch(t *testing.T) {
	wt := fittedTokenizer(t, "single text")

	encoder, err := NewEncoder(wt, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	enc, err := encoder.EncodeText("single text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enc.InputIDs()) != 1 {
		t.Errorf("expected one-element batch, got %d rows", len(enc.InputIDs()))
	}
}

func TestEncoderRequiresTokenizer(t *testing.T) {
	if _, err := NewEncoder(nil, nil, nil); err == nil {
		t.Error("expected error for nil tokenizer")
	}
}
