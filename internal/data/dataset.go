package data

import (
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"
	"time"

	"summarizer/internal/encoding"
)

type Pair struct {
	Text    string
	Summary string
}

func CountWords(text string) int {
	return len(strings.Fields(text))
}

// SummarizationDataset groups pairs into fixed-size batches sorted
// ascending by text word count, so sequences of similar length share a
// batch and padding stays small. Batches are encoded lazily on traversal
// and optionally cached. Batch contents never change after construction;
// shuffling only permutes batch order, moving any cache slots with it.
type SummarizationDataset struct {
	batches     [][]Pair
	cached      []encoding.BatchEncoding
	encoder     *encoding.Encoder
	batchSize   int
	contextSize int
	shuffle     bool
	rng         *rand.Rand
	cursor      int
	started     bool
}

// NewSummarizationDataset partitions pairs into floor(len(pairs)/batchSize)
// full batches in sorted order; leftover pairs are dropped. A nil seed
// yields a fresh random state.
func NewSummarizationDataset(
	pairs []Pair, encoder *encoding.Encoder, batchSize, contextSize int,
	useCache, shuffle bool, seed *int64,
) (*SummarizationDataset, error) {
	if encoder == nil {
		return nil, fmt.Errorf("dataset requires an encoder")
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	if contextSize <= 0 {
		return nil, fmt.Errorf("context size must be positive, got %d", contextSize)
	}
	if err := ValidatePairs(pairs); err != nil {
		return nil, err
	}

	numBatches := len(pairs) / batchSize
	if numBatches == 0 {
		return nil, fmt.Errorf("not enough pairs for a single batch: %d pairs, batch size %d", len(pairs), batchSize)
	}

	sorted := make([]Pair, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return CountWords(sorted[i].Text) < CountWords(sorted[j].Text)
	})

	// Each batch owns its pairs so a cached batch can be released alone.
	batches := make([][]Pair, numBatches)
	for i := 0; i < numBatches; i++ {
		batch := make([]Pair, batchSize)
		copy(batch, sorted[i*batchSize:(i+1)*batchSize])
		batches[i] = batch
	}

	var cached []encoding.BatchEncoding
	if useCache {
		cached = make([]encoding.BatchEncoding, numBatches)
	}

	if seed == nil {
		now := time.Now().UnixNano()
		seed = &now
	}

	return &SummarizationDataset{
		batches:     batches,
		cached:      cached,
		encoder:     encoder,
		batchSize:   batchSize,
		contextSize: contextSize,
		shuffle:     shuffle,
		rng:         rand.New(rand.NewSource(*seed)),
	}, nil
}

// Len returns the number of batches.
func (ds *SummarizationDataset) Len() int {
	return len(ds.batches)
}

// Reset starts a new traversal, reshuffling batch order if shuffling is
// enabled.
func (ds *SummarizationDataset) Reset() {
	ds.cursor = 0
	ds.started = true
	if ds.shuffle {
		ds.permute()
	}
}

// permute applies one random permutation jointly to the batch array and
// the cache array, so cache slot i always describes the batch at
// position i.
func (ds *SummarizationDataset) permute() {
	perm := ds.rng.Perm(len(ds.batches))
	batches := make([][]Pair, len(ds.batches))
	var cached []encoding.BatchEncoding
	if ds.cached != nil {
		cached = make([]encoding.BatchEncoding, len(ds.cached))
	}
	for i, j := range perm {
		batches[i] = ds.batches[j]
		if cached != nil {
			cached[i] = ds.cached[j]
		}
	}
	ds.batches = batches
	if cached != nil {
		ds.cached = cached
	}
}

// Next returns the encoded batch at the cursor, or io.EOF when the
// traversal is complete. Call Reset to begin a new traversal.
func (ds *SummarizationDataset) Next() (encoding.BatchEncoding, error) {
	if !ds.started || ds.cursor == len(ds.batches) {
		return nil, io.EOF
	}
	it := ds.cursor
	ds.cursor++

	if ds.cached != nil && ds.cached[it] != nil {
		return ds.cached[it], nil
	}

	pairs := ds.batches[it]
	texts := make([]string, len(pairs))
	summaries := make([]string, len(pairs))
	for i, pair := range pairs {
		texts[i] = pair.Text
		summaries[i] = pair.Summary
	}

	textEncodings, err := ds.encoder.Encode(texts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode batch %d: %w", it, err)
	}

	tokenizer := ds.encoder.Tokenizer()
	summEncodings, err := tokenizer.Tokenize(summaries, encoding.TokenizeOptions{
		Padding:    true,
		Truncation: true,
		MaxLength:  ds.contextSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize summaries of batch %d: %w", it, err)
	}

	// Padded label positions must not contribute to the loss.
	labels := summEncodings.InputIDs()
	padID := tokenizer.PadID()
	for i := range labels {
		for j := range labels[i] {
			if labels[i][j] == padID {
				labels[i][j] = encoding.IgnoreID
			}
		}
	}

	batch := make(encoding.BatchEncoding, len(textEncodings)+1)
	for key, value := range textEncodings {
		batch[key] = value
	}
	batch["labels"] = labels

	if ds.cached != nil {
		ds.cached[it] = batch
		// The raw pairs are redundant once the encoded batch is cached.
		ds.batches[it] = nil
	}

	return batch, nil
}
