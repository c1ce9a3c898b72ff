package data

import (
	"fmt"
	"math/rand"
	"time"
)

// HeldOutSplitter splits a pair set into a training portion and a
// held-out portion for evaluation.
type HeldOutSplitter struct {
	heldOutSize float64
	randomSeed  int64
	shuffle     bool
}

func NewHeldOutSplitter(heldOutSize float64, randomSeed int64, shuffle bool) *HeldOutSplitter {
	return &HeldOutSplitter{
		heldOutSize: heldOutSize,
		randomSeed:  randomSeed,
		shuffle:     shuffle,
	}
}

func (s *HeldOutSplitter) Split(pairs []Pair) ([]Pair, []Pair, error) {
	if len(pairs) == 0 {
		return nil, nil, fmt.Errorf("cannot split empty pair set")
	}
	if s.heldOutSize <= 0 || s.heldOutSize >= 1 {
		return nil, nil, fmt.Errorf("held-out size must be between 0 and 1")
	}

	n := len(pairs)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	if s.shuffle {
		rng := rand.New(rand.NewSource(s.randomSeed))
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	heldOutCount := int(float64(n) * s.heldOutSize)
	if heldOutCount == 0 {
		heldOutCount = 1
	}
	trainCount := n - heldOutCount

	train := make([]Pair, trainCount)
	heldOut := make([]Pair, heldOutCount)
	for i := 0; i < trainCount; i++ {
		train[i] = pairs[indices[i]]
	}
	for i := 0; i < heldOutCount; i++ {
		heldOut[i] = pairs[indices[trainCount+i]]
	}

	return train, heldOut, nil
}

func DefaultHeldOutSplitter() *HeldOutSplitter {
	return NewHeldOutSplitter(0.2, time.Now().UnixNano(), true)
}
