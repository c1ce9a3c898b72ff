package data

import (
	"reflect"
	"testing"
)

func TestHeldOutSplitterSizes(t *testing.T) {
	pairs := makePairs(10)
	splitter := NewHeldOutSplitter(0.2, 1, true)

	train, heldOut, err := splitter.Split(pairs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(train) != 8 || len(heldOut) != 2 {
		t.Errorf("expected 8/2 split, got %d/%d", len(train), len(heldOut))
	}
}

func TestHeldOutSplitterReproducible(t *testing.T) {
	pairs := makePairs(10)

	train1, held1, _ := NewHeldOutSplitter(0.3, 5, true).Split(pairs)
	train2, held2, _ := NewHeldOutSplitter(0.3, 5, true).Split(pairs)

	if !reflect.DeepEqual(train1, train2) || !reflect.DeepEqual(held1, held2) {
		t.Error("same seed produced different splits")
	}
}

func TestHeldOutSplitterAtLeastOne(t *testing.T) {
	pairs := makePairs(3)

	_, heldOut, err := NewHeldOutSplitter(0.1, 1, false).Split(pairs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(heldOut) != 1 {
		t.Errorf("expected at least one held-out pair, got %d", len(heldOut))
	}
}

func TestHeldOutSplitterValidation(t *testing.T) {
	if _, _, err := NewHeldOutSplitter(0.2, 1, false).Split(nil); err == nil {
		t.Error("expected error for empty pair set")
	}
	if _, _, err := NewHeldOutSplitter(1.5, 1, false).Split(makePairs(4)); err == nil {
		t.Error("expected error for out-of-range held-out size")
	}
}
