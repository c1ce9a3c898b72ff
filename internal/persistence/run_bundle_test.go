package persistence

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRunBundleRoundTrip(t *testing.T) {
	bundle := NewRunBundle([]float64{2.5, 1.75, 1.5})
	bundle.Metadata = BundleMetadata{
		Dataset:         "pairs.csv",
		Device:          "cpu",
		Epochs:          3,
		BatchSize:       8,
		ContextSize:     128,
		TrainingTime:    42 * time.Second,
		PipelineTimesMs: []float64{12.5},
		Precision:       []float64{0.8},
		Recall:          []float64{0.7},
		F1:              []float64{0.74},
	}

	path := filepath.Join(t.TempDir(), "run.bundle")
	if err := bundle.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadRunBundle(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.EpochLosses, bundle.EpochLosses) {
		t.Errorf("losses changed in round trip: %v vs %v", loaded.EpochLosses, bundle.EpochLosses)
	}
	if !reflect.DeepEqual(loaded.Metadata, bundle.Metadata) {
		t.Errorf("metadata changed in round trip: %+v vs %+v", loaded.Metadata, bundle.Metadata)
	}
}

func TestLoadRunBundleMissingFile(t *testing.T) {
	if _, err := LoadRunBundle(filepath.Join(t.TempDir(), "missing.bundle")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveMetadata(t *testing.T) {
	bundle := NewRunBundle([]float64{1.25})
	bundle.Metadata.Dataset = "pairs.csv"
	bundle.Metadata.Epochs = 1
	bundle.Metadata.F1 = []float64{0.5}
	bundle.Metadata.Precision = []float64{0.6}
	bundle.Metadata.Recall = []float64{0.45}
	bundle.Metadata.PipelineTimesMs = []float64{3.5}

	path := filepath.Join(t.TempDir(), "metadata.txt")
	if err := bundle.SaveMetadata(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	out := string(contents)
	if !strings.Contains(out, "Dataset: pairs.csv") {
		t.Errorf("expected dataset line, got:\n%s", out)
	}
	if !strings.Contains(out, "Epoch 1 mean loss: 1.2500") {
		t.Errorf("expected loss line, got:\n%s", out)
	}
	if !strings.Contains(out, "Pipeline 1:") {
		t.Errorf("expected pipeline line, got:\n%s", out)
	}
}
