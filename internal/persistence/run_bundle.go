package persistence

import (
	"encoding/gob"
	"fmt"
	"os"
	"time"
)

// RunBundle records a completed training run: configuration echo,
// per-epoch losses and evaluation scores. Model weights are not part of
// the bundle.
type RunBundle struct {
	EpochLosses []float64
	Metadata    BundleMetadata
	CreatedAt   time.Time
}

type BundleMetadata struct {
	Dataset         string
	Device          string
	Epochs          int
	BatchSize       int
	ContextSize     int
	TrainingTime    time.Duration
	PipelineTimesMs []float64
	Precision       []float64
	Recall          []float64
	F1              []float64
}

func NewRunBundle(epochLosses []float64) *RunBundle {
	return &RunBundle{
		EpochLosses: epochLosses,
		CreatedAt:   time.Now(),
	}
}

func (rb *RunBundle) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(rb); err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}

	return nil
}

func LoadRunBundle(filename string) (*RunBundle, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var bundle RunBundle
	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("failed to decode bundle: %w", err)
	}

	return &bundle, nil
}

func (rb *RunBundle) SaveMetadata(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "Dataset: %s\n", rb.Metadata.Dataset)
	fmt.Fprintf(file, "Device: %s\n", rb.Metadata.Device)
	fmt.Fprintf(file, "Created: %s\n", rb.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(file, "Epochs completed: %d/%d\n", len(rb.EpochLosses), rb.Metadata.Epochs)
	fmt.Fprintf(file, "Batch size: %d\n", rb.Metadata.BatchSize)
	fmt.Fprintf(file, "Context size: %d\n", rb.Metadata.ContextSize)
	fmt.Fprintf(file, "Training time: %v\n", rb.Metadata.TrainingTime)
	for i, loss := range rb.EpochLosses {
		fmt.Fprintf(file, "Epoch %d mean loss: %.4f\n", i+1, loss)
	}
	for i := range rb.Metadata.F1 {
		fmt.Fprintf(file, "Pipeline %d: precision %.4f recall %.4f f1 %.4f (%.2f ms)\n",
			i+1, rb.Metadata.Precision[i], rb.Metadata.Recall[i],
			rb.Metadata.F1[i], rb.Metadata.PipelineTimesMs[i])
	}

	return nil
}
