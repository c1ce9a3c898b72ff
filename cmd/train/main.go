package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"summarizer/internal/experiment"
	"summarizer/internal/persistence"
)

func main() {
	dataFile := flag.String("data", "", "Path to CSV file with text and summary columns")
	configFile := flag.String("config", "config/config.yaml", "Path to configuration file")
	outputDir := flag.String("output", "runs", "Output directory for run results")
	epochs := flag.Int("epochs", 0, "Override configured epoch count")
	batchSize := flag.Int("batch-size", 0, "Override configured batch size")
	seed := flag.Int64("seed", -1, "Random seed for reproducible shuffling (-1 for none)")

	flag.Parse()

	if *dataFile == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/train/main.go -data data/train.csv -config config/config.yaml")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	runner := experiment.NewRunner(*configFile)
	if *epochs > 0 {
		runner.Config.Experiment.Training.Epochs = *epochs
	}
	if *batchSize > 0 {
		runner.Config.Experiment.Training.BatchSize = *batchSize
	}
	if *seed >= 0 {
		runner.Config.Experiment.Training.Seed = seed
	}

	fmt.Printf("Training on %s...\n", *dataFile)
	result, err := runner.Run(*dataFile)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	fmt.Printf("\nRun Summary:\n")
	fmt.Printf("Device: %s\n", result.Device)
	fmt.Printf("Epochs completed: %d\n", len(result.EpochLosses))
	fmt.Printf("Training time: %v\n", result.TrainingTime)
	if len(result.EpochLosses) > 0 {
		fmt.Printf("Final mean loss: %.4f\n", result.EpochLosses[len(result.EpochLosses)-1])
	}
	if result.Scores != nil {
		for i := range result.Scores.F1 {
			fmt.Printf("Pipeline %d: precision %.4f recall %.4f f1 %.4f (%.2f ms)\n",
				i+1, result.Scores.Precision[i], result.Scores.Recall[i],
				result.Scores.F1[i], result.PipelineTimesMs[i])
		}
	}

	os.MkdirAll(*outputDir, 0755)
	timestamp := time.Now().Format("20060102_150405")
	runDir := filepath.Join(*outputDir, fmt.Sprintf("run_%s", timestamp))
	os.MkdirAll(runDir, 0755)

	resultsFile := filepath.Join(runDir, "results.csv")
	if err := experiment.ExportResults(result, resultsFile); err != nil {
		log.Printf("Failed to export results: %v", err)
	} else {
		fmt.Printf("Results saved to: %s\n", resultsFile)
	}

	cfg := runner.Config.Experiment
	bundle := persistence.NewRunBundle(result.EpochLosses)
	bundle.Metadata.Dataset = *dataFile
	bundle.Metadata.Device = result.Device
	bundle.Metadata.Epochs = cfg.Training.Epochs
	bundle.Metadata.BatchSize = cfg.Training.BatchSize
	bundle.Metadata.ContextSize = cfg.Training.ContextSize
	bundle.Metadata.TrainingTime = result.TrainingTime
	bundle.Metadata.PipelineTimesMs = result.PipelineTimesMs
	if result.Scores != nil {
		bundle.Metadata.Precision = result.Scores.Precision
		bundle.Metadata.Recall = result.Scores.Recall
		bundle.Metadata.F1 = result.Scores.F1
	}

	bundlePath := filepath.Join(runDir, "run.bundle")
	if err := bundle.Save(bundlePath); err != nil {
		log.Printf("Failed to save bundle: %v", err)
	} else {
		fmt.Printf("Bundle saved to: %s\n", bundlePath)
	}
	if err := bundle.SaveMetadata(filepath.Join(runDir, "metadata.txt")); err != nil {
		log.Printf("Failed to save metadata: %v", err)
	}

	fmt.Println("\nDone")
}
