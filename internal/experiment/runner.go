package experiment

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"summarizer/internal/data"
	"summarizer/internal/device"
	"summarizer/internal/encoding"
	"summarizer/internal/evaluation"
	"summarizer/internal/models"
	"summarizer/internal/preprocessing"
	"summarizer/internal/training"
)

type Config struct {
	Experiment struct {
		Data struct {
			HeldOutSize float64 `yaml:"held_out_size"`
		} `yaml:"data"`
		Preprocessing struct {
			Clean         bool     `yaml:"clean"`
			RemoveNumbers bool     `yaml:"remove_numbers"`
			IgnoreTokens  []string `yaml:"ignore_tokens"`
		} `yaml:"preprocessing"`
		Training struct {
			Epochs         int     `yaml:"epochs"`
			BatchSize      int     `yaml:"batch_size"`
			ContextSize    int     `yaml:"context_size"`
			UseCache       bool    `yaml:"use_cache"`
			Shuffle        bool    `yaml:"shuffle"`
			Seed           *int64  `yaml:"seed"`
			LearningRate   float64 `yaml:"learning_rate"`
			FloatPrecision int     `yaml:"float_precision"`
		} `yaml:"training"`
		Scheduler struct {
			Factor   float64 `yaml:"factor"`
			Patience int     `yaml:"patience"`
		} `yaml:"scheduler"`
		Evaluation struct {
			Enabled   bool `yaml:"enabled"`
			LeadWords int  `yaml:"lead_words"`
		} `yaml:"evaluation"`
	} `yaml:"experiment"`
}

func DefaultConfig() *Config {
	config := &Config{}
	config.Experiment.Data.HeldOutSize = 0.2
	config.Experiment.Preprocessing.Clean = true
	config.Experiment.Training.Epochs = 4
	config.Experiment.Training.BatchSize = 8
	config.Experiment.Training.ContextSize = 128
	config.Experiment.Training.UseCache = true
	config.Experiment.Training.Shuffle = true
	config.Experiment.Training.LearningRate = 0.5
	config.Experiment.Training.FloatPrecision = 4
	config.Experiment.Scheduler.Factor = 0.5
	config.Experiment.Scheduler.Patience = 1
	config.Experiment.Evaluation.Enabled = true
	config.Experiment.Evaluation.LeadWords = 30
	return config
}

type Runner struct {
	Config   *Config
	Reporter training.Reporter
}

func NewRunner(configFile string) *Runner {
	config := DefaultConfig()

	contents, err := os.ReadFile(configFile)
	if err == nil {
		yaml.Unmarshal(contents, config)
	}

	return &Runner{Config: config}
}

type RunResult struct {
	Dataset         string
	Device          string
	EpochLosses     []float64
	TrainingTime    time.Duration
	PipelineTimesMs []float64
	Scores          *evaluation.PipelineScores
}

// Run executes the full pipeline on a pair CSV: load, split, fit the
// tokenizer, build the dataset, train, and (when enabled) evaluate the
// lead baseline over the held-out set.
func (r *Runner) Run(dataFile string) (*RunResult, error) {
	cfg := r.Config.Experiment

	pairs, err := data.LoadPairs(dataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load pairs: %w", err)
	}

	trainPairs := pairs
	var heldOut []data.Pair
	if cfg.Evaluation.Enabled {
		seed := time.Now().UnixNano()
		if cfg.Training.Seed != nil {
			seed = *cfg.Training.Seed
		}
		splitter := data.NewHeldOutSplitter(cfg.Data.HeldOutSize, seed, true)
		trainPairs, heldOut, err = splitter.Split(pairs)
		if err != nil {
			return nil, fmt.Errorf("failed to split pairs: %w", err)
		}
	}

	processor := preprocessing.NewTextProcessor(
		cfg.Preprocessing.Clean,
		cfg.Preprocessing.RemoveNumbers,
		cfg.Preprocessing.IgnoreTokens,
	)

	tokenizer := encoding.NewWordTokenizer()
	corpus := make([]string, 0, 2*len(trainPairs))
	for _, pair := range trainPairs {
		corpus = append(corpus, pair.Text, pair.Summary)
	}
	tokenizer.Fit(processor.ProcessAll(corpus))

	encoder, err := encoding.NewEncoder(tokenizer, processor, nil)
	if err != nil {
		return nil, err
	}

	dataset, err := data.NewSummarizationDataset(
		trainPairs, encoder, cfg.Training.BatchSize, cfg.Training.ContextSize,
		cfg.Training.UseCache, cfg.Training.Shuffle, cfg.Training.Seed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset: %w", err)
	}

	model := models.NewUnigramModel(tokenizer.VocabSize())
	optimizer := models.NewSGD(model, cfg.Training.LearningRate)
	scheduler := models.NewPlateauScheduler(optimizer, cfg.Scheduler.Factor, cfg.Scheduler.Patience)

	reporter := r.Reporter
	if reporter == nil {
		reporter = training.NewConsoleReporter(cfg.Training.FloatPrecision)
	}

	dev := device.Default()
	loop, err := training.NewLoop(model, dataset, cfg.Training.Epochs, optimizer, scheduler, dev, reporter)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	losses := loop.Run()
	result := &RunResult{
		Dataset:      dataFile,
		Device:       string(dev),
		EpochLosses:  losses,
		TrainingTime: time.Since(start),
	}

	if cfg.Evaluation.Enabled {
		pipelines := []evaluation.Pipeline{evaluation.LeadPipeline(cfg.Evaluation.LeadWords)}
		evaluator, err := evaluation.NewEvaluator(pipelines, heldOut, evaluation.NewTokenOverlapScorer())
		if err != nil {
			return nil, err
		}
		result.PipelineTimesMs, err = evaluator.GenerateSummaries()
		if err != nil {
			return nil, fmt.Errorf("evaluation failed: %w", err)
		}
		result.Scores, err = evaluator.Scores()
		if err != nil {
			return nil, fmt.Errorf("evaluation failed: %w", err)
		}
	}

	return result, nil
}

// ExportResults writes per-epoch losses and per-pipeline scores as CSV.
func ExportResults(result *RunResult, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"Kind", "Index", "Loss", "Precision", "Recall", "F1", "TimeMs"})

	for i, loss := range result.EpochLosses {
		writer.Write([]string{
			"epoch", fmt.Sprintf("%d", i+1), fmt.Sprintf("%.4f", loss), "", "", "", "",
		})
	}

	if result.Scores != nil {
		for i := range result.Scores.F1 {
			writer.Write([]string{
				"pipeline", fmt.Sprintf("%d", i+1), "",
				fmt.Sprintf("%.4f", result.Scores.Precision[i]),
				fmt.Sprintf("%.4f", result.Scores.Recall[i]),
				fmt.Sprintf("%.4f", result.Scores.F1[i]),
				fmt.Sprintf("%.2f", result.PipelineTimesMs[i]),
			})
		}
	}

	return nil
}
