package evaluation

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"summarizer/internal/data"
)

// Pipeline generates one summary per input text, preserving order.
type Pipeline func(texts []string) ([]string, error)

// Scorer scores candidate summaries against references, one value per
// pair for each metric.
type Scorer interface {
	Score(candidates, references []string) (precision, recall, f1 []float64, err error)
}

// PipelineScores holds one mean metric value per pipeline.
type PipelineScores struct {
	Precision []float64
	Recall    []float64
	F1        []float64
}

// Evaluator runs registered pipelines over a held-out corpus and scores
// their outputs. Generated summaries accumulate across calls to
// GenerateSummaries; callers wanting fresh scores must not invoke it
// twice before Scores.
type Evaluator struct {
	pipelines []Pipeline
	texts     []string
	summaries []string
	scorer    Scorer
	generated []string
}

func NewEvaluator(pipelines []Pipeline, pairs []data.Pair, scorer Scorer) (*Evaluator, error) {
	if len(pipelines) == 0 {
		return nil, fmt.Errorf("evaluator requires at least one pipeline")
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("evaluator requires a held-out pair set")
	}
	if scorer == nil {
		return nil, fmt.Errorf("evaluator requires a scorer")
	}

	texts := make([]string, len(pairs))
	summaries := make([]string, len(pairs))
	for i, pair := range pairs {
		texts[i] = pair.Text
		summaries[i] = pair.Summary
	}

	return &Evaluator{
		pipelines: pipelines,
		texts:     texts,
		summaries: summaries,
		scorer:    scorer,
	}, nil
}

// GenerateSummaries invokes every pipeline over the full text set in
// registration order, appending outputs to the accumulated summaries.
// It returns the wall-clock milliseconds each pipeline took.
func (e *Evaluator) GenerateSummaries() ([]float64, error) {
	timesMs := make([]float64, 0, len(e.pipelines))

	for i, pipeline := range e.pipelines {
		start := time.Now()
		outputs, err := pipeline(e.texts)
		elapsed := float64(time.Since(start).Nanoseconds()) / 1e6
		if err != nil {
			return nil, fmt.Errorf("pipeline %d failed: %w", i, err)
		}
		if len(outputs) != len(e.texts) {
			return nil, fmt.Errorf("pipeline %d returned %d summaries for %d texts", i, len(outputs), len(e.texts))
		}
		e.generated = append(e.generated, outputs...)
		timesMs = append(timesMs, elapsed)
	}

	return timesMs, nil
}

// Scores runs one generation pass if none happened yet, scores every
// generated summary against the replicated references, and averages each
// metric per pipeline.
func (e *Evaluator) Scores() (*PipelineScores, error) {
	if len(e.generated) == 0 {
		if _, err := e.GenerateSummaries(); err != nil {
			return nil, err
		}
	}

	numPipelines := len(e.pipelines)
	references := make([]string, 0, numPipelines*len(e.summaries))
	for i := 0; i < numPipelines; i++ {
		references = append(references, e.summaries...)
	}

	precision, recall, f1, err := e.scorer.Score(e.generated, references)
	if err != nil {
		return nil, fmt.Errorf("scoring failed: %w", err)
	}

	return &PipelineScores{
		Precision: pipelineMeans(precision, numPipelines),
		Recall:    pipelineMeans(recall, numPipelines),
		F1:        pipelineMeans(f1, numPipelines),
	}, nil
}

// pipelineMeans reshapes per-pair values into one row per pipeline and
// averages each row.
func pipelineMeans(values []float64, numPipelines int) []float64 {
	cols := len(values) / numPipelines
	rows := mat.NewDense(numPipelines, cols, values)

	means := make([]float64, numPipelines)
	for i := range means {
		means[i] = floats.Sum(rows.RawRowView(i)) / float64(cols)
	}
	return means
}
