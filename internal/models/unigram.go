package models

import (
	"fmt"
	"math"

	"summarizer/internal/device"
	"summarizer/internal/encoding"
)

// UnigramModel is a reference trainable model: a vector of logits over
// the vocabulary, trained to maximize the likelihood of summary tokens.
// It exists so the binaries and tests can drive a full optimization run
// without an external model backend.
type UnigramModel struct {
	BaseModel
	Logits []float64
	grad   []float64

	training bool
	dev      device.Device
}

func NewUnigramModel(vocabSize int) *UnigramModel {
	return &UnigramModel{
		BaseModel: BaseModel{
			Name:   "Unigram",
			Params: map[string]any{"vocab_size": vocabSize},
		},
		Logits: make([]float64, vocabSize),
		grad:   make([]float64, vocabSize),
		dev:    device.CPU,
	}
}

func (m *UnigramModel) Train(on bool) {
	m.training = on
}

func (m *UnigramModel) To(dev device.Device) {
	m.dev = dev
}

func (m *UnigramModel) Forward(batch encoding.BatchEncoding) (Output, error) {
	labels := batch.Labels()
	if labels == nil {
		return nil, fmt.Errorf("batch has no labels")
	}

	counts := make([]float64, len(m.Logits))
	total := 0
	for _, row := range labels {
		for _, id := range row {
			if id == encoding.IgnoreID {
				continue
			}
			if id < 0 || id >= len(m.Logits) {
				return nil, fmt.Errorf("label id %d outside vocabulary of size %d", id, len(m.Logits))
			}
			counts[id]++
			total++
		}
	}
	if total == 0 {
		return nil, fmt.Errorf("batch has no unmasked label positions")
	}

	logZ := logSumExp(m.Logits)
	loss := 0.0
	for id, count := range counts {
		if count > 0 {
			loss += count * (logZ - m.Logits[id])
		}
	}
	loss /= float64(total)

	return &unigramOutput{model: m, counts: counts, total: total, loss: loss, logZ: logZ}, nil
}

type unigramOutput struct {
	model  *UnigramModel
	counts []float64
	total  int
	loss   float64
	logZ   float64
}

func (o *unigramOutput) Loss() float64 {
	return o.loss
}

// Backward accumulates softmax(logits) - empirical distribution into the
// model's gradient.
func (o *unigramOutput) Backward() error {
	m := o.model
	for id := range m.Logits {
		prob := math.Exp(m.Logits[id] - o.logZ)
		m.grad[id] += prob - o.counts[id]/float64(o.total)
	}
	return nil
}

func logSumExp(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	sum := 0.0
	for _, v := range values {
		sum += math.Exp(v - max)
	}
	return max + math.Log(sum)
}

// SGD applies plain gradient descent to a unigram model.
type SGD struct {
	model        *UnigramModel
	LearningRate float64
}

func NewSGD(model *UnigramModel, learningRate float64) *SGD {
	return &SGD{model: model, LearningRate: learningRate}
}

func (o *SGD) ZeroGrad() {
	for i := range o.model.grad {
		o.model.grad[i] = 0
	}
}

func (o *SGD) Step() error {
	for i, g := range o.model.grad {
		o.model.Logits[i] -= o.LearningRate * g
	}
	return nil
}

// PlateauScheduler shrinks the learning rate when the epoch mean loss
// stops improving.
type PlateauScheduler struct {
	optimizer *SGD
	factor    float64
	patience  int
	threshold float64
	best      float64
	wait      int
}

func NewPlateauScheduler(optimizer *SGD, factor float64, patience int) *PlateauScheduler {
	return &PlateauScheduler{
		optimizer: optimizer,
		factor:    factor,
		patience:  patience,
		threshold: 1e-4,
		best:      math.Inf(1),
	}
}

func (s *PlateauScheduler) Step(meanLoss float64) {
	if meanLoss < s.best-s.threshold {
		s.best = meanLoss
		s.wait = 0
		return
	}
	s.wait++
	if s.wait > s.patience {
		s.optimizer.LearningRate *= s.factor
		s.wait = 0
	}
}
