package training

import (
	"fmt"
	"io"
	"time"

	"summarizer/internal/device"
	"summarizer/internal/encoding"
	"summarizer/internal/models"
)

// Dataset yields encoded batches one traversal at a time. Reset starts a
// traversal, Next returns io.EOF when it is complete.
type Dataset interface {
	Len() int
	Reset()
	Next() (encoding.BatchEncoding, error)
}

// Loop drives a model through epochs of a dataset. Any error while
// processing a batch terminates the run: the error is reported, nothing
// propagates, and the mean losses of fully completed epochs are
// returned.
type Loop struct {
	model     models.Model
	dataset   Dataset
	epochs    int
	optimizer models.Optimizer
	scheduler models.Scheduler
	dev       device.Device
	reporter  Reporter
}

func NewLoop(
	model models.Model, dataset Dataset, epochs int,
	optimizer models.Optimizer, scheduler models.Scheduler,
	dev device.Device, reporter Reporter,
) (*Loop, error) {
	if model == nil {
		return nil, fmt.Errorf("loop requires a model")
	}
	if dataset == nil {
		return nil, fmt.Errorf("loop requires a dataset")
	}
	if dataset.Len() == 0 {
		return nil, fmt.Errorf("loop requires a non-empty dataset")
	}
	if optimizer == nil {
		return nil, fmt.Errorf("loop requires an optimizer")
	}
	if epochs <= 0 {
		return nil, fmt.Errorf("epochs must be positive, got %d", epochs)
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Loop{
		model:     model,
		dataset:   dataset,
		epochs:    epochs,
		optimizer: optimizer,
		scheduler: scheduler,
		dev:       dev,
		reporter:  reporter,
	}, nil
}

// Run returns one mean loss per fully completed epoch, in order.
func (l *Loop) Run() []float64 {
	l.model.To(l.dev)
	l.model.Train(true)

	numBatches := l.dataset.Len()
	epochLosses := []float64{}

	for epoch := 0; epoch < l.epochs; epoch++ {
		epochTime := 0.0
		epochLoss := 0.0

		l.dataset.Reset()
		for batch := 0; ; batch++ {
			enc, err := l.dataset.Next()
			if err == io.EOF {
				break
			}

			var loss, elapsed float64
			if err == nil {
				loss, elapsed, err = l.trainBatch(enc)
			}
			if err != nil {
				l.reporter.Aborted(err)
				return epochLosses
			}

			epochTime += elapsed
			epochLoss += loss

			l.reporter.Progress(Progress{
				Epoch:       epoch + 1,
				Epochs:      l.epochs,
				Batch:       batch + 1,
				Batches:     numBatches,
				BatchTimeMs: elapsed,
				Loss:        loss,
				Remaining:   estimateRemaining(epochTime, numBatches, l.epochs, epoch, batch),
			})
		}

		meanTime := epochTime / float64(numBatches)
		meanLoss := epochLoss / float64(numBatches)
		epochLosses = append(epochLosses, meanLoss)

		if l.scheduler != nil {
			l.scheduler.Step(meanLoss)
		}

		l.reporter.EpochDone(EpochSummary{
			Epoch:      epoch + 1,
			Epochs:     l.epochs,
			MeanTimeMs: meanTime,
			MeanLoss:   meanLoss,
		})
	}

	return epochLosses
}

// trainBatch runs forward, backward and one optimizer step, returning
// the loss and the wall-clock milliseconds of the step.
func (l *Loop) trainBatch(enc encoding.BatchEncoding) (float64, float64, error) {
	start := time.Now()

	output, err := l.model.Forward(enc)
	if err != nil {
		return 0, 0, err
	}
	l.optimizer.ZeroGrad()
	if err := output.Backward(); err != nil {
		return 0, 0, err
	}
	if err := l.optimizer.Step(); err != nil {
		return 0, 0, err
	}

	elapsed := float64(time.Since(start).Nanoseconds()) / 1e6
	return output.Loss(), elapsed, nil
}

// estimateRemaining extrapolates the running mean time per batch across
// the remaining batches and epochs.
func estimateRemaining(epochTimeMs float64, numBatches, epochs, epoch, batch int) Remaining {
	ms := epochTimeMs * (float64(numBatches*(epochs-epoch))/float64(batch+1) - 1)
	if ms < 0 {
		ms = 0
	}

	seconds := int64(ms) / 1000
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24

	return Remaining{
		Days:    days,
		Hours:   hours % 24,
		Minutes: minutes % 60,
		Seconds: seconds % 60,
	}
}
