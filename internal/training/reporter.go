package training

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

const clearWidth = 120

type Remaining struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// String renders the estimate as "1d 2h 3m 4s", omitting higher units
// that are zero.
func (r Remaining) String() string {
	out := fmt.Sprintf("%ds", r.Seconds)
	if r.Minutes > 0 || r.Hours > 0 || r.Days > 0 {
		out = fmt.Sprintf("%dm %s", r.Minutes, out)
	}
	if r.Hours > 0 || r.Days > 0 {
		out = fmt.Sprintf("%dh %s", r.Hours, out)
	}
	if r.Days > 0 {
		out = fmt.Sprintf("%dd %s", r.Days, out)
	}
	return out
}

type Progress struct {
	Epoch       int
	Epochs      int
	Batch       int
	Batches     int
	BatchTimeMs float64
	Loss        float64
	Remaining   Remaining
}

type EpochSummary struct {
	Epoch      int
	Epochs     int
	MeanTimeMs float64
	MeanLoss   float64
}

// Reporter receives structured progress from a training run.
type Reporter interface {
	Progress(p Progress)
	EpochDone(s EpochSummary)
	Aborted(err error)
}

// NopReporter discards all progress.
type NopReporter struct{}

func (NopReporter) Progress(Progress)      {}
func (NopReporter) EpochDone(EpochSummary) {}
func (NopReporter) Aborted(error)          {}

// ConsoleReporter writes a single overwritten progress line per batch
// and a summary line per epoch.
type ConsoleReporter struct {
	out       io.Writer
	floatPrec int32

	cyan func(a ...any) string
	red  func(a ...any) string
}

func NewConsoleReporter(floatPrec int) *ConsoleReporter {
	return &ConsoleReporter{
		out:       os.Stdout,
		floatPrec: int32(floatPrec),
		cyan:      color.New(color.FgCyan).SprintFunc(),
		red:       color.New(color.FgRed).SprintFunc(),
	}
}

func (r *ConsoleReporter) round(value float64) string {
	return decimal.NewFromFloat(value).Round(r.floatPrec).String()
}

func (r *ConsoleReporter) clearLine() {
	fmt.Fprintf(r.out, "\r%s\r", strings.Repeat(" ", clearWidth))
}

func (r *ConsoleReporter) Progress(p Progress) {
	r.clearLine()
	fmt.Fprintf(r.out,
		"Epoch: %d/%d Batch: %d/%d Time: %s ms/batch Loss: %s Time remaining: %s",
		p.Epoch, p.Epochs, p.Batch, p.Batches,
		r.round(p.BatchTimeMs), r.round(p.Loss), p.Remaining)
}

func (r *ConsoleReporter) EpochDone(s EpochSummary) {
	r.clearLine()
	fmt.Fprintf(r.out, "Epoch: %d/%d Average time: %s ms/batch Average loss: %s\n",
		s.Epoch, s.Epochs, r.round(s.MeanTimeMs), r.round(s.MeanLoss))
}

func (r *ConsoleReporter) Aborted(err error) {
	fmt.Fprintf(r.out, "\n%s Encountered error of type %T: %v\nTraining terminated\n",
		r.red("✗"), err, err)
}
