package models

import (
	"summarizer/internal/device"
	"summarizer/internal/encoding"
)

// Output is the result of one forward pass.
type Output interface {
	Loss() float64
	Backward() error
}

type Model interface {
	Forward(batch encoding.BatchEncoding) (Output, error)
	Train(on bool)
	To(dev device.Device)
	GetName() string
	GetParams() map[string]any
}

type Optimizer interface {
	ZeroGrad()
	Step() error
}

// Scheduler is stepped once per epoch with the epoch's mean loss.
type Scheduler interface {
	Step(meanLoss float64)
}

type BaseModel struct {
	Name   string
	Params map[string]any
}

func (bm *BaseModel) GetName() string {
	return bm.Name
}

func (bm *BaseModel) GetParams() map[string]any {
	return bm.Params
}
