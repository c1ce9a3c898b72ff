package device

import (
	"os"
	"runtime"
)

type Device string

const (
	CUDA Device = "cuda"
	MPS  Device = "mps"
	CPU  Device = "cpu"
)

// Availability reports which accelerators the process can use.
type Availability interface {
	CUDA() bool
	MPS() bool
}

// Select picks a device in the fixed preference order cuda > mps > cpu.
// Callers may rely on this order.
func Select(avail Availability) Device {
	if avail != nil && avail.CUDA() {
		return CUDA
	}
	if avail != nil && avail.MPS() {
		return MPS
	}
	return CPU
}

// HostAvailability probes the running host: CUDA when visible devices
// are configured, MPS on Apple silicon.
type HostAvailability struct{}

func (HostAvailability) CUDA() bool {
	devices := os.Getenv("CUDA_VISIBLE_DEVICES")
	return devices != "" && devices != "-1"
}

func (HostAvailability) MPS() bool {
	return runtime.GOOS == "darwin" && runtime.GOARCH == "arm64"
}

// Default selects a device for the running host.
func Default() Device {
	return Select(HostAvailability{})
}
