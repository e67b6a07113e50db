// Package catalog enumerates the accelerator devices and accelerator
// classes a service may request. Both sets are closed and fixed at build
// time; anything outside them is rejected at construction.
package catalog

import (
	"fmt"

	"github.com/okik-ml/okik/pkg/errors"
)

// AcceleratorType is the coarse class of an accelerator.
type AcceleratorType string

const (
	TypeCUDA AcceleratorType = "cuda"
	TypeCPU  AcceleratorType = "cpu"
)

var acceleratorTypes = []AcceleratorType{
	TypeCUDA,
	TypeCPU,
}

// AcceleratorDevice names a physical accelerator model.
type AcceleratorDevice string

const (
	MI300X         AcceleratorDevice = "MI300X"
	MI250X         AcceleratorDevice = "MI250X"
	HGX_A100_80GB  AcceleratorDevice = "HGX A100 80GB SXM5"
	TX_1080_80GB   AcceleratorDevice = "TX 1080 80GB PCIe"
	TX_L40         AcceleratorDevice = "TX L40"
	TX_L40S        AcceleratorDevice = "TX L40S"
	RTX_6000_Ada   AcceleratorDevice = "RTX 6000 Ada"
	RTX_4090       AcceleratorDevice = "RTX 4090"
	TX_L4          AcceleratorDevice = "TX L4"
	RTX_4000_Ada   AcceleratorDevice = "RTX 4000 Ada"
	A100_80GB      AcceleratorDevice = "A100 80GB"
	A100_SXM4_80GB AcceleratorDevice = "A100 SXM4 80GB"
	A40            AcceleratorDevice = "A40"
	RTX_A6000      AcceleratorDevice = "RTX A6000"
	RTX_A5500      AcceleratorDevice = "RTX A5500"
	RTX_A4000      AcceleratorDevice = "RTX A4000"
)

var acceleratorDevices = []AcceleratorDevice{
	MI300X,
	MI250X,
	HGX_A100_80GB,
	TX_1080_80GB,
	TX_L40,
	TX_L40S,
	RTX_6000_Ada,
	RTX_4090,
	TX_L4,
	RTX_4000_Ada,
	A100_80GB,
	A100_SXM4_80GB,
	A40,
	RTX_A6000,
	RTX_A5500,
	RTX_A4000,
}

var deviceSet = func() map[AcceleratorDevice]bool {
	m := make(map[AcceleratorDevice]bool, len(acceleratorDevices))
	for _, d := range acceleratorDevices {
		m[d] = true
	}
	return m
}()

// ParseType validates s against the closed set of accelerator types.
func ParseType(s string) (AcceleratorType, error) {
	for _, t := range acceleratorTypes {
		if s == string(t) {
			return t, nil
		}
	}
	return "", errors.NewValidationError("type", fmt.Sprintf("unknown accelerator type %q", s))
}

// ParseDevice validates s against the closed set of accelerator devices.
func ParseDevice(s string) (AcceleratorDevice, error) {
	if deviceSet[AcceleratorDevice(s)] {
		return AcceleratorDevice(s), nil
	}
	return "", errors.NewValidationError("device", fmt.Sprintf("unknown accelerator device %q", s))
}

// Types returns all accelerator types, in declaration order.
func Types() []AcceleratorType {
	out := make([]AcceleratorType, len(acceleratorTypes))
	copy(out, acceleratorTypes)
	return out
}

// Devices returns all accelerator devices, in declaration order.
func Devices() []AcceleratorDevice {
	out := make([]AcceleratorDevice, len(acceleratorDevices))
	copy(out, acceleratorDevices)
	return out
}

// IsGPU reports whether the type maps to a GPU-class device request.
func (t AcceleratorType) IsGPU() bool {
	return t == TypeCUDA
}

func (t AcceleratorType) String() string { return string(t) }

func (d AcceleratorDevice) String() string { return string(d) }
