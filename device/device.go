// Package device defines the driver abstraction implemented by all device
// drivers together with the probe registry used during hardware detection.
package device

import (
	"io"

	"burrow/kernel"
)

// Driver is an interface implemented by all drivers.
type Driver interface {
	// DriverName returns the name of the driver.
	DriverName() string

	// DriverVersion returns the driver version.
	DriverVersion() (major uint16, minor uint16, patch uint16)

	// DriverInit initializes the device driver. If the driver init code
	// needs to log some output, it can use the supplied io.Writer in
	// conjunction with a call to kfmt.Fprintf.
	DriverInit(io.Writer) *kernel.Error
}

// ProbeFn is a function that scans for the presence of a particular piece of
// hardware and returns a driver for it, or nil when the hardware is absent.
type ProbeFn func() Driver

var registeredProbes []ProbeFn

// RegisterProbe adds a probe function to the registry scanned during
// hardware detection. Probes run in registration order.
func RegisterProbe(probe ProbeFn) {
	registeredProbes = append(registeredProbes, probe)
}

// Probes returns the list of registered probe functions.
func Probes() []ProbeFn {
	return registeredProbes
}
