// Package console provides the console device consumed by the syscall
// boundary: a blocking byte-input source and an output sink whose writes are
// atomic with respect to other console writers.
package console

import (
	"io"

	"burrow/device"
)

// Device is implemented by console devices. Write must emit the whole buffer
// without interleaving output from concurrent writers; ReadByte blocks until
// an input byte becomes available.
type Device interface {
	io.Writer

	// ReadByte returns the next byte of console input, blocking until
	// one arrives.
	ReadByte() byte
}

// Probes returns a slice of device.ProbeFn that can be used to detect the
// console devices known to this package.
func Probes() []device.ProbeFn {
	return []device.ProbeFn{
		probeForBuffered,
	}
}
