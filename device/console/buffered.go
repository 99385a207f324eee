package console

import (
	"io"

	"burrow/device"
	"burrow/kernel"
	"burrow/kernel/sync"
)

// Buffered is an in-memory console device. Output accumulates in a byte
// buffer under a spinlock so concurrent writers never interleave; input is a
// queue fed by PushInput with a semaphore tracking available bytes, so
// ReadByte blocks exactly like a keyboard read would.
type Buffered struct {
	outLock sync.Spinlock
	out     []byte

	inLock sync.Spinlock
	in     []byte
	avail  *sync.Semaphore
}

// NewBuffered returns an initialized in-memory console.
func NewBuffered() *Buffered {
	return &Buffered{avail: sync.NewSemaphore(0)}
}

// Write appends p to the console output. The whole buffer is emitted under
// the output lock, keeping the write atomic with respect to other writers.
func (c *Buffered) Write(p []byte) (int, error) {
	c.outLock.Acquire()
	c.out = append(c.out, p...)
	c.outLock.Release()
	return len(p), nil
}

// ReadByte returns the next queued input byte, blocking until one arrives.
func (c *Buffered) ReadByte() byte {
	c.avail.Down()

	c.inLock.Acquire()
	b := c.in[0]
	c.in = c.in[1:]
	c.inLock.Release()

	return b
}

// PushInput queues p as pending console input, waking blocked readers.
func (c *Buffered) PushInput(p []byte) {
	c.inLock.Acquire()
	c.in = append(c.in, p...)
	c.inLock.Release()

	for range p {
		c.avail.Up()
	}
}

// Output returns a copy of everything written to the console so far.
func (c *Buffered) Output() []byte {
	c.outLock.Acquire()
	snapshot := append([]byte(nil), c.out...)
	c.outLock.Release()
	return snapshot
}

// DriverName returns the name of the driver.
func (c *Buffered) DriverName() string { return "console-buffered" }

// DriverVersion returns the driver version.
func (c *Buffered) DriverVersion() (uint16, uint16, uint16) { return 0, 1, 0 }

// DriverInit initializes the device driver.
func (c *Buffered) DriverInit(_ io.Writer) *kernel.Error { return nil }

// probeForBuffered always succeeds; the in-memory console is the fallback
// device used when no hardware console responds.
func probeForBuffered() device.Driver {
	return NewBuffered()
}
