// Package cpu exports the arch-specific primitives used by the syscall entry
// layer. The functions without bodies are implemented in assembly and linked
// into the final kernel image; callers that need to be testable route their
// calls through overridable function variables instead of calling the externs
// directly.
package cpu

// WriteMSR writes val to the model-specific register with the given address.
func WriteMSR(msr uint32, val uint64)

// ReadMSR returns the value stored in the model-specific register with the
// given address.
func ReadMSR(msr uint32) uint64

// Halt stops instruction execution until the next interrupt arrives.
func Halt()

// EnableInterrupts enables interrupt handling.
func EnableInterrupts()

// DisableInterrupts disables interrupt handling.
func DisableInterrupts()

// PortWriteByte writes a uint8 value to the requested I/O port.
func PortWriteByte(port uint16, val uint8)

// PortWriteWord writes a uint16 value to the requested I/O port.
func PortWriteWord(port uint16, val uint16)

// PortReadByte reads a uint8 value from the requested I/O port.
func PortReadByte(port uint16) uint8
