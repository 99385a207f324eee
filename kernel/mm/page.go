// Package mm defines the memory value types and the address-space interface
// that the user/kernel boundary consumes. The page tables themselves are
// owned by the virtual memory subsystem; this package only provides the
// vocabulary for talking about pages, frames and translations.
package mm

import "math"

// Frame describes a physical memory page index.
type Frame uintptr

// InvalidFrame is returned by translation lookups for unmapped addresses.
const InvalidFrame = Frame(math.MaxUint64)

// Valid returns true if this is a valid frame.
func (f Frame) Valid() bool {
	return f != InvalidFrame
}

// Address returns the physical memory address pointed to by this Frame.
func (f Frame) Address() uintptr {
	return uintptr(f << PageShift)
}

// Page describes a virtual memory page index.
type Page uintptr

// Address returns the virtual memory address pointed to by this Page.
func (p Page) Address() uintptr {
	return uintptr(p << PageShift)
}

// PageFromAddress returns the Page that contains virtAddr. Addresses that are
// not page-aligned are rounded down to the page that contains them.
func PageFromAddress(virtAddr uintptr) Page {
	return Page(virtAddr >> PageShift)
}

// IsUserAddr returns true if virtAddr falls inside the user-accessible half
// of the virtual address space.
func IsUserAddr(virtAddr uintptr) bool {
	return virtAddr < KernelBase
}
