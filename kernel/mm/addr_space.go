package mm

// AddressSpace is the per-process virtual address space descriptor installed
// by the virtual memory subsystem. The syscall boundary only ever reads it:
// Translate resolves whether a page currently has a mapping, while CopyIn and
// CopyOut move bytes across the user/kernel boundary once the corresponding
// addresses have been validated.
type AddressSpace interface {
	// Translate returns the physical frame backing the page that contains
	// virtAddr, or (InvalidFrame, false) if no mapping is installed.
	Translate(virtAddr uintptr) (Frame, bool)

	// CopyIn copies len(p) bytes from user memory starting at virtAddr
	// into p and returns the number of bytes copied.
	CopyIn(virtAddr uintptr, p []byte) int

	// CopyOut copies len(p) bytes from p into user memory starting at
	// virtAddr and returns the number of bytes copied.
	CopyOut(virtAddr uintptr, p []byte) int
}
