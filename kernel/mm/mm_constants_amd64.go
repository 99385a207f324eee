package mm

const (
	// PageShift is equal to log2(PageSize). This constant is used when
	// we need to convert an address to a page number (shift right by
	// PageShift) and vice-versa.
	PageShift = uintptr(12)

	// PageSize defines the system's page size in bytes.
	PageSize = uintptr(1 << PageShift)

	// KernelBase marks the start of the kernel half of the virtual
	// address space. Virtual addresses below KernelBase belong to user
	// space; everything at or above it is only reachable in kernel mode.
	KernelBase = uintptr(0x8004000000)
)
