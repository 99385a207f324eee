package gate

import "burrow/kernel/cpu"

// Segment selectors established by the GDT setup code. The STAR layout
// requires user CS = base+16 and user SS = base+8, hence the base below is
// derived from SelUserCode.
const (
	SelKernelCode = 0x08
	SelKernelData = 0x10
	SelUserData   = 0x1b
	SelUserCode   = 0x23
)

// Model-specific registers controlling the SYSCALL instruction.
const (
	msrSTAR        = uint32(0xc0000081) // segment selector bases
	msrLSTAR       = uint32(0xc0000082) // long mode SYSCALL target
	msrSyscallMask = uint32(0xc0000084) // RFLAGS bits cleared on entry
)

// RFLAGS bits masked while the syscall entry trampoline runs.
const (
	rflagTF   = uint64(1 << 8)
	rflagIF   = uint64(1 << 9)
	rflagDF   = uint64(1 << 10)
	rflagIOPL = uint64(3 << 12)
	rflagNT   = uint64(1 << 14)
	rflagAC   = uint64(1 << 18)
)

var (
	// syscallHandler is invoked by the trampoline with the register
	// snapshot built on the kernel stack.
	syscallHandler func(*Registers)

	// Overridable seams for the arch externs so the entry programming is
	// testable in user mode.
	writeMSRFn  = cpu.WriteMSR
	entryAddrFn = syscallEntryAddr
)

// InstallSyscallEntry registers handler as the kernel's syscall dispatcher
// and programs the MSRs that make the SYSCALL instruction vector to the
// assembly entry trampoline.
//
// The trampoline must not service any interrupts until it has switched from
// the caller's stack to the kernel stack, so the mask MSR clears IF together
// with the remaining flags user code could abuse to change the execution
// environment of the first kernel instructions.
func InstallSyscallEntry(handler func(*Registers)) {
	syscallHandler = handler

	writeMSRFn(msrSTAR, (uint64(SelUserCode)-0x10)<<48|uint64(SelKernelCode)<<32)
	writeMSRFn(msrLSTAR, uint64(entryAddrFn()))
	writeMSRFn(msrSyscallMask, rflagIF|rflagTF|rflagDF|rflagIOPL|rflagAC|rflagNT)
}

// dispatchSyscall is the Go landing point for the assembly trampoline. Any
// mutation of regs (in particular RAX) is propagated back to the interrupted
// context when the trampoline restores the snapshot.
func dispatchSyscall(regs *Registers) {
	if syscallHandler != nil {
		syscallHandler(regs)
	}
}

// syscallEntryAddr returns the address of the assembly trampoline installed
// in LSTAR. The trampoline swaps to the kernel stack, spills the full
// register file into a Registers value and calls dispatchSyscall.
func syscallEntryAddr() uintptr
