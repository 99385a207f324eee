package syscall

import (
	"burrow/kernel/gate"
	"burrow/kernel/kfmt"
	"burrow/kernel/proc"
)

// Dispatch decodes the system call described by regs and invokes its
// handler. The call number arrives in RAX and the arguments in RDI, RSI,
// RDX, R10, R8 and R9, reinterpreted per call as integers, pointers or
// counts; the dispatcher itself performs no range checking beyond the call
// number. For value-returning calls the result is stored back into RAX.
//
// A call number that matches no recognized operation is a security
// violation: the register snapshot is dumped for diagnosis and the process
// is terminated as if it had requested exit(-1) itself.
func Dispatch(regs *gate.Registers) {
	switch Number(regs.RAX) {
	case Halt:
		sysHalt()
	case Exit:
		sysExit(int(int32(regs.RDI)))
	case Fork:
		// The child resumes from a snapshot of the caller's registers
		// taken before anything else mutates them; forcing RAX to 0
		// is what makes the same call site report success-as-child.
		cur := proc.Current()
		cur.UserFrame = *regs
		cur.UserFrame.RAX = 0
		regs.RAX = uint64(sysFork(uintptr(regs.RDI)))
	case Exec:
		// Unlike every other handler, a failed exec is fatal to the
		// process rather than a returned error code.
		if sysExec(uintptr(regs.RDI)) < 0 {
			sysExit(-1)
		}
	case Wait:
		regs.RAX = uint64(int64(sysWait(proc.ID(regs.RDI))))
	case Create:
		regs.RAX = boolResult(sysCreate(uintptr(regs.RDI), uint32(regs.RSI)))
	case Remove:
		regs.RAX = boolResult(sysRemove(uintptr(regs.RDI)))
	case Open:
		regs.RAX = uint64(int64(sysOpen(uintptr(regs.RDI))))
	case Filesize:
		regs.RAX = uint64(int64(sysFilesize(int32(regs.RDI))))
	case Read:
		regs.RAX = uint64(int64(sysRead(int32(regs.RDI), uintptr(regs.RSI), uint(regs.RDX))))
	case Write:
		regs.RAX = uint64(int64(sysWrite(int32(regs.RDI), uintptr(regs.RSI), uint(regs.RDX))))
	case Seek:
		sysSeek(int32(regs.RDI), uint32(regs.RSI))
	case Tell:
		regs.RAX = sysTell(int32(regs.RDI))
	case Close:
		sysClose(int32(regs.RDI))
	default:
		regs.DumpTo(kfmt.GetOutputSink())
		sysExit(-1)
	}
}

// boolResult maps a boolean handler result onto the return-value slot.
func boolResult(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}
