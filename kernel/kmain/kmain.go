// Package kmain contains the kernel bring-up sequence that runs after the
// rt0 assembly code has set up a minimal Go execution environment.
package kmain

import (
	"burrow/device"
	"burrow/device/console"
	"burrow/kernel"
	"burrow/kernel/bootargs"
	"burrow/kernel/fs"
	"burrow/kernel/kfmt"
	"burrow/kernel/proc"
	"burrow/kernel/syscall"
)

var (
	errKmainReturned = &kernel.Error{Module: "kmain", Message: "Kmain returned"}
	errNoConsole     = &kernel.Error{Module: "kmain", Message: "no console device detected"}
	errInitFailed    = &kernel.Error{Module: "kmain", Message: "initial program could not be started"}

	// panicFn and initSyscallFn are mocked by tests; arming the syscall
	// entry point programs MSRs and cannot run hosted.
	panicFn       = kfmt.Panic
	initSyscallFn = syscall.Init
)

func init() {
	for _, probeFn := range console.Probes() {
		device.RegisterProbe(probeFn)
	}
}

// Kmain is invoked by the rt0 initialization code once the CPU is able to
// execute Go code. It parses the boot command line, detects a console,
// applies the per-process resource tunables, arms the system call entry
// point and finally hands control to the initial user program named by the
// init= argument (default "init").
//
// Kmain is not expected to return. If it does, the machine is halted.
//
//go:noinline
func Kmain(cmdLine string, fsImpl fs.FileSystem, mgr proc.Manager) {
	bootargs.Set(cmdLine)

	cons := detectConsole()
	if cons == nil {
		panicFn(errNoConsole)
		return
	}
	kfmt.SetOutputSink(cons)

	proc.SetFDLimits(
		int32(bootargs.GetUint32("openlimit", proc.DefaultOpenLimit)),
		int32(bootargs.GetUint32("fdlimit", proc.DefaultFDLimit)),
	)

	initSyscallFn(fsImpl, mgr, cons)

	initCmd, ok := bootargs.Get("init")
	if !ok {
		initCmd = "init"
	}
	kfmt.Printf("starting %s\n", initCmd)

	// On success Exec replaces this execution context and never returns.
	if mgr.Exec([]byte(initCmd)) < 0 {
		panicFn(errInitFailed)
		return
	}

	panicFn(errKmainReturned)
}

// detectConsole runs the registered device probes and returns the first
// console that initializes successfully, or nil if none does. Probe output
// lands in the early print buffer and is replayed once the console becomes
// the output sink.
func detectConsole() console.Device {
	for _, probeFn := range device.Probes() {
		drv := probeFn()
		if drv == nil {
			continue
		}

		major, minor, patch := drv.DriverVersion()
		kfmt.Printf("[hal] %s(%d.%d.%d): ", drv.DriverName(), major, minor, patch)

		if err := drv.DriverInit(kfmt.GetOutputSink()); err != nil {
			kfmt.Printf("init failed: %s\n", err.Message)
			continue
		}
		kfmt.Printf("initialized\n")

		if cons, ok := drv.(console.Device); ok {
			return cons
		}
	}

	return nil
}
