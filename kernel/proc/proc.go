// Package proc defines the kernel's view of a user process at the syscall
// boundary: its identity, its address space descriptor, its file descriptor
// table and the exit-status record it shares with its parent. Scheduling and
// process creation live in the external process-management subsystem and are
// consumed through the Manager interface.
package proc

import (
	"burrow/kernel/gate"
	"burrow/kernel/mm"
)

// ID names a process. IDs are assigned by the process-management subsystem;
// negative values never name a real process.
type ID int32

// Process groups the per-process state the syscall boundary operates on. One
// Process exists per user process and lives for the process's lifetime.
type Process struct {
	ID   ID
	Name string

	// AddrSpace is the address-space descriptor installed by the memory
	// subsystem; the syscall layer only reads it.
	AddrSpace mm.AddressSpace

	// FDs is the process-private file descriptor table. It needs no
	// locking: a process executes at most one system call at a time.
	FDs *FDTable

	// Wait is the exit-status record shared with the parent.
	Wait *WaitStatus

	// UserFrame receives a snapshot of the caller's full register state
	// at fork time. The child begins execution by resuming exactly this
	// snapshot, with RAX forced to zero so the clone observes a 0 result
	// from the fork call site.
	UserFrame gate.Registers
}

// currentFn resolves the process executing the current system call. The
// scheduler installs it during bring-up.
var currentFn func() *Process

// SetCurrentFn registers the scheduler's current-process accessor.
func SetCurrentFn(fn func() *Process) { currentFn = fn }

// Current returns the process on whose behalf the kernel is currently
// executing.
func Current() *Process { return currentFn() }

// Manager is the narrow interface to the external process-management
// subsystem consumed by the lifecycle system calls.
type Manager interface {
	// Fork creates a child of parent with the given name that begins
	// execution by resuming parent.UserFrame. It returns the child's ID,
	// or ok=false if the child could not be created.
	Fork(name string, parent *Process) (id ID, ok bool)

	// Exec replaces the current process image with the executable named
	// by cmdLine. On success Exec does not return; on failure it returns
	// a negative value.
	Exec(cmdLine []byte) int

	// Wait blocks until the child named by id exits and returns its exit
	// status, or -1 if id does not name a waitable child of the caller.
	Wait(id ID) int

	// Exit tears down p after its syscall-level state has been released.
	// Exit does not return.
	Exit(p *Process)
}
