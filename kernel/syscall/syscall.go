// Package syscall implements the user/kernel trust boundary: the dispatcher
// that decodes an incoming system call from its register snapshot, the
// validation of every user-supplied pointer, and the handlers that bridge to
// the filesystem, console and process-management subsystems.
//
// The package trusts nothing the caller hands it. Pointers are validated
// before the first dereference, descriptor numbers are resolved through the
// per-process table, and anything that fails validation terminates the
// calling process instead of returning an error it could ignore.
package syscall

import (
	"burrow/device/console"
	"burrow/kernel/cpu"
	"burrow/kernel/fs"
	"burrow/kernel/gate"
	"burrow/kernel/mm/uaccess"
	"burrow/kernel/proc"
)

var (
	// Collaborator subsystems, installed by Init.
	filesystem fs.FileSystem
	procMgr    proc.Manager
	cons       console.Device

	// Seams for the arch externs used by halt.
	portWriteWordFn = cpu.PortWriteWord
	haltFn          = cpu.Halt
)

// Init wires the syscall layer to its collaborators, installs the validation
// failure path and programs the fast syscall entry point. It must run once
// during kernel bring-up, after the console has been attached.
func Init(fsImpl fs.FileSystem, mgr proc.Manager, con console.Device) {
	filesystem = fsImpl
	procMgr = mgr
	cons = con

	// A pointer that fails validation kills the offending process on the
	// spot; by definition the caller cannot be trusted to act on a
	// returned error.
	uaccess.SetKillFn(sysExit)

	gate.InstallSyscallEntry(Dispatch)
}
