package syscall

import (
	"burrow/kernel/kfmt"
	"burrow/kernel/proc"
)

// qemu's debug exit device; writing the shutdown code here powers the
// machine down.
const (
	powerOffPort = uint16(0x604)
	powerOffCode = uint16(0x2000)
)

// sysHalt powers down the machine. It never returns.
func sysHalt() {
	portWriteWordFn(powerOffPort, powerOffCode)
	for {
		haltFn()
	}
}

// sysExit terminates the calling process with the given status. The status
// is published to the shared wait-status record and the load signal is
// raised unconditionally so a parent still blocked on this child's fork
// outcome is released. Every termination, voluntary or forced, announces
// itself on the console before the process disappears. sysExit never
// returns.
func sysExit(status int) {
	cur := proc.Current()

	if w := cur.Wait; w != nil {
		w.SetStatus(status)
		w.NotifyLoaded()
	}

	kfmt.Printf("%s: exit(%d)\n", cur.Name, status)

	cur.FDs.CloseAll()

	if w := cur.Wait; w != nil {
		w.NotifyExited()
		if w.Release() {
			cur.Wait = nil
		}
	}

	procMgr.Exit(cur)
}

// sysFork creates a clone of the calling process named by namePtr. The
// dispatcher has already snapshotted the caller's registers into the process
// record; the process manager starts the child by resuming that snapshot.
// Returns the child's id, or -1 if the child could not be created.
func sysFork(namePtr uintptr) int64 {
	cur := proc.Current()
	name := string(userString(cur, namePtr))

	id, ok := procMgr.Fork(name, cur)
	if !ok {
		return -1
	}
	return int64(id)
}

// sysExec replaces the current process image with the executable named by
// cmdPtr. The command line is copied into a kernel buffer first: replacing
// the address space would invalidate the caller's pointer mid-operation. On
// success this never returns; the dispatcher turns a negative result into a
// forced exit(-1).
func sysExec(cmdPtr uintptr) int {
	cur := proc.Current()
	cmdLine := userString(cur, cmdPtr)

	return procMgr.Exec(cmdLine)
}

// sysWait blocks until the child named by id exits and returns its exit
// status, or -1 if id is not a waitable child of the caller.
func sysWait(id proc.ID) int {
	return procMgr.Wait(id)
}
