// Package uaccess implements the validation gate that every user-supplied
// pointer must pass before kernel code dereferences it. Validation failures
// are security violations: the calling process is terminated on the spot with
// a fixed negative status and control never returns to the caller, so
// handlers past a Check call may rely on the address being usable.
package uaccess

import "burrow/kernel/mm"

// killStatus is the exit status forced on a process that hands the kernel an
// invalid pointer.
const killStatus = -1

// killFn terminates the calling process and never returns. It is installed
// by the syscall layer during bring-up.
var killFn func(status int)

// SetKillFn registers the process-termination function invoked when
// validation fails. The registered function must not return.
func SetKillFn(fn func(status int)) { killFn = fn }

// Check validates a single user-supplied pointer against the given address
// space. A pointer is rejected if it is nil, does not fall in the user half
// of the address space, or its page has no mapping installed. Rejection
// terminates the calling process.
func Check(as mm.AddressSpace, virtAddr uintptr) {
	if !ok(as, virtAddr) {
		killFn(killStatus)
	}
}

// CheckRange validates that every page touched by [virtAddr, virtAddr+size)
// is mapped user memory. A buffer whose start is mapped but whose tail
// crosses into an unmapped page is rejected just like a bad pointer, instead
// of faulting mid-operation.
func CheckRange(as mm.AddressSpace, virtAddr, size uintptr) {
	if !ok(as, virtAddr) {
		killFn(killStatus)
		return
	}
	if size == 0 {
		return
	}

	last := virtAddr + size - 1
	if last < virtAddr {
		// The range wraps around the top of the address space.
		killFn(killStatus)
		return
	}

	for page := mm.PageFromAddress(virtAddr) + 1; page <= mm.PageFromAddress(last); page++ {
		if !ok(as, page.Address()) {
			killFn(killStatus)
			return
		}
	}
}

// ok reports whether a single address passes validation.
func ok(as mm.AddressSpace, virtAddr uintptr) bool {
	if virtAddr == 0 || !mm.IsUserAddr(virtAddr) {
		return false
	}
	_, mapped := as.Translate(virtAddr)
	return mapped
}
