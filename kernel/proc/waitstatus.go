package proc

import (
	"sync/atomic"

	"burrow/kernel/sync"
)

// WaitStatus is the exit-status record shared by exactly one parent/child
// pair. It is allocated at fork time, carries the child's exit status across
// the two synchronization points of the lifecycle (image load finished,
// process exited) and is released by whichever party lets go of it last.
type WaitStatus struct {
	status int32

	load   *sync.Semaphore
	exited *sync.Semaphore

	// refs counts the two parties still holding the record.
	refs int32
}

// NewWaitStatus allocates a record jointly referenced by a parent and the
// child it just created.
func NewWaitStatus() *WaitStatus {
	return &WaitStatus{
		load:   sync.NewSemaphore(0),
		exited: sync.NewSemaphore(0),
		refs:   2,
	}
}

// SetStatus records the child's exit status.
func (w *WaitStatus) SetStatus(status int) {
	atomic.StoreInt32(&w.status, int32(status))
}

// Status returns the recorded exit status.
func (w *WaitStatus) Status() int {
	return int(atomic.LoadInt32(&w.status))
}

// NotifyLoaded signals that the child's program image finished loading, for
// better or worse. exit raises this signal too, so a parent blocked on the
// load outcome is never left hanging when the child dies before reporting.
func (w *WaitStatus) NotifyLoaded() { w.load.Up() }

// WaitLoaded blocks the parent until the child's load outcome is known.
func (w *WaitStatus) WaitLoaded() { w.load.Down() }

// NotifyExited signals that the child has exited and its status is final.
func (w *WaitStatus) NotifyExited() { w.exited.Up() }

// WaitExited blocks the parent until the child has exited.
func (w *WaitStatus) WaitExited() { w.exited.Down() }

// Release drops one party's reference and reports whether the caller was the
// longest holder and therefore responsible for freeing the record.
func (w *WaitStatus) Release() bool {
	return atomic.AddInt32(&w.refs, -1) == 0
}
