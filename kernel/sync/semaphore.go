package sync

// Semaphore implements a counting semaphore. A semaphore with an initial
// count of zero can be used for one-shot signalling between two tasks: the
// waiter calls Down and blocks until the signaller calls Up.
type Semaphore struct {
	lock  Spinlock
	count uint32
	waitq []chan struct{}
}

// NewSemaphore returns a semaphore initialized to the given count.
func NewSemaphore(count uint32) *Semaphore {
	return &Semaphore{count: count}
}

// Down decrements the semaphore count, blocking until the count becomes
// positive if it is currently zero.
func (s *Semaphore) Down() {
	s.lock.Acquire()
	if s.count > 0 {
		s.count--
		s.lock.Release()
		return
	}

	ch := make(chan struct{})
	s.waitq = append(s.waitq, ch)
	s.lock.Release()

	<-ch
}

// TryDown attempts to decrement the semaphore count and returns true on
// success or false if the count is currently zero.
func (s *Semaphore) TryDown() bool {
	s.lock.Acquire()
	ok := s.count > 0
	if ok {
		s.count--
	}
	s.lock.Release()
	return ok
}

// Up increments the semaphore count, waking up exactly one task blocked in
// Down if any are waiting. Waiters are released in FIFO order.
func (s *Semaphore) Up() {
	s.lock.Acquire()
	if len(s.waitq) != 0 {
		ch := s.waitq[0]
		s.waitq = s.waitq[1:]
		s.lock.Release()
		close(ch)
		return
	}
	s.count++
	s.lock.Release()
}
