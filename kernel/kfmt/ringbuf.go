package kfmt

import "io"

// ringBufferSize defines the size of the early print buffer. When the buffer
// fills up, the oldest output is overwritten. The size must be a power of 2.
const ringBufferSize = 4096

// ringBuffer captures Printf output generated before a console sink has been
// attached. Writes never fail; once the buffer wraps, older bytes are lost.
type ringBuffer struct {
	buffer [ringBufferSize]byte
	start  int
	used   int
}

// Write appends len(p) bytes from p to the ring buffer, discarding the oldest
// bytes when the buffer overflows.
func (rb *ringBuffer) Write(p []byte) (int, error) {
	for _, b := range p {
		rb.buffer[(rb.start+rb.used)&(ringBufferSize-1)] = b
		if rb.used < ringBufferSize {
			rb.used++
		} else {
			rb.start = (rb.start + 1) & (ringBufferSize - 1)
		}
	}

	return len(p), nil
}

// Read copies up to len(p) of the buffered bytes into p, consuming them. It
// returns io.EOF once the buffer has been fully drained.
func (rb *ringBuffer) Read(p []byte) (int, error) {
	if rb.used == 0 {
		return 0, io.EOF
	}

	var n int
	for ; n < len(p) && rb.used > 0; n++ {
		p[n] = rb.buffer[rb.start]
		rb.start = (rb.start + 1) & (ringBufferSize - 1)
		rb.used--
	}

	return n, nil
}
