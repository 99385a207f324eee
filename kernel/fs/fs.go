// Package fs declares the narrow interface through which the syscall layer
// drives the filesystem implementation, together with the kernel-wide lock
// that serializes structural filesystem operations.
package fs

import "burrow/kernel/sync"

// FileSystem is implemented by the filesystem subsystem. The syscall layer
// never reaches into file storage itself; it only creates, removes and opens
// files by name and then operates on the returned handles.
type FileSystem interface {
	// Create creates a new file with the given initial size and returns
	// true on success.
	Create(name string, initialSize uint32) bool

	// Remove deletes the named file and returns true on success. A file
	// may be removed while open; doing so does not close it.
	Remove(name string) bool

	// Open opens the named file and returns a handle for it, or nil if
	// the file cannot be opened.
	Open(name string) File
}

// File is an open file handle owned by the filesystem subsystem. Handles are
// internally safe for concurrent reads and writes on distinct handles, which
// is why data-path calls do not take the structural lock.
type File interface {
	// Read reads up to len(p) bytes at the current position and returns
	// the number of bytes read (0 at end of file).
	Read(p []byte) int

	// Write writes len(p) bytes at the current position and returns the
	// number of bytes written.
	Write(p []byte) int

	// Seek sets the position of the next read or write, in bytes from
	// the start of the file.
	Seek(pos uint32)

	// Tell returns the position of the next byte to be read or written.
	Tell() uint32

	// Size returns the file length in bytes.
	Size() int32

	// Close releases the handle.
	Close()
}

// structLock serializes create/remove/open across all processes. The
// filesystem implementation is not safe under concurrent structural
// mutation, so the syscall layer brackets those three calls with Lock and
// Unlock; read/write on open handles are exempt.
var structLock sync.Spinlock

// Lock acquires the kernel-wide structural filesystem lock.
func Lock() { structLock.Acquire() }

// Unlock releases the kernel-wide structural filesystem lock.
func Unlock() { structLock.Release() }
