package proc

import (
	"burrow/kernel"
	"burrow/kernel/fs"
)

// The two reserved descriptor numbers name the console streams. They are
// never present in a table and every lookup for them short-circuits.
const (
	FDConsoleIn  = 0
	FDConsoleOut = 1

	// firstFD is the first allocatable descriptor number.
	firstFD = 2
)

// Default per-process resource limits; bring-up code may override them via
// SetFDLimits before the first process starts.
const (
	DefaultOpenLimit = 128
	DefaultFDLimit   = 512
)

var (
	openLimit int32 = DefaultOpenLimit
	fdLimit   int32 = DefaultFDLimit

	errOpenLimit = &kernel.Error{Module: "proc", Message: "file-open limit reached"}
	errFDLimit   = &kernel.Error{Module: "proc", Message: "descriptor space exhausted"}
)

// SetFDLimits overrides the per-process open-file and descriptor-space
// limits applied to tables created afterwards.
func SetFDLimits(open, space int32) {
	openLimit, fdLimit = open, space
}

// fdEntry binds a descriptor number to an open file handle. The handle is
// borrowed from the filesystem subsystem and stays valid until the entry is
// removed.
type fdEntry struct {
	fd   int32
	file fs.File
}

// FDTable is a per-process registry mapping descriptor numbers to open file
// handles. Descriptors are allocated from a monotonically increasing counter
// and never reused while the process lives, so the entry list is sorted
// ascending by construction.
type FDTable struct {
	nextFD    int32
	openCount int32
	entries   []fdEntry

	openLimit int32
	fdLimit   int32
}

// NewFDTable returns an empty table whose first allocatable descriptor sits
// just above the reserved console streams.
func NewFDTable() *FDTable {
	return &FDTable{
		nextFD:    firstFD,
		openLimit: openLimit,
		fdLimit:   fdLimit,
	}
}

// Add registers an open file handle and returns the descriptor assigned to
// it. It fails when the table already holds the per-process maximum of open
// files or when the descriptor space has been exhausted.
func (t *FDTable) Add(file fs.File) (int32, *kernel.Error) {
	if t.openCount == t.openLimit {
		return -1, errOpenLimit
	}
	if t.nextFD == t.fdLimit {
		return -1, errFDLimit
	}

	fd := t.nextFD
	t.nextFD++
	t.openCount++
	t.entries = append(t.entries, fdEntry{fd: fd, file: file})

	return fd, nil
}

// Get returns the file handle registered under fd, or nil if fd names a
// console stream, has never been issued, or has been closed. The scan bails
// out early as soon as it passes the slot where fd would have to live.
func (t *FDTable) Get(fd int32) fs.File {
	if fd == FDConsoleIn || fd == FDConsoleOut || fd < 0 || fd >= t.nextFD {
		return nil
	}

	for _, e := range t.entries {
		if e.fd == fd {
			return e.file
		}
		if e.fd > fd {
			break
		}
	}

	return nil
}

// Remove unlinks the entry registered under fd. Removing a console stream,
// an unknown or an already-closed descriptor is a no-op.
func (t *FDTable) Remove(fd int32) {
	if fd == FDConsoleIn || fd == FDConsoleOut || fd < 0 || fd >= t.nextFD {
		return
	}

	for i, e := range t.entries {
		if e.fd == fd {
			t.openCount--
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return
		}
		if e.fd > fd {
			return
		}
	}
}

// OpenCount returns the number of live entries in the table.
func (t *FDTable) OpenCount() int32 { return t.openCount }

// CloseAll closes every remaining handle through the filesystem interface
// and empties the table, as if Close had been invoked on each open
// descriptor. It is called when the owning process terminates.
func (t *FDTable) CloseAll() {
	for _, e := range t.entries {
		e.file.Close()
	}
	t.entries = nil
	t.openCount = 0
}
