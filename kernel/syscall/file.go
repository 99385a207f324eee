package syscall

import (
	"burrow/kernel/fs"
	"burrow/kernel/mm/uaccess"
	"burrow/kernel/proc"
)

// TellInvalid is the position reported by tell for a descriptor that does
// not name an open file. A real file position can never take this value.
const TellInvalid = ^uint64(0)

// sysCreate creates a new file with the given initial size. Structural
// filesystem calls are serialized by the kernel-wide lock.
func sysCreate(pathPtr uintptr, initialSize uint32) bool {
	path := string(userString(proc.Current(), pathPtr))

	fs.Lock()
	defer fs.Unlock()
	return filesystem.Create(path, initialSize)
}

// sysRemove deletes the named file. A file may be removed while open;
// removing it does not close existing descriptors.
func sysRemove(pathPtr uintptr) bool {
	path := string(userString(proc.Current(), pathPtr))

	fs.Lock()
	defer fs.Unlock()
	return filesystem.Remove(path)
}

// sysOpen opens the named file and registers the handle in the caller's
// descriptor table. If registration fails the handle is closed again and -1
// is returned; the filesystem lock covers only the open itself.
func sysOpen(pathPtr uintptr) int32 {
	cur := proc.Current()
	path := string(userString(cur, pathPtr))

	f := lockedOpen(path)
	if f == nil {
		return -1
	}

	fd, err := cur.FDs.Add(f)
	if err != nil {
		f.Close()
		return -1
	}

	return fd
}

func lockedOpen(path string) fs.File {
	fs.Lock()
	defer fs.Unlock()
	return filesystem.Open(path)
}

// sysFilesize returns the size in bytes of the file open as fd, or -1.
func sysFilesize(fd int32) int32 {
	f := proc.Current().FDs.Get(fd)
	if f == nil {
		return -1
	}
	return f.Size()
}

// sysRead reads size bytes into the user buffer at bufPtr. Reading the
// console input stream consumes one byte at a time and stops after a NUL
// byte, which is itself stored and counted. Reading the console output
// stream fails. The buffer range is validated once, up front.
func sysRead(fd int32, bufPtr uintptr, size uint) int {
	cur := proc.Current()
	uaccess.CheckRange(cur.AddrSpace, bufPtr, uintptr(size))

	switch fd {
	case proc.FDConsoleIn:
		var (
			n int
			b [1]byte
		)
		for uint(n) < size {
			b[0] = cons.ReadByte()
			cur.AddrSpace.CopyOut(bufPtr+uintptr(n), b[:])
			n++
			if b[0] == 0 {
				break
			}
		}
		return n

	case proc.FDConsoleOut:
		return -1

	default:
		f := cur.FDs.Get(fd)
		if f == nil {
			return -1
		}

		buf := make([]byte, size)
		n := f.Read(buf)
		cur.AddrSpace.CopyOut(bufPtr, buf[:n])
		return n
	}
}

// sysWrite writes size bytes from the user buffer at bufPtr. Writing the
// console output stream emits the whole buffer atomically with respect to
// other console writers and always reports the full length. Writing the
// console input stream fails.
func sysWrite(fd int32, bufPtr uintptr, size uint) int {
	cur := proc.Current()
	uaccess.CheckRange(cur.AddrSpace, bufPtr, uintptr(size))

	switch fd {
	case proc.FDConsoleOut:
		buf := make([]byte, size)
		cur.AddrSpace.CopyIn(bufPtr, buf)
		cons.Write(buf)
		return int(size)

	case proc.FDConsoleIn:
		return -1

	default:
		f := cur.FDs.Get(fd)
		if f == nil {
			return -1
		}

		buf := make([]byte, size)
		cur.AddrSpace.CopyIn(bufPtr, buf)
		return f.Write(buf)
	}
}

// sysSeek sets the next read/write position of the file open as fd; a
// console or unknown descriptor is a no-op.
func sysSeek(fd int32, pos uint32) {
	f := proc.Current().FDs.Get(fd)
	if f == nil {
		return
	}
	f.Seek(pos)
}

// sysTell returns the next read/write position of the file open as fd, or
// TellInvalid for a console or unknown descriptor.
func sysTell(fd int32) uint64 {
	f := proc.Current().FDs.Get(fd)
	if f == nil {
		return TellInvalid
	}
	return uint64(f.Tell())
}

// sysClose closes the file open as fd and releases its table entry; a
// console or unknown descriptor is a no-op.
func sysClose(fd int32) {
	cur := proc.Current()

	f := cur.FDs.Get(fd)
	if f == nil {
		return
	}

	f.Close()
	cur.FDs.Remove(fd)
}
