package syscall

import (
	"burrow/kernel/mm"
	"burrow/kernel/mm/uaccess"
	"burrow/kernel/proc"
)

// userString copies a NUL-terminated string out of user memory into a
// kernel-owned buffer, bounded at one page. The copy is made before the
// string is acted on because operations such as exec replace the address
// space that the caller's own pointer lives in. Every page the walk enters
// is validated first; a bad page terminates the caller.
func userString(p *proc.Process, virtAddr uintptr) []byte {
	uaccess.Check(p.AddrSpace, virtAddr)

	var (
		buf  = make([]byte, 0, 64)
		b    [1]byte
		addr = virtAddr
	)

	for uintptr(len(buf)) < mm.PageSize {
		if addr != virtAddr && addr&(mm.PageSize-1) == 0 {
			uaccess.Check(p.AddrSpace, addr)
		}

		p.AddrSpace.CopyIn(addr, b[:])
		if b[0] == 0 {
			break
		}

		buf = append(buf, b[0])
		addr++
	}

	return buf
}
