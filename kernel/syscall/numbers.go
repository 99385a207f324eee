package syscall

// Number identifies a system call. User code places the number in RAX before
// executing the SYSCALL instruction.
type Number uint64

// The recognized system calls, in ABI order. Numbers outside this table are
// treated as a security violation and terminate the caller.
const (
	Halt Number = iota
	Exit
	Fork
	Exec
	Wait
	Create
	Remove
	Open
	Filesize
	Read
	Write
	Seek
	Tell
	Close
)
