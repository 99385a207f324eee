package kernel

// Error describes a kernel error. Kernel errors are declared as global
// variables that are pointers to the Error structure so that raising one
// never allocates; the Go allocator may not be available at the point
// where an error needs to be reported.
type Error struct {
	// The module where the error occurred.
	Module string

	// The error message
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
