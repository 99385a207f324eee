package syscall

import (
	"bytes"
	"testing"

	"burrow/device/console"
	"burrow/kernel/fs"
	"burrow/kernel/gate"
	"burrow/kernel/kfmt"
	"burrow/kernel/mm"
	"burrow/kernel/mm/uaccess"
	"burrow/kernel/proc"
)

// memAddrSpace implements mm.AddressSpace over a sparse set of backing
// pages, so tests can hand the handlers real user buffers.
type memAddrSpace struct {
	pages map[mm.Page]*[mm.PageSize]byte
}

func newMemAddrSpace(pages ...mm.Page) *memAddrSpace {
	m := &memAddrSpace{pages: make(map[mm.Page]*[mm.PageSize]byte)}
	for _, p := range pages {
		m.pages[p] = new([mm.PageSize]byte)
	}
	return m
}

func (m *memAddrSpace) Translate(virtAddr uintptr) (mm.Frame, bool) {
	if _, ok := m.pages[mm.PageFromAddress(virtAddr)]; ok {
		return mm.Frame(mm.PageFromAddress(virtAddr)), true
	}
	return mm.InvalidFrame, false
}

func (m *memAddrSpace) CopyIn(virtAddr uintptr, p []byte) int {
	for i := range p {
		pg, ok := m.pages[mm.PageFromAddress(virtAddr+uintptr(i))]
		if !ok {
			return i
		}
		p[i] = pg[(virtAddr+uintptr(i))&(mm.PageSize-1)]
	}
	return len(p)
}

func (m *memAddrSpace) CopyOut(virtAddr uintptr, p []byte) int {
	for i := range p {
		pg, ok := m.pages[mm.PageFromAddress(virtAddr+uintptr(i))]
		if !ok {
			return i
		}
		pg[(virtAddr+uintptr(i))&(mm.PageSize-1)] = p[i]
	}
	return len(p)
}

// memFile and memHandle implement an in-memory filesystem entry and the
// fs.File handles opened on it. Writes never grow a file past its initial
// size.
type memFile struct {
	data []byte
}

type memHandle struct {
	file   *memFile
	pos    uint32
	closed bool
}

func (h *memHandle) Read(p []byte) int {
	if int(h.pos) >= len(h.file.data) {
		return 0
	}
	n := copy(p, h.file.data[h.pos:])
	h.pos += uint32(n)
	return n
}

func (h *memHandle) Write(p []byte) int {
	if int(h.pos) >= len(h.file.data) {
		return 0
	}
	n := copy(h.file.data[h.pos:], p)
	h.pos += uint32(n)
	return n
}

func (h *memHandle) Seek(pos uint32) { h.pos = pos }
func (h *memHandle) Tell() uint32    { return h.pos }
func (h *memHandle) Size() int32     { return int32(len(h.file.data)) }
func (h *memHandle) Close()          { h.closed = true }

type mockFS struct {
	files      map[string]*memFile
	lastHandle *memHandle
}

func newMockFS() *mockFS {
	return &mockFS{files: make(map[string]*memFile)}
}

func (m *mockFS) Create(name string, initialSize uint32) bool {
	if _, exists := m.files[name]; exists {
		return false
	}
	m.files[name] = &memFile{data: make([]byte, initialSize)}
	return true
}

func (m *mockFS) Remove(name string) bool {
	if _, exists := m.files[name]; !exists {
		return false
	}
	delete(m.files, name)
	return true
}

func (m *mockFS) Open(name string) fs.File {
	f, exists := m.files[name]
	if !exists {
		return nil
	}
	m.lastHandle = &memHandle{file: f}
	return m.lastHandle
}

// procExited marks the non-returning process-teardown path in tests.
type procExited struct{}

type mockManager struct {
	forkID     proc.ID
	forkOK     bool
	forkName   string
	forkParent *proc.Process

	execResult int
	execCmd    string

	waitFn func(proc.ID) int

	exited []*proc.Process
}

func (m *mockManager) Fork(name string, parent *proc.Process) (proc.ID, bool) {
	m.forkName, m.forkParent = name, parent
	return m.forkID, m.forkOK
}

func (m *mockManager) Exec(cmdLine []byte) int {
	m.execCmd = string(cmdLine)
	return m.execResult
}

func (m *mockManager) Wait(id proc.ID) int {
	if m.waitFn != nil {
		return m.waitFn(id)
	}
	return -1
}

func (m *mockManager) Exit(p *proc.Process) {
	m.exited = append(m.exited, p)
	panic(procExited{})
}

// The user pages mapped into every test process.
const (
	userPageA = mm.Page(16)
	userPageB = mm.Page(17)
)

type testEnv struct {
	t    *testing.T
	fs   *mockFS
	mgr  *mockManager
	cons *console.Buffered
	out  bytes.Buffer
	as   *memAddrSpace
	proc *proc.Process
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		t:    t,
		fs:   newMockFS(),
		mgr:  &mockManager{},
		cons: console.NewBuffered(),
		as:   newMemAddrSpace(userPageA, userPageB),
	}
	env.proc = &proc.Process{
		ID:        1,
		Name:      "init",
		AddrSpace: env.as,
		FDs:       proc.NewFDTable(),
		Wait:      proc.NewWaitStatus(),
	}

	filesystem = env.fs
	procMgr = env.mgr
	cons = env.cons
	proc.SetCurrentFn(func() *proc.Process { return env.proc })
	uaccess.SetKillFn(sysExit)
	kfmt.SetOutputSink(&env.out)

	t.Cleanup(func() {
		filesystem, procMgr, cons = nil, nil, nil
		proc.SetCurrentFn(nil)
		uaccess.SetKillFn(nil)
		kfmt.SetOutputSink(nil)
	})

	return env
}

// user returns a pointer into the test process's mapped user memory.
func (env *testEnv) user(off uintptr) uintptr {
	return userPageA.Address() + off
}

// placeString stores a NUL-terminated string in user memory and returns its
// address.
func (env *testEnv) placeString(off uintptr, s string) uintptr {
	addr := env.user(off)
	env.as.CopyOut(addr, append([]byte(s), 0))
	return addr
}

// readUser copies size bytes of user memory back out for inspection.
func (env *testEnv) readUser(addr, size uintptr) []byte {
	buf := make([]byte, size)
	env.as.CopyIn(addr, buf)
	return buf
}

// dispatch runs one system call, reporting whether it terminated the calling
// process instead of returning.
func (env *testEnv) dispatch(regs *gate.Registers) (exited bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(procExited); !ok {
				panic(r)
			}
			exited = true
		}
	}()

	Dispatch(regs)
	return false
}

// call is a convenience wrapper building the register snapshot for a
// three-argument system call.
func (env *testEnv) call(nr Number, args ...uint64) *gate.Registers {
	regs := &gate.Registers{RAX: uint64(nr)}
	if len(args) > 0 {
		regs.RDI = args[0]
	}
	if len(args) > 1 {
		regs.RSI = args[1]
	}
	if len(args) > 2 {
		regs.RDX = args[2]
	}
	return regs
}

// exitStatus returns the status the test process published on termination.
func (env *testEnv) exitStatus() int {
	return env.proc.Wait.Status()
}
