package syscall

import (
	"bytes"
	"testing"

	"burrow/kernel/gate"
	"burrow/kernel/mm"
	"burrow/kernel/proc"
)

func TestFileScenario(t *testing.T) {
	env := newTestEnv(t)

	pathPtr := env.placeString(0, "a.txt")
	bufPtr := env.user(64)

	regs := env.call(Create, uint64(pathPtr), 100)
	env.dispatch(regs)
	if regs.RAX != 1 {
		t.Fatal("expected create(\"a.txt\", 100) to return true")
	}

	regs = env.call(Open, uint64(pathPtr))
	env.dispatch(regs)
	fd := int64(regs.RAX)
	if fd != 2 {
		t.Fatalf("expected the first descriptor after the reserved streams to be 2; got %d", fd)
	}

	env.as.CopyOut(bufPtr, []byte("hi"))
	regs = env.call(Write, uint64(fd), uint64(bufPtr), 2)
	env.dispatch(regs)
	if regs.RAX != 2 {
		t.Fatalf("expected write to report 2 bytes; got %d", regs.RAX)
	}

	env.dispatch(env.call(Seek, uint64(fd), 0))

	readPtr := env.user(128)
	regs = env.call(Read, uint64(fd), uint64(readPtr), 2)
	env.dispatch(regs)
	if regs.RAX != 2 {
		t.Fatalf("expected read to report 2 bytes; got %d", regs.RAX)
	}
	if got := env.readUser(readPtr, 2); !bytes.Equal(got, []byte("hi")) {
		t.Fatalf("expected to read back %q; got %q", "hi", got)
	}

	env.dispatch(env.call(Close, uint64(fd)))

	regs = env.call(Read, uint64(fd), uint64(readPtr), 2)
	env.dispatch(regs)
	if got := int64(regs.RAX); got != -1 {
		t.Fatalf("expected read on a closed descriptor to return -1; got %d", got)
	}
}

func TestOpenMissingFile(t *testing.T) {
	env := newTestEnv(t)
	pathPtr := env.placeString(0, "nope.txt")

	if got := sysOpen(pathPtr); got != -1 {
		t.Fatalf("expected open on a missing file to return -1; got %d", got)
	}
}

func TestOpenClosesHandleWhenRegistrationFails(t *testing.T) {
	env := newTestEnv(t)
	defer proc.SetFDLimits(proc.DefaultOpenLimit, proc.DefaultFDLimit)
	proc.SetFDLimits(0, proc.DefaultFDLimit)
	env.proc.FDs = proc.NewFDTable()

	pathPtr := env.placeString(0, "a.txt")
	sysCreate(pathPtr, 16)

	if got := sysOpen(pathPtr); got != -1 {
		t.Fatalf("expected open to fail when the descriptor table is full; got %d", got)
	}
	if env.fs.lastHandle == nil || !env.fs.lastHandle.closed {
		t.Fatal("expected the freshly opened handle to be closed after registration failed")
	}
}

func TestOpenUntilLimit(t *testing.T) {
	env := newTestEnv(t)
	defer proc.SetFDLimits(proc.DefaultOpenLimit, proc.DefaultFDLimit)
	proc.SetFDLimits(3, proc.DefaultFDLimit)
	env.proc.FDs = proc.NewFDTable()

	pathPtr := env.placeString(0, "a.txt")
	sysCreate(pathPtr, 16)

	var lastFD int32
	for i := 0; i < 3; i++ {
		lastFD = sysOpen(pathPtr)
		if lastFD == -1 {
			t.Fatalf("unexpected open failure below the limit (iteration %d)", i)
		}
	}

	if got := sysOpen(pathPtr); got != -1 {
		t.Fatal("expected open to fail once the open-file limit is reached")
	}
	if got := env.proc.FDs.OpenCount(); got != 3 {
		t.Fatalf("expected the open count to stay at the limit; got %d", got)
	}
	if got := env.proc.FDs.Get(lastFD); got == nil {
		t.Fatal("expected descriptors issued below the limit to stay valid")
	}
}

func TestRemove(t *testing.T) {
	env := newTestEnv(t)
	pathPtr := env.placeString(0, "a.txt")

	if sysRemove(pathPtr) {
		t.Fatal("expected remove on a missing file to return false")
	}

	sysCreate(pathPtr, 16)
	fd := sysOpen(pathPtr)

	if !sysRemove(pathPtr) {
		t.Fatal("expected remove to return true")
	}

	// Removing an open file does not close existing descriptors.
	if got := env.proc.FDs.Get(fd); got == nil {
		t.Fatal("expected the open descriptor to survive remove")
	}
}

func TestConsoleReadStopsAtNul(t *testing.T) {
	env := newTestEnv(t)
	env.cons.PushInput([]byte("ab\x00cd"))

	bufPtr := env.user(0)
	if got := sysRead(proc.FDConsoleIn, bufPtr, 16); got != 3 {
		t.Fatalf("expected console read to stop after the NUL and count it; got %d", got)
	}
	if got := env.readUser(bufPtr, 3); !bytes.Equal(got, []byte("ab\x00")) {
		t.Fatalf("expected the NUL terminator to be stored; buffer was %q", got)
	}

	// The remaining input is still queued for the next read.
	if got := sysRead(proc.FDConsoleIn, bufPtr, 2); got != 2 {
		t.Fatalf("expected the follow-up read to return 2; got %d", got)
	}
	if got := env.readUser(bufPtr, 2); !bytes.Equal(got, []byte("cd")) {
		t.Fatalf("expected to read %q; got %q", "cd", got)
	}
}

func TestConsoleReadStopsAtCount(t *testing.T) {
	env := newTestEnv(t)
	env.cons.PushInput([]byte("xyz"))

	bufPtr := env.user(0)
	if got := sysRead(proc.FDConsoleIn, bufPtr, 2); got != 2 {
		t.Fatalf("expected console read to stop at the requested count; got %d", got)
	}
}

func TestConsoleStreamDirectionality(t *testing.T) {
	env := newTestEnv(t)
	bufPtr := env.user(0)

	if got := sysRead(proc.FDConsoleOut, bufPtr, 4); got != -1 {
		t.Fatalf("expected read on the output stream to return -1; got %d", got)
	}
	if got := sysWrite(proc.FDConsoleIn, bufPtr, 4); got != -1 {
		t.Fatalf("expected write on the input stream to return -1; got %d", got)
	}
}

func TestConsoleWriteReportsFullLength(t *testing.T) {
	env := newTestEnv(t)

	bufPtr := env.user(0)
	env.as.CopyOut(bufPtr, []byte("hello, console"))

	if got := sysWrite(proc.FDConsoleOut, bufPtr, 14); got != 14 {
		t.Fatalf("expected console write to report the full length; got %d", got)
	}
	if got := env.cons.Output(); !bytes.Equal(got, []byte("hello, console")) {
		t.Fatalf("expected the buffer on the console; got %q", got)
	}
}

func TestFilesize(t *testing.T) {
	env := newTestEnv(t)
	pathPtr := env.placeString(0, "a.txt")
	sysCreate(pathPtr, 321)
	fd := sysOpen(pathPtr)

	if got := sysFilesize(fd); got != 321 {
		t.Fatalf("expected filesize 321; got %d", got)
	}

	for _, fd := range []int32{proc.FDConsoleIn, proc.FDConsoleOut, 99} {
		if got := sysFilesize(fd); got != -1 {
			t.Errorf("expected filesize(%d) to return -1; got %d", fd, got)
		}
	}
}

func TestSeekTellOnInvalidDescriptors(t *testing.T) {
	newTestEnv(t)

	for _, fd := range []int32{proc.FDConsoleIn, proc.FDConsoleOut, 99} {
		sysSeek(fd, 10) // must be a no-op
		if got := sysTell(fd); got != TellInvalid {
			t.Errorf("expected tell(%d) to return the TellInvalid sentinel; got %d", fd, got)
		}
	}
}

func TestTellTracksSeek(t *testing.T) {
	env := newTestEnv(t)
	pathPtr := env.placeString(0, "a.txt")
	sysCreate(pathPtr, 64)
	fd := sysOpen(pathPtr)

	sysSeek(fd, 17)
	if got := sysTell(fd); got != 17 {
		t.Fatalf("expected tell to report 17 after seek; got %d", got)
	}
}

func TestBadPointersAreFatal(t *testing.T) {
	unmapped := uint64(userPageB.Address() + 2*mm.PageSize)

	specs := []struct {
		name string
		call func(env *testEnv) *gate.Registers
	}{
		{"create", func(env *testEnv) *gate.Registers { return env.call(Create, unmapped, 10) }},
		{"open", func(env *testEnv) *gate.Registers { return env.call(Open, unmapped) }},
		{"read", func(env *testEnv) *gate.Registers {
			return env.call(Read, uint64(proc.FDConsoleIn), unmapped, 4)
		}},
		{"write", func(env *testEnv) *gate.Registers {
			return env.call(Write, uint64(proc.FDConsoleOut), unmapped, 4)
		}},
		{"null-pointer", func(env *testEnv) *gate.Registers { return env.call(Open, 0) }},
		{"kernel-pointer", func(env *testEnv) *gate.Registers {
			return env.call(Open, uint64(mm.KernelBase)+64)
		}},
		{"tail-unmapped", func(env *testEnv) *gate.Registers {
			// The head of the range is mapped but the tail crosses
			// into an unmapped page.
			return env.call(Write, uint64(proc.FDConsoleOut), uint64(userPageB.Address()), uint64(mm.PageSize)+1)
		}},
	}

	for _, spec := range specs {
		t.Run(spec.name, func(t *testing.T) {
			env := newTestEnv(t)

			if !env.dispatch(spec.call(env)) {
				t.Fatal("expected the process to be terminated")
			}
			if got := env.exitStatus(); got != -1 {
				t.Fatalf("expected exit status -1; got %d", got)
			}

			// No partial side effects: nothing created, nothing
			// reached the console.
			if len(env.fs.files) != 0 {
				t.Error("expected no file to be created")
			}
			if out := env.cons.Output(); len(out) != 0 {
				t.Errorf("expected no bytes on the console; got %q", out)
			}
		})
	}
}
