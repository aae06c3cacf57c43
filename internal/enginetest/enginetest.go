// Package enginetest provides an in-memory engine library for testing
// the binding without the native DLL. Tests register procedure
// behaviors by name and the fake writes results directly into the
// caller's argument buffers, the same way the engine does.
package enginetest

import (
	"unsafe"

	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/domain/ports"
)

// ProcFunc is the behavior of one registered procedure. It receives the
// raw argument pointers and writes outputs in place.
type ProcFunc func(args []unsafe.Pointer)

// Runtime is a ports.NativeRuntime that hands out a fixed fake library
// instead of loading a DLL.
type Runtime struct {
	Lib *Library

	// Err, when set, is returned from Open.
	Err error

	// Opened records the paths passed to Open, in order.
	Opened []string
}

// Compile-time interface compliance check
var _ ports.NativeRuntime = (*Runtime)(nil)

// Open records the path and returns the fake library.
func (r *Runtime) Open(path string) (ports.Library, error) {
	r.Opened = append(r.Opened, path)
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Lib, nil
}

// Library is a fake engine library backed by a procedure table.
type Library struct {
	procs map[string]ProcFunc

	// Calls records the procedure names invoked, in order.
	Calls []string

	closed bool
}

// Compile-time interface compliance check
var _ ports.Library = (*Library)(nil)

// New creates a new empty fake library.
func New() *Library {
	return &Library{procs: make(map[string]ProcFunc)}
}

// Register installs fn as the behavior of the named procedure,
// replacing any previous registration.
func (l *Library) Register(name string, fn ProcFunc) {
	l.procs[name] = fn
}

// Procedure resolves a registered procedure. Unregistered names fail
// the same way a missing DLL export does.
func (l *Library) Procedure(name string) (ports.Procedure, error) {
	fn, ok := l.procs[name]
	if !ok {
		return nil, &errors.MissingProcedureError{Procedure: name}
	}
	return &procedure{name: name, fn: fn, lib: l}, nil
}

// Close marks the library closed.
func (l *Library) Close() error {
	l.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (l *Library) Closed() bool {
	return l.closed
}

type procedure struct {
	name string
	fn   ProcFunc
	lib  *Library
}

func (p *procedure) Call(args ...unsafe.Pointer) error {
	p.lib.Calls = append(p.lib.Calls, p.name)
	p.fn(args)
	return nil
}

// Step writes one output into the argument list of a procedure call.
type Step func(args []unsafe.Pointer)

// Succeed builds a ProcFunc that runs the given steps and then writes
// status zero into the trailing status argument.
func Succeed(steps ...Step) ProcFunc {
	return func(args []unsafe.Pointer) {
		for _, step := range steps {
			step(args)
		}
		*(*int32)(args[len(args)-1]) = 0
	}
}

// FailWith builds a ProcFunc that writes the given non-zero status into
// the trailing status argument and touches nothing else.
func FailWith(status int32) ProcFunc {
	return func(args []unsafe.Pointer) {
		*(*int32)(args[len(args)-1]) = status
	}
}

// PutInt writes v into the int32 argument at position at.
func PutInt(at int, v int32) Step {
	return func(args []unsafe.Pointer) {
		*(*int32)(args[at]) = v
	}
}

// PutInts writes vals into the int32 array argument at position at.
func PutInts(at int, vals ...int32) Step {
	return func(args []unsafe.Pointer) {
		copy(unsafe.Slice((*int32)(args[at]), len(vals)), vals)
	}
}

// PutFloat writes v into the float64 argument at position at.
func PutFloat(at int, v float64) Step {
	return func(args []unsafe.Pointer) {
		*(*float64)(args[at]) = v
	}
}

// PutFloats writes vals into the float64 array argument at position at.
func PutFloats(at int, vals ...float64) Step {
	return func(args []unsafe.Pointer) {
		copy(unsafe.Slice((*float64)(args[at]), len(vals)), vals)
	}
}

// PutString writes the bytes of s into the buffer argument at position
// at. The destination buffer must hold at least len(s) bytes; shorter
// strings leave the zeroed remainder as the NUL terminator.
func PutString(at int, s string) Step {
	return func(args []unsafe.Pointer) {
		copy(unsafe.Slice((*byte)(args[at]), len(s)), s)
	}
}

// PutMatrix writes rows into the float64 array argument at position at
// in row-major order.
func PutMatrix(at int, rows [][]float64) Step {
	return func(args []unsafe.Pointer) {
		var flat []float64
		for _, row := range rows {
			flat = append(flat, row...)
		}
		copy(unsafe.Slice((*float64)(args[at]), len(flat)), flat)
	}
}

// ArgInt reads the int32 argument at position at.
func ArgInt(args []unsafe.Pointer, at int) int32 {
	return *(*int32)(args[at])
}

// ArgFloat reads the float64 argument at position at.
func ArgFloat(args []unsafe.Pointer, at int) float64 {
	return *(*float64)(args[at])
}

// ArgInts reads n values from the int32 array argument at position at.
func ArgInts(args []unsafe.Pointer, at, n int) []int32 {
	out := make([]int32, n)
	copy(out, unsafe.Slice((*int32)(args[at]), n))
	return out
}

// ArgFloats reads n values from the float64 array argument at position
// at.
func ArgFloats(args []unsafe.Pointer, at, n int) []float64 {
	out := make([]float64, n)
	copy(out, unsafe.Slice((*float64)(args[at]), n))
	return out
}

// ArgString reads an n-byte buffer argument at position at and decodes
// it up to the first NUL byte.
func ArgString(args []unsafe.Pointer, at, n int) string {
	buf := unsafe.Slice((*byte)(args[at]), n)
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}
