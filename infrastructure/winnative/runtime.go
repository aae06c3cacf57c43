//go:build windows

package winnative

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/domain/ports"
)

// Compile-time interface compliance check
var _ ports.NativeRuntime = (*Runtime)(nil)

// Runtime implements ports.NativeRuntime over the Windows loader.
type Runtime struct{}

// New creates a new Windows runtime.
func New() *Runtime {
	return &Runtime{}
}

// Open loads the engine DLL at path.
func (*Runtime) Open(path string) (ports.Library, error) {
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return nil, &errors.LoadError{Path: path, Err: err}
	}
	return &library{dll: dll}, nil
}

type library struct {
	dll *windows.DLL
}

func (l *library) Procedure(name string) (ports.Procedure, error) {
	proc, err := l.dll.FindProc(name)
	if err != nil {
		return nil, &errors.MissingProcedureError{Procedure: name}
	}
	return procedure{proc: proc}, nil
}

func (l *library) Close() error {
	return l.dll.Release()
}

type procedure struct {
	proc *windows.Proc
}

// Call invokes the procedure with every argument by reference. The
// engine's exports are Fortran subroutines: the machine-level return
// value carries no meaning and failures travel in the trailing status
// argument, so the syscall results are discarded.
func (p procedure) Call(args ...unsafe.Pointer) error {
	addrs := make([]uintptr, len(args))
	for i, a := range args {
		addrs[i] = uintptr(a)
	}
	p.proc.Call(addrs...) //nolint:errcheck // see above
	return nil
}
