package ports

import "unsafe"

// NativeRuntime loads the IWFM engine library into the process.
type NativeRuntime interface {
	// Open loads the library at path and returns a handle to it.
	Open(path string) (Library, error)
}

// Library is a loaded engine library with a resolvable procedure table.
type Library interface {
	// Procedure resolves an exported procedure by name.
	Procedure(name string) (Procedure, error)

	// Close releases the library handle. The handle must not be used
	// after Close returns.
	Close() error
}

// Procedure is a single resolved engine procedure.
//
// Every argument crosses the boundary by reference, following the
// engine's Fortran calling convention: pointers to int32, float64,
// byte buffers, or the first element of a slice. The returned error
// reports call-machinery failure only; the engine signals its own
// failures through the trailing status argument.
type Procedure interface {
	Call(args ...unsafe.Pointer) error
}
