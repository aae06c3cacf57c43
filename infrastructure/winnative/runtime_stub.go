//go:build !windows

package winnative

import (
	"runtime"

	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/domain/ports"
)

// Compile-time interface compliance check
var _ ports.NativeRuntime = (*Runtime)(nil)

// Runtime stub for non-Windows builds.
type Runtime struct{}

// New creates a new runtime stub.
func New() *Runtime {
	return &Runtime{}
}

// Open always fails: the engine library only exists as a Windows DLL.
func (*Runtime) Open(string) (ports.Library, error) {
	return nil, &errors.UnsupportedPlatformError{GOOS: runtime.GOOS}
}
