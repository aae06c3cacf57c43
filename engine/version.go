package engine

import (
	"strings"
	"unsafe"

	"github.com/SGMOModeling/gowfm/internal/fortran"
)

// versionLen is the buffer size the engine fills with its multi-line
// version report.
const versionLen = 600

// Version returns the engine's component versions keyed by component
// name, e.g. "IWFM Core".
func (s *Session) Version() (map[string]string, error) {
	length := int32(versionLen)
	buf := make([]byte, versionLen)
	err := s.Call("IW_GetVersion",
		unsafe.Pointer(&length),
		unsafe.Pointer(&buf[0]),
	)
	if err != nil {
		return nil, err
	}
	return parseVersion(fortran.GoString(buf)), nil
}

// parseVersion splits the engine's version report into component and
// version pairs. Each line reads "Component: version"; lines without a
// separator are skipped.
func parseVersion(report string) map[string]string {
	versions := make(map[string]string)
	for _, line := range strings.Split(report, "\n") {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		versions[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return versions
}
