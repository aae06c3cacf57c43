package engine

import (
	"unsafe"

	"github.com/SGMOModeling/gowfm/internal/fortran"
)

// DefaultLogFileName is where the engine writes its messages when no
// other log file is set.
const DefaultLogFileName = "message.log"

// SetLogFile directs the engine's warning and error messages to the
// named text file. An empty path selects DefaultLogFileName.
func (s *Session) SetLogFile(path string) error {
	if path == "" {
		path = DefaultLogFileName
	}

	buf := fortran.CString(path)
	length := int32(len(buf))
	err := s.Call("IW_SetLogFile",
		unsafe.Pointer(&length),
		unsafe.Pointer(&buf[0]),
	)
	if err != nil {
		return err
	}

	s.log.Info("engine: message log opened", "path", path)
	return nil
}

// CloseLogFile closes the engine's message log file.
func (s *Session) CloseLogFile() error {
	return s.Call("IW_CloseLogFile")
}
