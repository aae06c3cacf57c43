// Package engine manages the process-wide IWFM engine session: loading
// the native library, resolving and calling its exported procedures,
// and the engine-level operations shared by the model, budget and zone
// budget readers.
//
// The engine keeps global state inside the native library, so a
// process holds at most one useful session at a time. Sessions are not
// safe for concurrent use; every call blocks until the engine returns.
package engine

import (
	"log/slog"
	"unsafe"

	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/domain/ports"
	"github.com/SGMOModeling/gowfm/internal/fortran"
)

// lastMessageLen is the buffer size the engine fills with its most
// recent warning or error text.
const lastMessageLen = 500

// Session is an open handle to the engine library.
type Session struct {
	lib    ports.Library
	log    *slog.Logger
	closed bool

	ids idCache
}

// Open loads the engine library at path and starts a session. The
// session must be closed exactly once when no longer needed.
func Open(path string, opts ...Option) (*Session, error) {
	cfg := defaultSessionConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	lib, err := cfg.runtime.Open(path)
	if err != nil {
		return nil, err
	}

	s := &Session{lib: lib, log: cfg.logger}
	if cfg.logFile != "" {
		if err := s.SetLogFile(cfg.logFile); err != nil {
			lib.Close()
			return nil, err
		}
	}

	s.log.Info("engine: opened native library", "path", path)
	return s, nil
}

// Close releases the engine library. Further use of the session or of
// any facade built on it fails with a closed-session error.
func (s *Session) Close() error {
	if s.closed {
		return &errors.ClosedError{Resource: "engine session"}
	}
	s.closed = true
	if err := s.lib.Close(); err != nil {
		return err
	}
	s.log.Info("engine: closed native library")
	return nil
}

// Logger returns the logger the session and its facades log through.
func (s *Session) Logger() *slog.Logger {
	return s.log
}

// Call invokes the named procedure with the given by-reference
// arguments, appending the trailing status argument the engine
// convention requires. A non-zero status is returned as a
// *errors.CallError carrying the engine's last message.
func (s *Session) Call(name string, args ...unsafe.Pointer) error {
	if s.closed {
		return &errors.ClosedError{Resource: "engine session"}
	}

	proc, err := s.lib.Procedure(name)
	if err != nil {
		return err
	}

	status := int32(-1)
	callArgs := make([]unsafe.Pointer, 0, len(args)+1)
	callArgs = append(callArgs, args...)
	callArgs = append(callArgs, unsafe.Pointer(&status))

	s.log.Debug("engine: call", "proc", name)
	if err := proc.Call(callArgs...); err != nil {
		return err
	}
	if status != 0 {
		return &errors.CallError{
			Procedure: name,
			Status:    int(status),
			Message:   s.lastMessage(),
		}
	}
	return nil
}

// Int calls a counting procedure laid out as the engine's GetN family:
// any input arguments, then a single int32 output, then status.
func (s *Session) Int(name string, args ...unsafe.Pointer) (int, error) {
	var out int32
	callArgs := make([]unsafe.Pointer, 0, len(args)+1)
	callArgs = append(callArgs, args...)
	callArgs = append(callArgs, unsafe.Pointer(&out))
	if err := s.Call(name, callArgs...); err != nil {
		return 0, err
	}
	return int(out), nil
}

// LastMessage returns the engine's most recent warning or error text.
func (s *Session) LastMessage() (string, error) {
	if s.closed {
		return "", &errors.ClosedError{Resource: "engine session"}
	}
	return s.lastMessage(), nil
}

// lastMessage fetches the engine's message buffer without going back
// through Call, which would recurse on failure.
func (s *Session) lastMessage() string {
	proc, err := s.lib.Procedure("IW_GetLastMessage")
	if err != nil {
		return ""
	}

	length := int32(lastMessageLen)
	buf := make([]byte, lastMessageLen)
	var status int32
	err = proc.Call(unsafe.Pointer(&length), unsafe.Pointer(&buf[0]), unsafe.Pointer(&status))
	if err != nil {
		return ""
	}
	return fortran.TrimString(buf)
}

// LogLastMessage prints the engine's last message to its open log file.
func (s *Session) LogLastMessage() error {
	return s.Call("IW_LogLastMessage")
}
