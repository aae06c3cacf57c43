package engine

import (
	"log/slog"

	"github.com/SGMOModeling/gowfm/domain/ports"
	"github.com/SGMOModeling/gowfm/infrastructure/winnative"
	"github.com/SGMOModeling/gowfm/log"
)

type sessionConfig struct {
	runtime ports.NativeRuntime
	logger  *slog.Logger
	logFile string
}

// defaultSessionConfig returns the default configuration.
func defaultSessionConfig() sessionConfig {
	return sessionConfig{
		runtime: winnative.New(),
		logger:  slog.New(log.NewHandler()),
	}
}

// Option configures a Session.
type Option func(*sessionConfig)

// WithRuntime sets the native runtime used to load the engine library.
// The default loads the Windows DLL from the host system.
func WithRuntime(runtime ports.NativeRuntime) Option {
	return func(c *sessionConfig) {
		c.runtime = runtime
	}
}

// WithLogger sets the logger the session and its facades log through.
func WithLogger(logger *slog.Logger) Option {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// WithLogFile directs the engine's own warning and error messages to
// the named text file as soon as the session opens.
func WithLogFile(path string) Option {
	return func(c *sessionConfig) {
		c.logFile = path
	}
}
