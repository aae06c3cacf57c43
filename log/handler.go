// Package log provides structured logging (slog) for the binding.
// Sessions and facades log through a compact single-line text handler
// suited to interleaving with the engine's own console output.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strconv"
	"sync"
	"time"
)

// Handler implements slog.Handler with single-line text output.
type Handler struct {
	opts handlerConfig

	// prefix is the open group path, e.g. "budget.".
	prefix string

	// preformatted holds attributes accumulated through WithAttrs,
	// already rendered with the prefix in effect when they were added.
	preformatted []byte

	mu  *sync.Mutex
	out io.Writer
}

// HandlerOption configures the Handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level     slog.Level
	addSource bool
	output    io.Writer
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level:  slog.LevelInfo,
		output: os.Stderr,
	}
}

// WithLevel sets the minimum log level to report.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// WithOutput sets the destination writer. The default is stderr.
func WithOutput(w io.Writer) HandlerOption {
	return func(c *handlerConfig) {
		c.output = w
	}
}

// NewHandler creates a new Handler with the given options.
func NewHandler(opts ...HandlerOption) *Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler{
		opts: cfg,
		mu:   &sync.Mutex{},
		out:  cfg.output,
	}
}

// Compile-time interface compliance check
var _ slog.Handler = (*Handler)(nil)

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level
}

// Handle formats the record as one line and writes it to the output.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	buf := make([]byte, 0, 256)
	if !record.Time.IsZero() {
		buf = record.Time.Round(time.Millisecond).AppendFormat(buf, "2006-01-02T15:04:05.000")
		buf = append(buf, ' ')
	}
	buf = append(buf, record.Level.String()...)
	buf = append(buf, ' ')
	buf = appendValue(buf, record.Message)

	if h.opts.addSource && record.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{record.PC}).Next()
		if frame.File != "" {
			buf = append(buf, " source="...)
			buf = append(buf, frame.File...)
			buf = append(buf, ':')
			buf = strconv.AppendInt(buf, int64(frame.Line), 10)
		}
	}

	buf = append(buf, h.preformatted...)
	record.Attrs(func(attr slog.Attr) bool {
		buf = appendAttr(buf, attr, h.prefix)
		return true
	})
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf)
	return err
}

// WithAttrs returns a new Handler that includes the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	newHandler := *h
	buf := slices.Clip(h.preformatted)
	for _, attr := range attrs {
		buf = appendAttr(buf, attr, h.prefix)
	}
	newHandler.preformatted = buf
	return &newHandler
}

// WithGroup returns a new Handler that prefixes the keys of subsequent
// attributes with the given group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newHandler := *h
	newHandler.prefix = h.prefix + name + "."
	return &newHandler
}

func appendAttr(buf []byte, attr slog.Attr, prefix string) []byte {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return buf
	}

	// Inline groups by extending the prefix with the group key.
	if attr.Value.Kind() == slog.KindGroup {
		memberPrefix := prefix
		if attr.Key != "" {
			memberPrefix = prefix + attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			buf = appendAttr(buf, member, memberPrefix)
		}
		return buf
	}

	buf = append(buf, ' ')
	buf = append(buf, prefix...)
	buf = append(buf, attr.Key...)
	buf = append(buf, '=')
	return appendValue(buf, formatValue(attr.Value))
}

// appendValue appends s, quoting it when it contains spaces, quotes or
// control characters.
func appendValue(buf []byte, s string) []byte {
	if needsQuoting(s) {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '"' || r == '=' || r == 0x7f {
			return true
		}
	}
	return false
}
