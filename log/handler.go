// Package log provides structured logging (slog) for contracts, routed through
// the host log functions.
package log

import (
	"context"
	"log/slog"
	"runtime"
	"strconv"
	"strings"

	"github.com/reglet-dev/contract-sdk/domain/ports"
)

// Handler implements slog.Handler on top of a ports.Logger. Records at
// slog.LevelError and above go to LogError, everything else to Log.
type Handler struct {
	logger ports.Logger
	opts   handlerConfig
	attrs  string // pre-rendered " key=value" pairs from WithAttrs
	prefix string // dotted group path from WithGroup
}

// HandlerOption configures the Handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level     slog.Leveler
	addSource bool
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level to report.
// Records below this level are dropped before reaching the host.
func WithLevel(level slog.Leveler) HandlerOption {
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

// NewHandler creates a Handler writing to logger.
func NewHandler(logger ports.Logger, opts ...HandlerOption) *Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler{logger: logger, opts: cfg}
}

// Install makes a Handler over logger the slog default.
func Install(logger ports.Logger, opts ...HandlerOption) {
	slog.SetDefault(slog.New(NewHandler(logger, opts...)))
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level.Level()
}

// Handle renders the record as "LEVEL message key=value..." and sends it to the host.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	var b strings.Builder
	b.WriteString(record.Level.String())
	b.WriteByte(' ')
	b.WriteString(record.Message)
	b.WriteString(h.attrs)
	record.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.prefix, a)
		return true
	})
	if h.opts.addSource && record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		f, _ := frames.Next()
		b.WriteString(" source=")
		b.WriteString(f.File + ":" + strconv.Itoa(f.Line))
	}

	if record.Level >= slog.LevelError {
		return h.logger.LogError(ctx, b.String())
	}
	return h.logger.Log(ctx, b.String())
}

// WithAttrs returns a new Handler that includes the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&b, h.prefix, a)
	}
	newHandler := *h
	newHandler.attrs = b.String()
	return &newHandler
}

// WithGroup returns a new Handler that qualifies later attributes with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newHandler := *h
	newHandler.prefix = h.prefix + name + "."
	return &newHandler
}
