package log

import (
	"context"
	"log/slog"

	"github.com/reglet-dev/contract-sdk/domain/ports"
)

// SlogLogger is the host side of the log functions: it implements
// ports.Logger by writing contract messages to a slog.Logger.
type SlogLogger struct {
	logger *slog.Logger
}

var _ ports.Logger = (*SlogLogger)(nil)

// NewSlogLogger creates a SlogLogger. Contract messages carry a
// source=contract attribute.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger.With(slog.String("source", "contract"))}
}

// Log implements ports.Logger.
func (l *SlogLogger) Log(ctx context.Context, msg string) error {
	l.logger.InfoContext(ctx, msg)
	return nil
}

// LogError implements ports.Logger.
func (l *SlogLogger) LogError(ctx context.Context, msg string) error {
	l.logger.ErrorContext(ctx, msg)
	return nil
}
