package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/reglet-dev/contract-sdk/infrastructure/memhost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		attr slog.Attr
		want string
	}{
		{name: "string", attr: slog.String("key", "value"), want: "value"},
		{name: "int64", attr: slog.Int64("key", -123), want: "-123"},
		{name: "uint64", attr: slog.Uint64("key", 123), want: "123"},
		{name: "bool", attr: slog.Bool("key", true), want: "true"},
		{name: "float64", attr: slog.Float64("key", 1.25), want: "1.25"},
		{name: "time", attr: slog.Time("key", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), want: "2024-01-01T00:00:00Z"},
		{name: "duration", attr: slog.Duration("key", time.Hour), want: "1h0m0s"},
		{name: "error", attr: slog.Any("key", errors.New("test error")), want: "test error"},
		{name: "json", attr: slog.Any("key", map[string]int{"a": 1}), want: `{"a":1}`},
		{name: "nil", attr: slog.Any("key", nil), want: "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.attr.Value.Resolve()))
		})
	}
}

func TestHandler_RoutesByLevel(t *testing.T) {
	host := memhost.New()
	logger := slog.New(NewHandler(host))

	logger.Info("stored", "key", "k1", "bytes", 3)
	logger.Warn("slow")
	logger.Error("failed", "error", errors.New("disk full"))

	assert.Equal(t, []string{"INFO stored key=k1 bytes=3", "WARN slow"}, host.Logs())
	assert.Equal(t, []string{`ERROR failed error="disk full"`}, host.ErrorLogs())
}

func TestHandler_Level(t *testing.T) {
	host := memhost.New()
	logger := slog.New(NewHandler(host, WithLevel(slog.LevelWarn)))

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	assert.Equal(t, []string{"WARN shown"}, host.Logs())
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
}

func TestHandler_AttrsAndGroups(t *testing.T) {
	host := memhost.New()
	logger := slog.New(NewHandler(host)).
		With("contract", "hello").
		WithGroup("call").
		With("fn", "greet")

	logger.Info("done", slog.Group("args", slog.Int("n", 2)), "note", "two words")

	require.Len(t, host.Logs(), 1)
	assert.Equal(t, `INFO done contract=hello call.fn=greet call.args.n=2 call.note="two words"`, host.Logs()[0])
}

func TestHandler_Source(t *testing.T) {
	host := memhost.New()
	logger := slog.New(NewHandler(host, WithSource(true)))

	logger.Info("here")

	require.Len(t, host.Logs(), 1)
	assert.Contains(t, host.Logs()[0], "source=")
	assert.Contains(t, host.Logs()[0], "log_test.go:")
}

func TestInstall(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	host := memhost.New()
	Install(host)
	slog.Info("via default")

	assert.Equal(t, []string{"INFO via default"}, host.Logs())
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, l.Log(context.Background(), "hello"))
	require.NoError(t, l.LogError(context.Background(), "oops"))

	dec := json.NewDecoder(&buf)
	var first, second map[string]any
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))

	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, "hello", first["msg"])
	assert.Equal(t, "contract", first["source"])
	assert.Equal(t, "ERROR", second["level"])
	assert.Equal(t, "oops", second["msg"])
}
