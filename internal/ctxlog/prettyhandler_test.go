// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandler_Enabled(t *testing.T) {
	tests := []struct {
		name    string
		level   slog.Level
		options *slog.HandlerOptions
		want    bool
	}{
		{"debug with debug handler", slog.LevelDebug, &slog.HandlerOptions{Level: slog.LevelDebug}, true},
		{"debug with info handler", slog.LevelDebug, &slog.HandlerOptions{Level: slog.LevelInfo}, false},
		{"error with warn handler", slog.LevelError, &slog.HandlerOptions{Level: slog.LevelWarn}, true},
		{"info with nil options", slog.LevelInfo, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPrettyHandler(tt.options).Enabled(context.Background(), tt.level))
		})
	}
}

func TestPrettyHandler_Handle(t *testing.T) {
	tests := []struct {
		name           string
		level          slog.Level
		message        string
		attrs          []any
		options        []Option
		expectInOutput []string
	}{
		{
			name:           "basic info message",
			level:          slog.LevelInfo,
			message:        "test message",
			expectInOutput: []string{"INFO:", "test message"},
		},
		{
			name:           "debug message with attributes",
			level:          slog.LevelDebug,
			message:        "executing",
			attrs:          []any{"verb", "OPEN", "line", 3},
			expectInOutput: []string{"DEBUG:", "executing", `"verb": "OPEN"`, `"line": 3`},
		},
		{
			name:           "empty attrs output enabled",
			level:          slog.LevelWarn,
			message:        "command failed",
			options:        []Option{WithOutputEmptyAttrs()},
			expectInOutput: []string{"WARN:", "command failed", "{}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			opts := append([]Option{WithDestinationWriter(&buf)}, tt.options...)
			handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, opts...)

			record := slog.NewRecord(time.Now(), tt.level, tt.message, 0)
			record.Add(tt.attrs...)

			require.NoError(t, handler.Handle(context.Background(), record))

			output := buf.String()
			for _, expected := range tt.expectInOutput {
				assert.Contains(t, output, expected)
			}

			assert.True(t, strings.HasSuffix(output, "\n"))
			assert.NotContains(t, output, "\033[", "colour is off unless requested")
		})
	}
}

func TestPrettyHandler_Colour(t *testing.T) {
	var buf bytes.Buffer

	handler := NewPrettyHandler(nil, WithDestinationWriter(&buf), WithColour())
	require.NoError(t, handler.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)))
	assert.Contains(t, buf.String(), "\033[31mERROR:\033[0m")
}

func TestPrettyHandler_ReplaceAttr(t *testing.T) {
	var buf bytes.Buffer

	drop := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
			return slog.Attr{}
		}

		return a
	}

	handler := NewPrettyHandler(&slog.HandlerOptions{ReplaceAttr: drop}, WithDestinationWriter(&buf))
	require.NoError(t, handler.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "only message", 0)))
	assert.Equal(t, "only message \n", buf.String())
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer

	base := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug}, WithDestinationWriter(&buf))
	logger := slog.New(base.WithAttrs([]slog.Attr{slog.String("session", "s1")}).WithGroup("cmd"))

	logger.Info("run", "verb", "READ")

	out := buf.String()
	assert.Contains(t, out, `"session": "s1"`)
	assert.Contains(t, out, `"cmd": {`)
	assert.Contains(t, out, `"verb": "READ"`)

	derived, ok := base.WithAttrs(nil).(*PrettyHandler)
	require.True(t, ok)
	assert.Same(t, base.b, derived.b)
	assert.Same(t, base.m, derived.m)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrettyHandler_WriteError(t *testing.T) {
	handler := NewPrettyHandler(nil, WithDestinationWriter(failingWriter{}))
	err := handler.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0))
	assert.ErrorIs(t, err, ErrIoWrite)
}

func TestSuppressDefaults(t *testing.T) {
	f := suppressDefaults(nil)

	for _, k := range []string{slog.TimeKey, slog.LevelKey, slog.MessageKey} {
		assert.True(t, f(nil, slog.String(k, "x")).Equal(slog.Attr{}), k)
	}

	assert.Equal(t, "v", f(nil, slog.String("k", "v")).Value.String())

	upper := suppressDefaults(func(_ []string, a slog.Attr) slog.Attr {
		return slog.String(a.Key, strings.ToUpper(a.Value.String()))
	})
	assert.Equal(t, "V", upper(nil, slog.String("k", "v")).Value.String())
}

func TestLevelColour(t *testing.T) {
	assert.NotEqual(t, levelColour(slog.LevelDebug), levelColour(slog.LevelError))
	assert.Equal(t, levelColour(slog.LevelError+4), levelColour(slog.LevelError+8))
}
