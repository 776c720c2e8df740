// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package server

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogHandlerFormatSelection(t *testing.T) {
	var buf bytes.Buffer

	t.Run("empty format defaults to json in production", func(t *testing.T) {
		h := newLogHandler(&buf, "info", "", true)
		_, ok := h.(*slog.JSONHandler)
		assert.True(t, ok)
	})

	t.Run("empty format defaults to text in development", func(t *testing.T) {
		h := newLogHandler(&buf, "info", "", false)
		_, ok := h.(*slog.JSONHandler)
		assert.False(t, ok)
	})

	t.Run("explicit format wins over environment", func(t *testing.T) {
		h := newLogHandler(&buf, "info", "json", false)
		_, ok := h.(*slog.JSONHandler)
		assert.True(t, ok)

		h = newLogHandler(&buf, "info", "text", true)
		_, ok = h.(*slog.JSONHandler)
		assert.False(t, ok)
	})
}

func TestNewLogHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()

	h := newLogHandler(&buf, "warn", "json", false)
	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))

	h = newLogHandler(&buf, "debug", "json", false)
	assert.True(t, h.Enabled(ctx, slog.LevelDebug))

	// Unknown levels fall back to info.
	h = newLogHandler(&buf, "verbose", "json", false)
	assert.False(t, h.Enabled(ctx, slog.LevelDebug))
	assert.True(t, h.Enabled(ctx, slog.LevelInfo))
}
