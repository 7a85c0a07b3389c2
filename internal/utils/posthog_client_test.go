package utils

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosthogClientWrapper_DisabledWithoutKey(t *testing.T) {
	w := InitializePosthogClient("", "https://eu.i.posthog.com", slog.Default())

	assert.False(t, w.IsInitialized())
	assert.NotPanics(t, func() {
		w.Enqueue("user-1", "statement_imported", map[string]any{"lines": 3})
		w.Close()
	})
}

func TestPosthogClientWrapper_NilSafe(t *testing.T) {
	var w *PosthogClientWrapper
	assert.False(t, w.IsInitialized())
	assert.NotPanics(t, func() { w.Enqueue("u", "e", nil) })
}
