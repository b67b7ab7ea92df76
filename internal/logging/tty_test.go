package logging

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestColorAllowed(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		isTTY bool
		want  bool
	}{
		{"NO_COLOR wins over a terminal", map[string]string{"NO_COLOR": "1"}, true, false},
		{"dumb terminal", map[string]string{"TERM": "dumb"}, true, false},
		{"not a terminal", nil, false, false},
		{"color terminal", map[string]string{"TERM": "xterm-256color"}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TERM", "")
			// t.Setenv restores NO_COLOR afterwards; it must be absent, not empty
			t.Setenv("NO_COLOR", "")
			os.Unsetenv("NO_COLOR")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.want, colorAllowed(tt.isTTY))
		})
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}

func TestMultiHandler(t *testing.T) {
	var text, js bytes.Buffer
	h := NewMultiHandler(
		NewHandler(&text, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&js, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("cmd", "resolve")

	assert.True(t, h.Enabled(t.Context(), slog.LevelDebug))
	logger.Debug("hoisted plugins", "count", 9)

	assert.Zero(t, text.Len(), "text handler is above debug")
	assert.Contains(t, js.String(), `"count":9`)
	assert.Contains(t, js.String(), `"cmd":"resolve"`)
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("disk full")
}

func TestMultiHandler_ReportsFailuresAndContinues(t *testing.T) {
	var js bytes.Buffer
	h := NewMultiHandler(
		failingHandler{slog.NewTextHandler(io.Discard, nil)},
		slog.NewJSONHandler(&js, nil).WithGroup("merge"),
	)

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "conflict", 0)
	r.AddAttrs(slog.String("option", "semi"))
	err := h.Handle(t.Context(), r)

	assert.EqualError(t, err, "disk full")
	assert.Contains(t, js.String(), `"merge":{"option":"semi"}`)
}
