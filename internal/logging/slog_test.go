package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_WritesStructuredRecords(t *testing.T) {
	var sb strings.Builder
	l := NewSlogLogger(slog.New(slog.NewJSONHandler(&sb, nil)))

	l.Info(context.Background(), "store unlocked", "entries", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(sb.String()), &rec))
	assert.Equal(t, "store unlocked", rec["msg"])
	assert.EqualValues(t, 3, rec["entries"])
}

func TestSlogLogger_WithAddsFields(t *testing.T) {
	var sb strings.Builder
	l := NewSlogLogger(slog.New(slog.NewJSONHandler(&sb, nil)))

	child := l.With("session_id", "abc")
	child.Warn(context.Background(), "unlock failed")

	assert.Contains(t, sb.String(), `"session_id":"abc"`)
}

func TestNewFileLogger_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passmgr.log")

	l, closer, err := NewFileLogger(path, 0)
	require.NoError(t, err)

	l.Info(context.Background(), "passmgr starting")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "passmgr starting")
}

func TestNewFileLogger_RotatesOversizedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "passmgr.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 128)), 0o600))

	l, closer, err := NewFileLogger(path, 64)
	require.NoError(t, err)
	l.Info(context.Background(), "after rotation")
	require.NoError(t, closer.Close())

	old, err := os.ReadFile(path + ".old")
	require.NoError(t, err)
	assert.Len(t, old, 128)

	fresh, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(fresh), strings.Repeat("x", 16))
	assert.Contains(t, string(fresh), "after rotation")
}

func TestNewNop_Discards(t *testing.T) {
	l := NewNop()
	require.NotPanics(t, func() {
		l.Debug(context.Background(), "a")
		l.Info(context.Background(), "b")
		l.Warn(context.Background(), "c")
		l.Error(context.Background(), "d", "err", "boom")
		l.With("k", "v").Info(context.Background(), "e")
	})
}
