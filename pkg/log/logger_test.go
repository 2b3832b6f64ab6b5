package log

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewWithWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, slog.LevelInfo, "text")
	l.Debug("hidden")
	l.Info("page rendered", "page", "overview")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "page=overview")
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "web.log")
	l, err := NewLogger(&Config{Level: "debug", File: path})
	require.NoError(t, err)
	assert.NotNil(t, l.Output())
}
