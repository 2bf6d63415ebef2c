// FILE: default_test.go
package multilog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The default logger is package-global, so everything runs in one test to
// keep ordering deterministic
func TestDefaultLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.log")

	cfg := DefaultConfig()
	cfg.Level = LevelTrace
	cfg.Pattern = "[%level] %message"
	cfg.EnableConsole = false
	cfg.EnableFile = true
	cfg.FilePath = path

	require.NoError(t, Init(cfg))

	Trace("t")
	Debug("d")
	Info("i")
	Warn("w")
	Error("e")
	Fatal("f")
	require.NoError(t, Flush(time.Second))

	lines := readLines(t, path)
	require.Len(t, lines, 6)
	assert.Equal(t, "[TRACE] t", lines[0])
	assert.Equal(t, "[FATAL] f", lines[5])

	SetLevel(LevelError)
	Info("filtered")
	require.NoError(t, Flush(time.Second))
	assert.Len(t, readLines(t, path), 6)

	require.NoError(t, Shutdown(time.Second))
}
