// FILE: filesink_test.go
package multilog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLine(t *testing.T, s *RotatingFileSink, line string) error {
	t.Helper()
	_, err := s.Write([]byte(line + "\n"))
	return err
}

func TestFileSinkRotationBoundary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rot.log")
	sink, err := NewRotatingFileSink(path, 100, 3, LevelTrace, false)
	require.NoError(t, err)
	defer sink.Close()

	line := strings.Repeat("a", 39) // 40 bytes with newline

	// Two writes stay under the limit, no rotation
	require.NoError(t, writeLine(t, sink, line))
	require.NoError(t, writeLine(t, sink, line))
	assert.Zero(t, sink.Rotations())
	_, err = os.Stat(path + ".1")
	assert.True(t, os.IsNotExist(err))

	// Third write crosses 100 bytes and rotates afterwards
	require.NoError(t, writeLine(t, sink, line))
	assert.Equal(t, uint64(1), sink.Rotations())

	backup, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(backup), "\n"))

	active, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestFileSinkOversizeRecordStaysWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.log")
	sink, err := NewRotatingFileSink(path, 100, 2, LevelTrace, false)
	require.NoError(t, err)
	defer sink.Close()

	huge := strings.Repeat("x", 300)
	require.NoError(t, writeLine(t, sink, huge))
	assert.Equal(t, uint64(1), sink.Rotations())

	backup, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, huge+"\n", string(backup))
}

func TestFileSinkBackupRetention(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ret.log")
	sink, err := NewRotatingFileSink(path, 10, 2, LevelTrace, false)
	require.NoError(t, err)
	defer sink.Close()

	// Each write exceeds maxSize and forces a rotation
	for i := 0; i < 4; i++ {
		require.NoError(t, writeLine(t, sink, strings.Repeat("b", 20)))
	}
	assert.Equal(t, uint64(4), sink.Rotations())

	// Retention window holds, nothing beyond path.2
	_, err = os.Stat(path + ".1")
	assert.NoError(t, err)
	_, err = os.Stat(path + ".2")
	assert.NoError(t, err)
	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err))
}

func TestFileSinkZeroBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.log")
	sink, err := NewRotatingFileSink(path, 10, 0, LevelTrace, false)
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, writeLine(t, sink, strings.Repeat("c", 20)))
	assert.Equal(t, uint64(1), sink.Rotations())

	// Rotation discards the full file instead of keeping a backup
	_, err = os.Stat(path + ".1")
	assert.True(t, os.IsNotExist(err))
	active, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestFileSinkRotationFailureKeepsAppending(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "fail.log")
	sink, err := NewRotatingFileSink(path, 10, 1, LevelTrace, false)
	require.NoError(t, err)
	defer sink.Close()

	// Occupy the backup slot with a non-empty directory so the rename
	// cascade cannot complete
	require.NoError(t, os.Mkdir(path+".1", 0755))
	require.NoError(t, os.WriteFile(filepath.Join(path+".1", "blocker"), []byte("x"), 0644))

	err = writeLine(t, sink, strings.Repeat("d", 20))
	require.Error(t, err)
	var rotErr *RotationError
	require.ErrorAs(t, err, &rotErr)
	assert.Equal(t, path, rotErr.Path)
	assert.Zero(t, sink.Rotations())

	// The record stayed whole in the over-size file
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("d", 20)+"\n", string(content))

	// Once the obstruction clears, the next over-size write rotates again
	require.NoError(t, os.RemoveAll(path + ".1"))
	require.NoError(t, writeLine(t, sink, "recovered"))
	assert.Equal(t, uint64(1), sink.Rotations())

	backup, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Contains(t, string(backup), strings.Repeat("d", 20))
	assert.Contains(t, string(backup), "recovered")
}

func TestFileSinkCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "app.log")
	sink, err := NewRotatingFileSink(path, 1024, 1, LevelTrace, false)
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, writeLine(t, sink, "created"))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileSinkConstructionErrors(t *testing.T) {
	_, err := NewRotatingFileSink(filepath.Join(t.TempDir(), "a.log"), 0, 1, LevelTrace, false)
	assert.Error(t, err)

	_, err = NewRotatingFileSink(filepath.Join(t.TempDir(), "a.log"), 100, -1, LevelTrace, false)
	assert.Error(t, err)
}

func TestFileSinkResumeExistingSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("e", 95)+"\n"), 0644))

	// Opening picks up the existing 96 bytes; one small write rotates
	sink, err := NewRotatingFileSink(path, 100, 1, LevelTrace, false)
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, writeLine(t, sink, "push over"))
	assert.Equal(t, uint64(1), sink.Rotations())
}

func TestFileSinkFlushIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flush.log")
	sink, err := NewRotatingFileSink(path, 1024, 1, LevelTrace, false)
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, writeLine(t, sink, "data"))
	require.NoError(t, sink.Flush())
	require.NoError(t, sink.Flush())
}

func TestFileSinkLockFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locked.log")
	sink, err := NewRotatingFileSink(path, 10, 1, LevelTrace, true)
	require.NoError(t, err)

	_, err = os.Stat(path + ".lock")
	assert.NoError(t, err)

	require.NoError(t, writeLine(t, sink, strings.Repeat("f", 20)))
	assert.Equal(t, uint64(1), sink.Rotations())
	require.NoError(t, sink.Close())
}

func TestRotationErrorUnwrap(t *testing.T) {
	inner := errors.New("disk gone")
	err := &RotationError{Path: "/x.log", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "/x.log")
}
