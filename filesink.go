// FILE: filesink.go
package multilog

import (
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// RotatingFileSink appends formatted lines to an active file and rotates it
// into numbered backups once its size crosses the configured maximum.
// Backups live at path.1 (newest) through path.N (oldest); the oldest is
// evicted when the retention window is full.
//
// All rotation state is owned by the single dispatch path, so writes and
// rotation need no locking. The optional advisory file lock only guards
// against a second process rotating the same generation concurrently.
type RotatingFileSink struct {
	path       string
	file       *os.File
	size       int64
	maxSize    int64
	maxBackups int
	dirty      bool
	threshold  atomic.Int64
	rotations  *atomic.Uint64
	lockFile   *os.File
}

// NewRotatingFileSink opens (or creates) the active file at path. An
// unusable parent directory is a configuration error here, never a
// per-write error. maxSize must be positive; maxBackups of zero means the
// full file is discarded on rotation.
func NewRotatingFileSink(path string, maxSize int64, maxBackups int, threshold int64, lock bool) (*RotatingFileSink, error) {
	if maxSize <= 0 {
		return nil, fmtErrorf("max file size must be positive: %d", maxSize)
	}
	if maxBackups < 0 {
		return nil, fmtErrorf("max backups cannot be negative: %d", maxBackups)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmtErrorf("failed to create log directory '%s': %w", dir, err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmtErrorf("failed to open log file '%s': %w", path, err)
	}

	s := &RotatingFileSink{
		path:       path,
		file:       file,
		maxSize:    maxSize,
		maxBackups: maxBackups,
		rotations:  &atomic.Uint64{},
	}
	s.threshold.Store(threshold)

	if fi, errStat := file.Stat(); errStat == nil {
		s.size = fi.Size()
	}

	if lock {
		lf, errLock := os.OpenFile(path+".lock", os.O_CREATE|os.O_RDWR, 0644)
		if errLock != nil {
			_ = file.Close()
			return nil, fmtErrorf("failed to open rotation lock file '%s.lock': %w", path, errLock)
		}
		s.lockFile = lf
	}

	return s, nil
}

func (s *RotatingFileSink) Name() string { return "file(" + s.path + ")" }

// Write appends one line and rotates afterwards if the size limit was
// crossed. Rotation never splits a record: a single oversized record lands
// whole in the file that gets rotated out. A rotation failure is returned
// as *RotationError while the written record stays in the over-size file.
func (s *RotatingFileSink) Write(p []byte) (int, error) {
	n, err := s.file.Write(p)
	if n > 0 {
		s.size += int64(n)
		s.dirty = true
	}
	if err != nil {
		return n, err
	}
	if s.size > s.maxSize {
		if rerr := s.rotate(); rerr != nil {
			return n, &RotationError{Path: s.path, Err: rerr}
		}
	}
	return n, nil
}

// rotate closes the active file, shifts path.k to path.(k+1) evicting the
// backup beyond the retention window, renames the active file into the
// position-1 slot, and opens a fresh file at the original path.
func (s *RotatingFileSink) rotate() error {
	if s.lockFile != nil {
		if err := unix.Flock(int(s.lockFile.Fd()), unix.LOCK_EX); err == nil {
			defer unix.Flock(int(s.lockFile.Fd()), unix.LOCK_UN)
		}
	}

	if s.dirty {
		_ = s.file.Sync()
	}
	// The old handle is unusable after this either way
	_ = s.file.Close()

	err := s.shiftBackups()
	if err == nil {
		var file *os.File
		file, err = os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			s.file = file
			s.size = 0
			s.dirty = false
			s.rotations.Add(1)
			return nil
		}
	}

	// Fall back to appending to the existing over-size file rather than
	// losing records.
	file, openErr := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if openErr != nil {
		return combineErrors(err, openErr)
	}
	s.file = file
	s.dirty = false
	if fi, errStat := file.Stat(); errStat == nil {
		s.size = fi.Size()
	}
	return err
}

// shiftBackups performs the rename cascade for one rotation
func (s *RotatingFileSink) shiftBackups() error {
	if s.maxBackups == 0 {
		return os.Remove(s.path)
	}

	// Evict the oldest backup, then shift the rest up one slot
	oldest := s.backupPath(s.maxBackups)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		return err
	}
	for k := s.maxBackups - 1; k >= 1; k-- {
		from := s.backupPath(k)
		if _, err := os.Stat(from); err != nil {
			continue
		}
		if err := os.Rename(from, s.backupPath(k+1)); err != nil {
			return err
		}
	}
	return os.Rename(s.path, s.backupPath(1))
}

func (s *RotatingFileSink) backupPath(k int) string {
	return s.path + "." + strconv.Itoa(k)
}

// Flush syncs the file only when something was written since the last
// flush, so back-to-back flushes cost no additional I/O.
func (s *RotatingFileSink) Flush() error {
	if !s.dirty {
		return nil
	}
	if err := s.file.Sync(); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

func (s *RotatingFileSink) Close() error {
	err := s.Flush()
	if cerr := s.file.Close(); cerr != nil {
		err = combineErrors(err, cerr)
	}
	if s.lockFile != nil {
		if cerr := s.lockFile.Close(); cerr != nil {
			err = combineErrors(err, cerr)
		}
	}
	return err
}

func (s *RotatingFileSink) Threshold() int64 { return s.threshold.Load() }

func (s *RotatingFileSink) SetThreshold(level int64) { s.threshold.Store(level) }

// Rotations returns the number of completed rotations
func (s *RotatingFileSink) Rotations() uint64 { return s.rotations.Load() }
