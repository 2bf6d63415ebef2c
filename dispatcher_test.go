// FILE: dispatcher_test.go
package multilog

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/multilog/formatter"
)

// stubSink records writes and fails on demand
type stubSink struct {
	name       string
	threshold  atomic.Int64
	lines      []string
	writeErr   error
	flushErr   error
	flushCount int
	closed     bool
}

func newStubSink(name string, threshold int64) *stubSink {
	s := &stubSink{name: name}
	s.threshold.Store(threshold)
	return s
}

func (s *stubSink) Name() string { return s.name }

func (s *stubSink) Write(p []byte) (int, error) {
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	s.lines = append(s.lines, strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

func (s *stubSink) Flush() error {
	s.flushCount++
	return s.flushErr
}

func (s *stubSink) Close() error {
	s.closed = true
	return nil
}

func (s *stubSink) Threshold() int64 { return s.threshold.Load() }

func (s *stubSink) SetThreshold(level int64) { s.threshold.Store(level) }

func newTestDispatcher(observer ErrorObserver, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		fmt:            formatter.New("%message", ""),
		autoFlushLevel: LevelError,
		retryWindow:    100 * time.Millisecond,
		observer:       observer,
		state:          &State{},
	}
	for _, s := range sinks {
		d.slots = append(d.slots, &sinkSlot{sink: s})
	}
	return d
}

func rec(level int64, msg string, at time.Time) Record {
	return Record{Seq: 1, Time: at, Level: level, Goroutine: 1, Message: msg}
}

func TestDispatchPerSinkThresholds(t *testing.T) {
	verbose := newStubSink("verbose", LevelTrace)
	errorsOnly := newStubSink("errors", LevelError)
	d := newTestDispatcher(nil, verbose, errorsOnly)

	now := time.Now()
	d.Dispatch(rec(LevelInfo, "info msg", now))
	d.Dispatch(rec(LevelError, "error msg", now))

	assert.Equal(t, []string{"info msg", "error msg"}, verbose.lines)
	assert.Equal(t, []string{"error msg"}, errorsOnly.lines)
}

func TestDispatchErrorIsolation(t *testing.T) {
	var observed []error
	broken := newStubSink("broken", LevelTrace)
	broken.writeErr = errors.New("pipe closed")
	healthy := newStubSink("healthy", LevelTrace)
	d := newTestDispatcher(func(err error) { observed = append(observed, err) }, broken, healthy)

	d.Dispatch(rec(LevelInfo, "keep going", time.Now()))

	// The failure on the first sink never blocks the second
	assert.Empty(t, broken.lines)
	assert.Equal(t, []string{"keep going"}, healthy.lines)

	require.Len(t, observed, 1)
	var sinkErr *SinkError
	require.ErrorAs(t, observed[0], &sinkErr)
	assert.Equal(t, "broken", sinkErr.Sink)
	assert.Equal(t, "write", sinkErr.Op)
	assert.Equal(t, uint64(1), d.state.SinkErrors.Load())
}

func TestDispatchDegradedWindow(t *testing.T) {
	flaky := newStubSink("flaky", LevelTrace)
	flaky.writeErr = errors.New("transient")
	d := newTestDispatcher(nil, flaky)

	base := time.Now()
	d.Dispatch(rec(LevelInfo, "fails", base))
	assert.Equal(t, uint64(1), d.state.SinkErrors.Load())

	// Inside the retry window the sink is skipped, not retried
	flaky.writeErr = nil
	d.Dispatch(rec(LevelInfo, "skipped", base.Add(50*time.Millisecond)))
	assert.Empty(t, flaky.lines)
	assert.Equal(t, uint64(1), d.state.TotalDroppedLogs.Load())

	// After the window elapses the sink is attempted again
	d.Dispatch(rec(LevelInfo, "retried", base.Add(150*time.Millisecond)))
	assert.Equal(t, []string{"retried"}, flaky.lines)
}

// rotationFailSink simulates a file sink whose write landed but whose
// backup shift failed
type rotationFailSink struct {
	stubSink
}

func (s *rotationFailSink) Write(p []byte) (int, error) {
	s.lines = append(s.lines, strings.TrimSuffix(string(p), "\n"))
	return len(p), &RotationError{Path: "/tmp/x.log", Err: errors.New("rename failed")}
}

func TestDispatchRotationFailureNotDegrading(t *testing.T) {
	var observed []error
	s := &rotationFailSink{}
	s.stubSink.name = "rotating"
	s.threshold.Store(LevelTrace)
	d := newTestDispatcher(func(err error) { observed = append(observed, err) }, s)

	base := time.Now()
	d.Dispatch(rec(LevelInfo, "first", base))
	d.Dispatch(rec(LevelInfo, "second", base.Add(time.Millisecond)))

	// Both records written: rotation trouble is reported but the sink is
	// neither degraded nor counted as a write failure
	assert.Equal(t, []string{"first", "second"}, s.lines)
	assert.Zero(t, d.state.SinkErrors.Load())
	require.Len(t, observed, 2)
	var rotErr *RotationError
	assert.ErrorAs(t, observed[0], &rotErr)
}

func TestDispatchAutoFlush(t *testing.T) {
	s := newStubSink("s", LevelTrace)
	d := newTestDispatcher(nil, s)

	now := time.Now()
	d.Dispatch(rec(LevelInfo, "routine", now))
	assert.Zero(t, s.flushCount, "routine records must not flush")

	d.Dispatch(rec(LevelError, "critical", now))
	assert.Equal(t, 1, s.flushCount, "critical records flush immediately")

	d.Dispatch(rec(LevelFatal, "fatal", now))
	assert.Equal(t, 2, s.flushCount)
}

func TestFlushAllIdempotent(t *testing.T) {
	s := newStubSink("s", LevelTrace)
	d := newTestDispatcher(nil, s)

	d.Dispatch(rec(LevelInfo, "dirty", time.Now()))
	d.FlushAll()
	assert.Equal(t, 1, s.flushCount)

	// Nothing written since: no further I/O
	d.FlushAll()
	assert.Equal(t, 1, s.flushCount)

	d.Dispatch(rec(LevelInfo, "dirty again", time.Now()))
	d.FlushAll()
	assert.Equal(t, 2, s.flushCount)
}

func TestDispatchFlushFailure(t *testing.T) {
	var observed []error
	s := newStubSink("s", LevelTrace)
	s.flushErr = errors.New("sync failed")
	d := newTestDispatcher(func(err error) { observed = append(observed, err) }, s)

	d.Dispatch(rec(LevelInfo, "x", time.Now()))
	d.FlushAll()

	require.Len(t, observed, 1)
	var sinkErr *SinkError
	require.ErrorAs(t, observed[0], &sinkErr)
	assert.Equal(t, "flush", sinkErr.Op)

	// A failed flush leaves the slot dirty, so the next FlushAll retries
	s.flushErr = nil
	d.FlushAll()
	assert.Equal(t, 2, s.flushCount)
}

func TestDispatcherClose(t *testing.T) {
	a := newStubSink("a", LevelTrace)
	b := newStubSink("b", LevelTrace)
	d := newTestDispatcher(nil, a, b)

	d.Dispatch(rec(LevelInfo, "x", time.Now()))
	require.NoError(t, d.Close())

	assert.True(t, a.closed)
	assert.True(t, b.closed)
	assert.Equal(t, 1, a.flushCount, "close performs a final flush")
}

func TestDispatcherFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableConsole = true
	cfg.EnableFile = true
	cfg.FilePath = t.TempDir() + "/d.log"

	st := &State{}
	d, err := newDispatcher(cfg, nil, st)
	require.NoError(t, err)
	defer d.Close()

	// Console first, file second: dispatch order follows configuration
	sinks := d.Sinks()
	require.Len(t, sinks, 2)
	assert.Contains(t, sinks[0].Name(), "console")
	assert.Contains(t, sinks[1].Name(), "file")
}
