// FILE: logger.go
package multilog

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Logger is the user-facing handle. It owns the active configuration, the
// dispatcher with its sink set, and (in async mode) the record queue and
// processor goroutine.
type Logger struct {
	currentConfig atomic.Value // stores *Config
	dispatcher    atomic.Pointer[Dispatcher]
	state         State
	initMu        sync.Mutex // guards configuration and lifecycle transitions
	syncMu        sync.Mutex // serializes synchronous dispatch and sink swaps
	pushMu        sync.Mutex // orders sequence stamping with channel sends
	sequence      atomic.Uint64
	observer      ErrorObserver
	id            string
}

// Option configures a Logger at construction
type Option func(*Logger)

// WithErrorObserver installs the per-instance observer for sink and
// rotation failures. There is no process-global error hook.
func WithErrorObserver(fn ErrorObserver) Option {
	return func(l *Logger) {
		l.observer = fn
	}
}

// NewLogger creates a new Logger instance with default settings
func NewLogger(opts ...Option) *Logger {
	l := &Logger{id: uuid.NewString()}

	l.currentConfig.Store(DefaultConfig())

	l.state.IsInitialized.Store(false)
	l.state.ShutdownCalled.Store(false)
	l.state.ProcessorExited.Store(true)
	l.state.StartTime.Store(time.Now())

	// Closed channel initially so sends fail fast instead of nil-panicking
	initialChan := make(chan Record)
	close(initialChan)
	l.state.ActiveLogChannel.Store(initialChan)

	l.state.flushRequestChan = make(chan chan struct{}, 1)

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// ID returns the handle's unique instance id, used in diagnostics
func (l *Logger) ID() string { return l.id }

// ApplyConfig applies a validated configuration to the logger. It is also
// the reconfigure operation: the old sink set is drained and closed before
// the new one is installed, so records already accepted are never lost.
func (l *Logger) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}

	if err := cfg.Validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	return l.applyConfig(cfg.Clone())
}

// applyConfig is the internal implementation, assuming initMu is held
func (l *Logger) applyConfig(cfg *Config) error {
	oldCfg := l.getConfig()
	wasInitialized := l.state.IsInitialized.Load()
	wasStarted := l.state.Started.Load()

	if wasInitialized && !configRequiresRestart(oldCfg, cfg) {
		// Level-only change: visible to all threads on the next log call
		l.currentConfig.Store(cfg)
		return nil
	}

	// Build the replacement sink set first so a bad config changes nothing
	newDispatcher, err := newDispatcher(cfg, l.notify, &l.state)
	if err != nil {
		return fmtErrorf("invalid sink configuration: %w", err)
	}

	// Drain in-flight records against the old sink set before the swap
	if wasStarted {
		if err := l.Stop(); err != nil {
			_ = newDispatcher.Close()
			return fmtErrorf("failed to stop processor for reconfigure: %w", err)
		}
	}

	l.syncMu.Lock()
	old := l.dispatcher.Swap(newDispatcher)
	l.currentConfig.Store(cfg)
	l.syncMu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			l.notify(err)
		}
	}

	l.state.IsInitialized.Store(true)
	l.state.ShutdownCalled.Store(false)

	if wasStarted {
		return l.startLocked()
	}
	return nil
}

// GetConfig returns a copy of current configuration
func (l *Logger) GetConfig() *Config {
	return l.getConfig().Clone()
}

// SetLevel updates the global minimum level. Takes effect for all
// subsequently processed records, visible to all goroutines.
func (l *Logger) SetLevel(level int64) {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	cfg := l.getConfig().Clone()
	cfg.Level = level
	l.currentConfig.Store(cfg)
}

// Start begins log processing. Safe to call multiple times.
// Returns error if logger is not initialized.
func (l *Logger) Start() error {
	l.initMu.Lock()
	defer l.initMu.Unlock()
	return l.startLocked()
}

func (l *Logger) startLocked() error {
	if !l.state.IsInitialized.Load() {
		return fmtErrorf("logger not initialized, call ApplyConfig first")
	}

	if l.state.Started.CompareAndSwap(false, true) {
		cfg := l.getConfig()
		if cfg.Async {
			ch := make(chan Record, cfg.QueueCapacity)
			l.state.ActiveLogChannel.Store(ch)
			l.state.ProcessorExited.Store(false)
			go l.processRecords(ch, l.dispatcher.Load())
		}
	}

	return nil
}

// Stop halts log processing after draining queued records. Can be
// restarted with Start(). Returns nil if already stopped.
func (l *Logger) Stop(timeout ...time.Duration) error {
	if !l.state.Started.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	cfg := l.getConfig()
	if !cfg.Async {
		return nil
	}

	var effectiveTimeout time.Duration
	if len(timeout) > 0 {
		effectiveTimeout = timeout[0]
	} else {
		effectiveTimeout = 2 * time.Duration(cfg.FlushIntervalMs) * time.Millisecond
	}

	// Replace the channel with a closed one so producers fail fast, then
	// close the real channel to signal the processor to drain and exit
	ch := l.getCurrentLogChannel()
	closedChan := make(chan Record)
	close(closedChan)
	l.state.ActiveLogChannel.Store(closedChan)
	if ch != closedChan {
		close(ch)
	}

	deadline := time.Now().Add(effectiveTimeout)
	for time.Now().Before(deadline) {
		if l.state.ProcessorExited.Load() {
			return nil
		}
		time.Sleep(minWaitTime)
	}

	if !l.state.ProcessorExited.Load() {
		return fmtErrorf("processor did not exit within timeout (%v)", effectiveTimeout)
	}
	return nil
}

// Shutdown gracefully closes the logger, draining pending records and
// closing every sink with a final flush. Terminal; the handle cannot be
// restarted afterwards.
func (l *Logger) Shutdown(timeout ...time.Duration) error {
	if !l.state.ShutdownCalled.CompareAndSwap(false, true) {
		return nil
	}

	if !l.state.IsInitialized.Load() {
		l.state.ProcessorExited.Store(true)
		return nil
	}

	var stopErr error
	if l.state.Started.Load() {
		stopErr = l.Stop(timeout...)
	}

	l.state.IsInitialized.Store(false)

	var finalErr error
	l.syncMu.Lock()
	d := l.dispatcher.Swap(nil)
	l.syncMu.Unlock()
	if d != nil {
		if err := d.Close(); err != nil {
			finalErr = combineErrors(finalErr, err)
		}
	}

	if stopErr != nil {
		finalErr = combineErrors(finalErr, stopErr)
	}

	return finalErr
}

// Flush blocks until every record accepted before the call has been
// written and each sink's storage has been flushed, or the timeout
// elapses. On timeout the processor keeps draining in the background; only
// the wait is abandoned.
func (l *Logger) Flush(timeout time.Duration) error {
	l.state.flushMutex.Lock()
	defer l.state.flushMutex.Unlock()

	if !l.state.IsInitialized.Load() || l.state.ShutdownCalled.Load() {
		return fmtErrorf("logger not initialized or already shut down")
	}

	cfg := l.getConfig()
	if !cfg.Async {
		// Sync mode has no processor; an initialized logger can always
		// flush its sinks, started or not
		l.syncMu.Lock()
		if d := l.dispatcher.Load(); d != nil {
			d.FlushAll()
		}
		l.syncMu.Unlock()
		return nil
	}

	if !l.state.Started.Load() {
		return fmtErrorf("logger not started")
	}

	// Handshake with the processor: it drains everything queued ahead of
	// the request, flushes the sinks, then closes the confirmation channel
	confirmChan := make(chan struct{})

	select {
	case l.state.flushRequestChan <- confirmChan:
		// Request sent
	case <-time.After(minWaitTime): // Short timeout to prevent blocking if processor is stuck
		return fmtErrorf("failed to send flush request to processor (possible deadlock or high load)")
	}

	select {
	case <-confirmChan:
		return nil
	case <-time.After(timeout):
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}

// Trace logs a message at trace level
func (l *Logger) Trace(args ...any) {
	l.log(LevelTrace, args...)
}

// Debug logs a message at debug level
func (l *Logger) Debug(args ...any) {
	l.log(LevelDebug, args...)
}

// Info logs a message at info level
func (l *Logger) Info(args ...any) {
	l.log(LevelInfo, args...)
}

// Warn logs a message at warning level
func (l *Logger) Warn(args ...any) {
	l.log(LevelWarn, args...)
}

// Error logs a message at error level
func (l *Logger) Error(args ...any) {
	l.log(LevelError, args...)
}

// Fatal logs a message at fatal level. It does not terminate the process;
// critical records are auto-flushed so they survive a crash that follows.
func (l *Logger) Fatal(args ...any) {
	l.log(LevelFatal, args...)
}

// Log writes a record at an arbitrary level
func (l *Logger) Log(level int64, args ...any) {
	l.log(level, args...)
}

// getConfig returns the current configuration (thread-safe)
func (l *Logger) getConfig() *Config {
	return l.currentConfig.Load().(*Config)
}

// notify routes an internal failure to the observer, falling back to
// stderr when configured and no observer is installed
func (l *Logger) notify(err error) {
	if l.observer != nil {
		l.observer(err)
		return
	}
	if l.getConfig().InternalErrorsToStderr {
		fmt.Fprintf(os.Stderr, "multilog[%s]: %v\n", l.id, err)
	}
}
