// FILE: builder.go
package multilog

// Builder provides fluent configuration of a Logger. Terminal method Build
// applies the accumulated configuration; errors collected along the way
// surface there.
type Builder struct {
	cfg      *Config
	observer ErrorObserver
	err      error
}

// NewBuilder creates a builder starting from the default configuration
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

// Level sets the global minimum level
func (b *Builder) Level(level int64) *Builder {
	b.cfg.Level = level
	return b
}

// LevelString sets the global minimum level from a name
func (b *Builder) LevelString(level string) *Builder {
	lvl, err := Level(level)
	if err != nil {
		b.err = combineErrors(b.err, err)
		return b
	}
	b.cfg.Level = lvl
	return b
}

// Pattern sets the output line pattern
func (b *Builder) Pattern(pattern string) *Builder {
	b.cfg.Pattern = pattern
	return b
}

// TimestampFormat sets the Go time layout used for %timestamp
func (b *Builder) TimestampFormat(layout string) *Builder {
	b.cfg.TimestampFormat = layout
	return b
}

// Async enables queued dispatch with the given bounded capacity
func (b *Builder) Async(capacity int64) *Builder {
	b.cfg.Async = true
	b.cfg.QueueCapacity = capacity
	return b
}

// Sync selects inline dispatch on the calling goroutine
func (b *Builder) Sync() *Builder {
	b.cfg.Async = false
	return b
}

// OverflowPolicy sets the full-queue behavior for async mode
func (b *Builder) OverflowPolicy(policy OverflowPolicy) *Builder {
	b.cfg.OverflowPolicy = string(policy)
	return b
}

// FlushInterval sets the periodic flush interval in milliseconds
func (b *Builder) FlushInterval(ms int64) *Builder {
	b.cfg.FlushIntervalMs = ms
	return b
}

// AutoFlushLevel sets the level at or above which records flush immediately
func (b *Builder) AutoFlushLevel(level int64) *Builder {
	b.cfg.AutoFlushLevel = level
	return b
}

// RetryWindow sets how long a failed sink is skipped before retrying
func (b *Builder) RetryWindow(ms int64) *Builder {
	b.cfg.RetryWindowMs = ms
	return b
}

// Console enables the console sink on the given target
func (b *Builder) Console(target string, threshold int64) *Builder {
	b.cfg.EnableConsole = true
	b.cfg.ConsoleTarget = target
	b.cfg.ConsoleLevel = threshold
	return b
}

// NoConsole disables the console sink
func (b *Builder) NoConsole() *Builder {
	b.cfg.EnableConsole = false
	return b
}

// SanitizeConsole hex-escapes non-printable bytes on console output
func (b *Builder) SanitizeConsole(enable bool) *Builder {
	b.cfg.SanitizeConsole = enable
	return b
}

// File enables the rotating file sink
func (b *Builder) File(path string, maxSize, maxBackups int64) *Builder {
	b.cfg.EnableFile = true
	b.cfg.FilePath = path
	b.cfg.MaxFileSize = maxSize
	b.cfg.MaxBackups = maxBackups
	return b
}

// FileLevel sets the file sink's local threshold
func (b *Builder) FileLevel(level int64) *Builder {
	b.cfg.FileLevel = level
	return b
}

// FileLock enables the advisory cross-process rotation lock
func (b *Builder) FileLock(enable bool) *Builder {
	b.cfg.FileLock = enable
	return b
}

// Heartbeat enables periodic self-monitoring records
func (b *Builder) Heartbeat(intervalS int64) *Builder {
	b.cfg.HeartbeatIntervalS = intervalS
	return b
}

// InternalErrorsToStderr routes internal failures to stderr when no
// observer is installed
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// ErrorObserver installs the per-instance failure observer
func (b *Builder) ErrorObserver(fn ErrorObserver) *Builder {
	b.observer = fn
	return b
}

// Build creates a new Logger with the accumulated configuration applied.
// The logger still needs Start() to begin processing.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, fmtErrorf("builder validation failed: %w", b.err)
	}

	var opts []Option
	if b.observer != nil {
		opts = append(opts, WithErrorObserver(b.observer))
	}

	logger := NewLogger(opts...)
	if err := logger.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}
	return logger, nil
}
