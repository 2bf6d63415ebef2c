// FILE: default.go
package multilog

import (
	"sync"
	"time"
)

// Package-level default logger for applications that want a single shared
// instance without threading a handle through every call site.
var (
	defaultLogger   *Logger
	defaultLoggerMu sync.Mutex
)

// getDefaultLogger returns the package-level logger, creating it on first use
func getDefaultLogger() *Logger {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewLogger()
	}
	return defaultLogger
}

// Init applies cfg to the default logger and starts it. A nil cfg applies
// the defaults.
func Init(cfg *Config) error {
	l := getDefaultLogger()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := l.ApplyConfig(cfg); err != nil {
		return err
	}
	return l.Start()
}

// InitWithFile loads configuration from a TOML file into the default logger
func InitWithFile(path string) error {
	cfg, err := NewConfigFromFile(path)
	if err != nil {
		return err
	}
	return Init(cfg)
}

// Trace logs at trace level on the default logger
func Trace(args ...any) {
	getDefaultLogger().Trace(args...)
}

// Debug logs at debug level on the default logger
func Debug(args ...any) {
	getDefaultLogger().Debug(args...)
}

// Info logs at info level on the default logger
func Info(args ...any) {
	getDefaultLogger().Info(args...)
}

// Warn logs at warning level on the default logger
func Warn(args ...any) {
	getDefaultLogger().Warn(args...)
}

// Error logs at error level on the default logger
func Error(args ...any) {
	getDefaultLogger().Error(args...)
}

// Fatal logs at fatal level on the default logger
func Fatal(args ...any) {
	getDefaultLogger().Fatal(args...)
}

// SetLevel updates the default logger's global minimum level
func SetLevel(level int64) {
	getDefaultLogger().SetLevel(level)
}

// Flush flushes the default logger
func Flush(timeout time.Duration) error {
	return getDefaultLogger().Flush(timeout)
}

// Shutdown closes the default logger
func Shutdown(timeout ...time.Duration) error {
	return getDefaultLogger().Shutdown(timeout...)
}
