// FILE: config.go
package multilog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/lixenwraith/config"
)

// Config holds all logger configuration values
type Config struct {
	// Filtering and formatting
	Level           int64  `toml:"level"`            // Global minimum level
	Pattern         string `toml:"pattern"`          // Line pattern, see package formatter
	TimestampFormat string `toml:"timestamp_format"` // Go time layout for %timestamp

	// Dispatch mode
	Async          bool   `toml:"async"`
	QueueCapacity  int64  `toml:"queue_capacity"`  // Bounded queue size when async
	OverflowPolicy string `toml:"overflow_policy"` // "block", "drop_oldest", or "drop_newest"

	// Flushing
	FlushIntervalMs int64 `toml:"flush_interval_ms"` // Periodic sink flush interval
	AutoFlushLevel  int64 `toml:"auto_flush_level"`  // Records at/above flush immediately

	// Degraded-sink handling
	RetryWindowMs int64 `toml:"retry_window_ms"` // Skip window after a sink write failure

	// Console sink
	EnableConsole   bool   `toml:"enable_console"`
	ConsoleTarget   string `toml:"console_target"` // "stdout" or "stderr"
	ConsoleLevel    int64  `toml:"console_level"`  // Sink-local threshold
	SanitizeConsole bool   `toml:"sanitize_console"`

	// Rotating file sink
	EnableFile  bool   `toml:"enable_file"`
	FilePath    string `toml:"file_path"`     // Active log file; backups at path.1..path.N
	FileLevel   int64  `toml:"file_level"`    // Sink-local threshold
	MaxFileSize int64  `toml:"max_file_size"` // Bytes before rotation
	MaxBackups  int64  `toml:"max_backups"`   // Retained backup files
	FileLock    bool   `toml:"file_lock"`     // Advisory flock around the rotate step

	// Self-monitoring
	HeartbeatIntervalS int64 `toml:"heartbeat_interval_s"` // 0 disables heartbeat records

	// Internal error handling when no observer is installed
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"`
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Level:           LevelInfo,
	Pattern:         "[%timestamp] [%level] [%thread] %message",
	TimestampFormat: time.RFC3339Nano,

	Async:          false,
	QueueCapacity:  8192,
	OverflowPolicy: string(OverflowBlock),

	FlushIntervalMs: 3000,
	AutoFlushLevel:  LevelError,

	RetryWindowMs: 500,

	EnableConsole:   true,
	ConsoleTarget:   ConsoleStdout,
	ConsoleLevel:    LevelTrace,
	SanitizeConsole: false,

	EnableFile:  false,
	FilePath:    "./log/multilog.log",
	FileLevel:   LevelTrace,
	MaxFileSize: 10 * 1024 * 1024,
	MaxBackups:  5,
	FileLock:    false,

	HeartbeatIntervalS: 0,

	InternalErrorsToStderr: false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("multilog.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	// Extract values into our Config struct
	if err := extractConfig(loader, "multilog.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Pattern) == "" {
		return fmtErrorf("pattern cannot be empty")
	}

	if strings.TrimSpace(c.TimestampFormat) == "" {
		return fmtErrorf("timestamp_format cannot be empty")
	}

	if c.ConsoleTarget != ConsoleStdout && c.ConsoleTarget != ConsoleStderr {
		return fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", c.ConsoleTarget)
	}

	if !validOverflowPolicy(c.OverflowPolicy) {
		return fmtErrorf("invalid overflow_policy: '%s' (use block, drop_oldest, or drop_newest)", c.OverflowPolicy)
	}

	if c.Async && c.QueueCapacity <= 0 {
		return fmtErrorf("queue_capacity must be positive when async: %d", c.QueueCapacity)
	}

	if c.FlushIntervalMs <= 0 {
		return fmtErrorf("flush_interval_ms must be positive: %d", c.FlushIntervalMs)
	}

	if c.RetryWindowMs <= 0 {
		return fmtErrorf("retry_window_ms must be positive: %d", c.RetryWindowMs)
	}

	if !c.EnableConsole && !c.EnableFile {
		return fmtErrorf("configuration enables no sinks")
	}

	if c.EnableFile {
		if strings.TrimSpace(c.FilePath) == "" {
			return fmtErrorf("file_path cannot be empty when file sink is enabled")
		}
		if c.MaxFileSize <= 0 {
			return fmtErrorf("max_file_size must be positive when file sink is enabled: %d", c.MaxFileSize)
		}
		if c.MaxBackups < 0 {
			return fmtErrorf("max_backups cannot be negative: %d", c.MaxBackups)
		}
	}

	if c.HeartbeatIntervalS < 0 {
		return fmtErrorf("heartbeat_interval_s cannot be negative: %d", c.HeartbeatIntervalS)
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

// configRequiresRestart reports whether swapping old for new needs the
// processor stopped and the sink set rebuilt. Level-only changes do not.
func configRequiresRestart(oldCfg, newCfg *Config) bool {
	restartFields := *newCfg
	restartFields.Level = oldCfg.Level
	return restartFields != *oldCfg
}
