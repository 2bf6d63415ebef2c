// FILE: constant.go
package multilog

import (
	"time"
)

// Log level constants, ordered. Comparisons decide filtering.
const (
	LevelTrace int64 = -8
	LevelDebug int64 = -4
	LevelInfo  int64 = 0
	LevelWarn  int64 = 4
	LevelError int64 = 8
	LevelFatal int64 = 12
)

// OverflowPolicy governs producer behavior when the async queue is full.
type OverflowPolicy string

const (
	// OverflowBlock suspends the producer until the processor drains a slot.
	OverflowBlock OverflowPolicy = "block"
	// OverflowDropOldest evicts the head record to admit the new one.
	OverflowDropOldest OverflowPolicy = "drop_oldest"
	// OverflowDropNewest rejects the incoming record and counts it as dropped.
	OverflowDropNewest OverflowPolicy = "drop_newest"
)

// Console targets
const (
	ConsoleStdout = "stdout"
	ConsoleStderr = "stderr"
)

// Timers
const (
	// Minimum wait time used throughout the package
	minWaitTime = 10 * time.Millisecond
)
