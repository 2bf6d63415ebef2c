// FILE: errors.go
package multilog

import (
	"fmt"
)

// ErrorObserver receives sink and rotation failures from a single Logger
// instance. It is called from the dispatch path (the processor goroutine in
// async mode, the logging goroutine in sync mode) and must not call back
// into the logger. A nil observer discards the errors; counters still track
// them either way.
type ErrorObserver func(err error)

// SinkError reports a failed write or flush on one sink. Other sinks are
// unaffected; the failing sink is skipped until its retry window elapses.
type SinkError struct {
	Sink string
	Op   string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("multilog: sink %s: %s failed: %v", e.Sink, e.Op, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

// RotationError reports a failed backup shift or reopen. The sink keeps
// appending to the over-size file, so no records are lost.
type RotationError struct {
	Path string
	Err  error
}

func (e *RotationError) Error() string {
	return fmt.Sprintf("multilog: rotation of %s failed: %v", e.Path, e.Err)
}

func (e *RotationError) Unwrap() error { return e.Err }
