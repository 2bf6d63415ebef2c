// FILE: state.go
package multilog

import (
	"sync"
	"sync/atomic"
)

// State encapsulates the runtime state of the logger
type State struct {
	IsInitialized   atomic.Bool
	ShutdownCalled  atomic.Bool
	Started         atomic.Bool
	ProcessorExited atomic.Bool // Tracks if the processor goroutine is running or has exited

	flushRequestChan chan chan struct{} // Channel to request a flush barrier
	flushMutex       sync.Mutex         // Protect concurrent Flush calls

	ActiveLogChannel atomic.Value // stores chan Record

	// Counters reported by Stats, heartbeats, and the prometheus collector
	DroppedLogs        atomic.Uint64 // Drops not yet surfaced in a drop report
	TotalDroppedLogs   atomic.Uint64 // Drops over the handle lifetime
	TotalLogsProcessed atomic.Uint64 // Records dispatched to the sink set
	TotalRotations     atomic.Uint64 // Completed file rotations
	SinkErrors         atomic.Uint64 // Failed sink writes and flushes

	StartTime atomic.Value // stores time.Time for uptime calculation
}

// Stats is a point-in-time snapshot of the handle's counters
type Stats struct {
	Processed  uint64
	Dropped    uint64
	Rotations  uint64
	SinkErrors uint64
	QueueDepth int
}

// Stats returns a snapshot of the logger's counters. QueueDepth is zero in
// synchronous mode.
func (l *Logger) Stats() Stats {
	s := Stats{
		Processed:  l.state.TotalLogsProcessed.Load(),
		Dropped:    l.state.TotalDroppedLogs.Load(),
		Rotations:  l.state.TotalRotations.Load(),
		SinkErrors: l.state.SinkErrors.Load(),
	}
	if ch := l.getCurrentLogChannel(); ch != nil {
		s.QueueDepth = len(ch)
	}
	return s
}
