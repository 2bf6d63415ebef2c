// FILE: heartbeat.go
package multilog

import "time"

// emitHeartbeat dispatches a periodic self-monitoring record carrying the
// handle's counters. It runs on the processor goroutine and hands the
// record straight to the dispatcher rather than re-entering the producer
// queue: a blocking producer parked in a send holds the enqueue lock, and
// the processor must never wait behind a queue it is responsible for
// draining. When the lock is contended the tick is skipped.
func (l *Logger) emitHeartbeat(ch <-chan Record, d *Dispatcher) {
	if !l.pushMu.TryLock() {
		return
	}

	// Everything already buffered carries a lower sequence number;
	// dispatch it before stamping the heartbeat so sink order stays
	// monotonic.
	l.drainPending(ch, d)

	now := time.Now()

	var uptime time.Duration
	if st, ok := l.state.StartTime.Load().(time.Time); ok {
		uptime = now.Sub(st)
	}

	rec := Record{
		Time:      now,
		Level:     LevelInfo,
		Goroutine: gid(),
		Message: renderMessage([]any{
			"heartbeat",
			"uptime_s", int64(uptime.Seconds()),
			"processed", l.state.TotalLogsProcessed.Load(),
			"dropped", l.state.TotalDroppedLogs.Load(),
			"rotations", l.state.TotalRotations.Load(),
			"sink_errors", l.state.SinkErrors.Load(),
			"queue_depth", len(ch),
		}),
	}
	rec.Seq = l.sequence.Add(1)
	l.pushMu.Unlock()

	d.Dispatch(rec)
	l.state.TotalLogsProcessed.Add(1)
}
