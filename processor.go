// FILE: processor.go
package multilog

import (
	"time"
)

// processRecords is the single consumer for the record queue. Draining the
// channel in receive order preserves the global sequence order stamped at
// enqueue time, so every sink observes non-decreasing sequence numbers.
func (l *Logger) processRecords(ch <-chan Record, d *Dispatcher) {
	defer l.state.ProcessorExited.Store(true)

	cfg := l.getConfig()

	flushTicker := time.NewTicker(time.Duration(cfg.FlushIntervalMs) * time.Millisecond)
	defer flushTicker.Stop()

	var heartbeatChan <-chan time.Time
	if cfg.HeartbeatIntervalS > 0 {
		heartbeatTicker := time.NewTicker(time.Duration(cfg.HeartbeatIntervalS) * time.Second)
		defer heartbeatTicker.Stop()
		heartbeatChan = heartbeatTicker.C
	}

	for {
		select {
		case rec, ok := <-ch:
			if !ok {
				// Channel closed by Stop; everything queued has been
				// received already, final flush and exit
				d.FlushAll()
				return
			}
			d.Dispatch(rec)
			l.state.TotalLogsProcessed.Add(1)

		case confirmChan := <-l.state.flushRequestChan:
			// Flush barrier: records enqueued before the Flush call are
			// already in the channel, so draining it before flushing
			// covers them all
			l.drainPending(ch, d)
			d.FlushAll()
			close(confirmChan)

		case <-flushTicker.C:
			d.FlushAll()

		case <-heartbeatChan:
			l.emitHeartbeat(ch, d)
		}
	}
}

// drainPending dispatches everything currently buffered without blocking
func (l *Logger) drainPending(ch <-chan Record, d *Dispatcher) {
	for {
		select {
		case rec, ok := <-ch:
			if !ok {
				return
			}
			d.Dispatch(rec)
			l.state.TotalLogsProcessed.Add(1)
		default:
			return
		}
	}
}
