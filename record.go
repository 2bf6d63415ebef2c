// FILE: record.go
package multilog

import (
	"time"

	"github.com/lixenwraith/multilog/formatter"
)

// Record is one immutable log event. Seq is stamped from the handle's
// atomic counter under the enqueue lock, so FIFO drain order equals
// sequence order even when producer goroutines race.
type Record struct {
	Seq       uint64
	Time      time.Time // carries both wall and monotonic clock
	Level     int64
	Goroutine uint64
	Message   string

	unreportedDrops uint64 // non-zero only on drop-report records
}

// renderMessage joins args into a single message string, space-separated.
// A single string argument passes through without copying.
func renderMessage(args []any) string {
	if len(args) == 1 {
		if s, ok := args[0].(string); ok {
			return s
		}
	}
	var buf []byte
	for i, arg := range args {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = formatter.AppendValue(buf, arg)
	}
	return string(buf)
}

// getCurrentLogChannel safely retrieves the current record channel
func (l *Logger) getCurrentLogChannel() chan Record {
	chVal := l.state.ActiveLogChannel.Load()
	return chVal.(chan Record)
}

// log constructs a Record and hands it to the active dispatch path.
// Sub-threshold records are dropped before construction to avoid wasted
// formatting work; sinks apply their own stricter thresholds later.
func (l *Logger) log(level int64, args ...any) {
	if !l.state.IsInitialized.Load() {
		return
	}

	cfg := l.getConfig()
	if level < cfg.Level {
		return
	}

	rec := Record{
		Time:      time.Now(),
		Level:     level,
		Goroutine: gid(),
		Message:   renderMessage(args),
	}

	if cfg.Async {
		l.sendRecord(rec, OverflowPolicy(cfg.OverflowPolicy))
	} else {
		l.dispatchInline(rec)
	}
}

// dispatchInline is the synchronous path: sequence stamping and sink I/O
// happen on the calling goroutine under a single mutex.
func (l *Logger) dispatchInline(rec Record) {
	l.syncMu.Lock()
	defer l.syncMu.Unlock()

	if l.state.ShutdownCalled.Load() {
		l.state.DroppedLogs.Add(1)
		l.state.TotalDroppedLogs.Add(1)
		return
	}

	rec.Seq = l.sequence.Add(1)
	d := l.dispatcher.Load()
	if d == nil {
		l.state.DroppedLogs.Add(1)
		l.state.TotalDroppedLogs.Add(1)
		return
	}
	d.Dispatch(rec)
	l.state.TotalLogsProcessed.Add(1)
}

// sendRecord enqueues per the overflow policy and surfaces drops through
// the counters once the queue accepts records again.
func (l *Logger) sendRecord(rec Record, policy OverflowPolicy) {
	if l.state.ShutdownCalled.Load() || !l.state.Started.Load() {
		l.handleFailedSend(rec)
		return
	}

	if !l.enqueue(&rec, policy) {
		l.handleFailedSend(rec)
		return
	}

	// DropOldest already accounts its evictions inline; the other policies
	// surface accumulated drops after a successful send
	if policy != OverflowDropOldest {
		l.reportDrops()
	}
}

// enqueue stamps the sequence and performs the policy-specific send under
// pushMu, so channel order is sequence order. Both the unlock and the
// recovery from a send on a channel closed by Stop/Shutdown are deferred:
// the lock is released on every exit path, panicking or not.
func (l *Logger) enqueue(rec *Record, policy OverflowPolicy) (ok bool) {
	l.pushMu.Lock()
	defer l.pushMu.Unlock()
	defer func() {
		if r := recover(); r != nil { // send on channel closed by Stop/Shutdown
			ok = false
		}
	}()

	rec.Seq = l.sequence.Add(1)
	ch := l.getCurrentLogChannel()

	switch policy {
	case OverflowBlock:
		// Producer-side backpressure: suspend until the processor drains
		// a slot. Other producers queue behind pushMu, preserving order.
		ch <- *rec
		return true

	case OverflowDropOldest:
		select {
		case ch <- *rec:
			return true
		default:
		}
		// Evict the head to admit the new record. The processor may win
		// the race for the head slot, in which case room exists.
		select {
		case <-ch:
			l.state.DroppedLogs.Add(1)
			l.state.TotalDroppedLogs.Add(1)
		default:
		}
		select {
		case ch <- *rec:
			return true
		default:
			return false
		}

	default: // OverflowDropNewest
		select {
		case ch <- *rec:
			return true
		default:
			return false
		}
	}
}

// reportDrops emits a drop-report record once the queue has room again.
// The carried count is restored by handleFailedSend if the report itself
// cannot be enqueued.
func (l *Logger) reportDrops() {
	droppedCount := l.state.DroppedLogs.Swap(0)
	if droppedCount == 0 {
		return
	}

	rec := Record{
		Time:            time.Now(),
		Level:           LevelError,
		Goroutine:       gid(),
		Message:         renderMessage([]any{"records dropped", "count", droppedCount}),
		unreportedDrops: droppedCount,
	}

	if !l.enqueue(&rec, OverflowDropNewest) {
		l.handleFailedSend(rec)
	}
}

// handleFailedSend restores or increments the drop counters
func (l *Logger) handleFailedSend(rec Record) {
	amountToAdd := uint64(1)
	if rec.unreportedDrops > 0 {
		amountToAdd = rec.unreportedDrops
	} else {
		l.state.TotalDroppedLogs.Add(1)
	}
	l.state.DroppedLogs.Add(amountToAdd)
}
