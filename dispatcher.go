// FILE: dispatcher.go
package multilog

import (
	"time"

	"github.com/lixenwraith/multilog/formatter"
)

// sinkSlot pairs a sink with its dispatch-path-local state. degradedUntil
// and dirty are touched only by the owning dispatch goroutine.
type sinkSlot struct {
	sink          Sink
	degradedUntil time.Time
	dirty         bool
}

// Dispatcher owns an ordered sink set and routes each record to every sink
// whose threshold it satisfies. It is built once per configuration and
// replaced wholesale on reconfigure; the old sink set is drained and closed
// before the new one takes over.
type Dispatcher struct {
	fmt            *formatter.Formatter
	slots          []*sinkSlot
	autoFlushLevel int64
	retryWindow    time.Duration
	observer       ErrorObserver
	state          *State
}

// newDispatcher builds the sink set described by cfg. A sink that cannot be
// constructed is a configuration error; nothing is partially installed.
func newDispatcher(cfg *Config, observer ErrorObserver, st *State) (*Dispatcher, error) {
	d := &Dispatcher{
		fmt:            formatter.New(cfg.Pattern, cfg.TimestampFormat),
		autoFlushLevel: cfg.AutoFlushLevel,
		retryWindow:    time.Duration(cfg.RetryWindowMs) * time.Millisecond,
		observer:       observer,
		state:          st,
	}

	if cfg.EnableConsole {
		sink := NewConsoleSink(cfg.ConsoleTarget, cfg.ConsoleLevel, cfg.SanitizeConsole)
		d.slots = append(d.slots, &sinkSlot{sink: sink})
	}

	if cfg.EnableFile {
		sink, err := NewRotatingFileSink(cfg.FilePath, cfg.MaxFileSize, int(cfg.MaxBackups), cfg.FileLevel, cfg.FileLock)
		if err != nil {
			d.closeSlots()
			return nil, err
		}
		sink.rotations = &st.TotalRotations
		d.slots = append(d.slots, &sinkSlot{sink: sink})
	}

	if len(d.slots) == 0 {
		return nil, fmtErrorf("configuration enables no sinks")
	}

	return d, nil
}

// Dispatch formats the record once and writes it to every eligible sink in
// configured order. A failure on one sink never prevents the remaining
// sinks from being attempted.
func (d *Dispatcher) Dispatch(rec Record) {
	line := d.fmt.Format(rec.Seq, rec.Time, rec.Level, rec.Goroutine, rec.Message)
	line = append(line, '\n')
	now := rec.Time

	for _, slot := range d.slots {
		if rec.Level < slot.sink.Threshold() {
			continue
		}
		if !slot.degradedUntil.IsZero() {
			if now.Before(slot.degradedUntil) {
				d.state.DroppedLogs.Add(1)
				d.state.TotalDroppedLogs.Add(1)
				continue
			}
			slot.degradedUntil = time.Time{}
		}

		if _, err := slot.sink.Write(line); err != nil {
			if rerr, ok := err.(*RotationError); ok {
				// The record was written; only the backup shift failed.
				// The sink keeps appending to the over-size file.
				slot.dirty = true
				d.notify(rerr)
			} else {
				slot.degradedUntil = now.Add(d.retryWindow)
				d.state.SinkErrors.Add(1)
				d.notify(&SinkError{Sink: slot.sink.Name(), Op: "write", Err: err})
				continue
			}
		} else {
			slot.dirty = true
		}

		// Critical records are pushed to durable storage immediately
		if rec.Level >= d.autoFlushLevel {
			d.flushSlot(slot)
		}
	}
}

// FlushAll flushes every sink that has unflushed writes. Calling it twice
// in a row performs no additional I/O.
func (d *Dispatcher) FlushAll() {
	for _, slot := range d.slots {
		d.flushSlot(slot)
	}
}

func (d *Dispatcher) flushSlot(slot *sinkSlot) {
	if !slot.dirty {
		return
	}
	if err := slot.sink.Flush(); err != nil {
		d.state.SinkErrors.Add(1)
		d.notify(&SinkError{Sink: slot.sink.Name(), Op: "flush", Err: err})
		return
	}
	slot.dirty = false
}

// Close flushes and closes every sink, combining errors
func (d *Dispatcher) Close() error {
	d.FlushAll()
	return d.closeSlots()
}

func (d *Dispatcher) closeSlots() error {
	var finalErr error
	for _, slot := range d.slots {
		if err := slot.sink.Close(); err != nil {
			finalErr = combineErrors(finalErr, err)
		}
	}
	d.slots = nil
	return finalErr
}

// SetThresholds applies a level to every sink, used by Logger.SetLevel when
// callers want sink thresholds to follow the global minimum.
func (d *Dispatcher) SetThresholds(level int64) {
	for _, slot := range d.slots {
		slot.sink.SetThreshold(level)
	}
}

// Sinks returns the sinks in dispatch order
func (d *Dispatcher) Sinks() []Sink {
	sinks := make([]Sink, 0, len(d.slots))
	for _, slot := range d.slots {
		sinks = append(sinks, slot.sink)
	}
	return sinks
}

func (d *Dispatcher) notify(err error) {
	if d.observer != nil {
		d.observer(err)
	}
}
