// FILE: sink.go
package multilog

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/lixenwraith/multilog/sanitizer"
)

// Sink is a destination that accepts formatted log lines. Write and Flush
// are called only from the owning dispatch path (the processor goroutine in
// async mode, the logging goroutine under syncMu in sync mode), so sinks do
// not lock internally. Threshold is read and written from any goroutine.
type Sink interface {
	// Name identifies the sink in diagnostics
	Name() string
	// Write appends one formatted line, including the trailing newline
	Write(p []byte) (int, error)
	// Flush pushes buffered data toward durable storage
	Flush() error
	// Close releases the sink after a final flush
	Close() error
	// Threshold returns the sink-local minimum level
	Threshold() int64
	// SetThreshold updates the sink-local minimum level
	SetThreshold(level int64)
}

// ConsoleSink writes lines to stdout, stderr, or an arbitrary io.Writer.
type ConsoleSink struct {
	w         io.Writer
	name      string
	threshold atomic.Int64
	san       *sanitizer.Sanitizer
}

// NewConsoleSink creates a console sink for the given target ("stdout" or
// "stderr"). sanitize enables control-sequence protection for terminal
// output; the message bytes are otherwise copied verbatim.
func NewConsoleSink(target string, threshold int64, sanitize bool) *ConsoleSink {
	var w io.Writer
	if target == ConsoleStderr {
		w = os.Stderr
	} else {
		w = os.Stdout
	}
	s := &ConsoleSink{w: w, name: "console(" + target + ")"}
	s.threshold.Store(threshold)
	if sanitize {
		s.san = sanitizer.New()
	}
	return s
}

// NewWriterSink wraps an arbitrary io.Writer as a sink. Used by tests and
// by applications that redirect console output.
func NewWriterSink(name string, w io.Writer, threshold int64) *ConsoleSink {
	s := &ConsoleSink{w: w, name: name}
	s.threshold.Store(threshold)
	return s
}

func (s *ConsoleSink) Name() string { return s.name }

func (s *ConsoleSink) Write(p []byte) (int, error) {
	if s.san != nil && len(p) > 0 {
		// Sanitize the line body; the trailing newline stays as-is.
		// Escaping may grow the output, so n reports input bytes consumed
		// to keep the io.Writer contract (n <= len(p)).
		body := s.san.Sanitize(p[:len(p)-1])
		if _, err := s.w.Write(body); err != nil {
			return 0, err
		}
		if _, err := s.w.Write([]byte{'\n'}); err != nil {
			return 0, err
		}
		return len(p), nil
	}
	return s.w.Write(p)
}

// Flush is a no-op: console writes are unbuffered
func (s *ConsoleSink) Flush() error { return nil }

func (s *ConsoleSink) Close() error { return nil }

func (s *ConsoleSink) Threshold() int64 { return s.threshold.Load() }

func (s *ConsoleSink) SetThreshold(level int64) { s.threshold.Store(level) }
