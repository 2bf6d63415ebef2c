// FILE: formatter/formatter.go
// Package formatter compiles a pattern string into a line formatter for log
// records. Recognized tokens: %timestamp, %level, %thread, %seq, %message,
// and %% for a literal percent. Unknown tokens pass through literally. The
// message is copied verbatim; the formatter makes no assumption about its
// encoding beyond treating it as an opaque byte sequence.
package formatter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// Token kinds produced by pattern compilation
const (
	tokLiteral = iota
	tokTimestamp
	tokLevel
	tokThread
	tokSeq
	tokMessage
)

// tokenNames maps pattern token names to kinds, longest-match order
var tokenNames = []struct {
	name string
	kind int
}{
	{"timestamp", tokTimestamp},
	{"message", tokMessage},
	{"thread", tokThread},
	{"level", tokLevel},
	{"seq", tokSeq},
}

type segment struct {
	kind    int
	literal string
}

// Formatter maps a record to a formatted line. Formatting is a pure
// function of its inputs; the internal buffer is reused between calls, so
// one Formatter belongs to exactly one writer goroutine.
type Formatter struct {
	segs            []segment
	timestampFormat string
	buf             []byte
}

// New compiles pattern into a Formatter. timestampFormat is a Go time
// layout; an empty string selects RFC3339Nano.
func New(pattern, timestampFormat string) *Formatter {
	if timestampFormat == "" {
		timestampFormat = time.RFC3339Nano
	}
	return &Formatter{
		segs:            compile(pattern),
		timestampFormat: timestampFormat,
		buf:             make([]byte, 0, 1024),
	}
}

// compile splits the pattern into literal and token segments
func compile(pattern string) []segment {
	var segs []segment
	var lit []byte

	flushLit := func() {
		if len(lit) > 0 {
			segs = append(segs, segment{kind: tokLiteral, literal: string(lit)})
			lit = lit[:0]
		}
	}

	for i := 0; i < len(pattern); {
		if pattern[i] != '%' {
			lit = append(lit, pattern[i])
			i++
			continue
		}
		if i+1 < len(pattern) && pattern[i+1] == '%' {
			lit = append(lit, '%')
			i += 2
			continue
		}
		matched := false
		for _, tn := range tokenNames {
			if len(pattern) >= i+1+len(tn.name) && pattern[i+1:i+1+len(tn.name)] == tn.name {
				flushLit()
				segs = append(segs, segment{kind: tn.kind})
				i += 1 + len(tn.name)
				matched = true
				break
			}
		}
		if !matched {
			// Unknown token: the percent sign passes through literally
			lit = append(lit, '%')
			i++
		}
	}
	flushLit()
	return segs
}

// Format renders one record into the formatter's buffer and returns it.
// The returned slice is valid until the next Format call. No trailing
// newline is appended.
func (f *Formatter) Format(seq uint64, ts time.Time, level int64, goroutine uint64, msg string) []byte {
	f.buf = f.buf[:0]
	for _, seg := range f.segs {
		switch seg.kind {
		case tokLiteral:
			f.buf = append(f.buf, seg.literal...)
		case tokTimestamp:
			f.buf = ts.AppendFormat(f.buf, f.timestampFormat)
		case tokLevel:
			f.buf = append(f.buf, LevelString(level)...)
		case tokThread:
			f.buf = strconv.AppendUint(f.buf, goroutine, 10)
		case tokSeq:
			f.buf = strconv.AppendUint(f.buf, seq, 10)
		case tokMessage:
			f.buf = append(f.buf, msg...)
		}
	}
	return f.buf
}

// LevelString converts integer level values to their display name
func LevelString(level int64) string {
	switch level {
	case -8:
		return "TRACE"
	case -4:
		return "DEBUG"
	case 0:
		return "INFO"
	case 4:
		return "WARN"
	case 8:
		return "ERROR"
	case 12:
		return "FATAL"
	default:
		return fmt.Sprintf("LEVEL(%d)", level)
	}
}

// AppendValue appends the string form of v to buf. Scalar types are
// rendered directly; everything else falls back to go-spew so structures
// stay readable in log output.
func AppendValue(buf []byte, v any) []byte {
	switch val := v.(type) {
	case string:
		return append(buf, val...)
	case []byte:
		return append(buf, val...)
	case int:
		return strconv.AppendInt(buf, int64(val), 10)
	case int64:
		return strconv.AppendInt(buf, val, 10)
	case uint:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint64:
		return strconv.AppendUint(buf, val, 10)
	case float32:
		return strconv.AppendFloat(buf, float64(val), 'f', -1, 32)
	case float64:
		return strconv.AppendFloat(buf, val, 'f', -1, 64)
	case bool:
		return strconv.AppendBool(buf, val)
	case time.Duration:
		return append(buf, val.String()...)
	case time.Time:
		return val.AppendFormat(buf, time.RFC3339Nano)
	case error:
		return append(buf, val.Error()...)
	case fmt.Stringer:
		return append(buf, val.String()...)
	case nil:
		return append(buf, "nil"...)
	default:
		s := spew.Sprintf("%#v", val)
		return append(buf, s...)
	}
}
