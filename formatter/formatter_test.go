// FILE: formatter/formatter_test.go
package formatter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBasicPattern(t *testing.T) {
	f := New("[%level] %message", "")
	out := f.Format(1, time.Now(), 0, 7, "hello")
	assert.Equal(t, "[INFO] hello", string(out))
}

func TestFormatAllTokens(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	f := New("%timestamp|%level|%thread|%seq|%message", "2006-01-02")
	out := f.Format(42, ts, 8, 19, "boom")
	assert.Equal(t, "2025-03-14|ERROR|19|42|boom", string(out))
}

func TestFormatNoTrailingNewline(t *testing.T) {
	f := New("%message", "")
	out := f.Format(1, time.Now(), 0, 1, "line")
	require.NotEmpty(t, out)
	assert.NotEqual(t, byte('\n'), out[len(out)-1])
}

func TestFormatLiteralPercent(t *testing.T) {
	f := New("100%% %message", "")
	out := f.Format(1, time.Now(), 0, 1, "done")
	assert.Equal(t, "100% done", string(out))
}

func TestFormatUnknownToken(t *testing.T) {
	// Unrecognized tokens pass through as literal text
	f := New("%bogus %message", "")
	out := f.Format(1, time.Now(), 0, 1, "x")
	assert.Equal(t, "%bogus x", string(out))
}

func TestFormatMessageVerbatim(t *testing.T) {
	// The message may contain token-like text; it is never re-expanded
	f := New("%message", "")
	out := f.Format(1, time.Now(), 0, 1, "rate is 100%level")
	assert.Equal(t, "rate is 100%level", string(out))
}

func TestFormatBufferReuse(t *testing.T) {
	f := New("%message", "")
	first := string(f.Format(1, time.Now(), 0, 1, "first"))
	second := string(f.Format(2, time.Now(), 0, 1, "second"))
	assert.Equal(t, "first", first)
	assert.Equal(t, "second", second)
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level int64
		want  string
	}{
		{-8, "TRACE"},
		{-4, "DEBUG"},
		{0, "INFO"},
		{4, "WARN"},
		{8, "ERROR"},
		{12, "FATAL"},
		{3, "LEVEL(3)"},
		{-100, "LEVEL(-100)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelString(tt.level))
	}
}

type stringerVal struct{}

func (stringerVal) String() string { return "stringer" }

func TestAppendValue(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"string", "abc", "abc"},
		{"bytes", []byte("raw"), "raw"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"uint64", uint64(9), "9"},
		{"float", 1.5, "1.5"},
		{"bool", true, "true"},
		{"duration", 250 * time.Millisecond, "250ms"},
		{"error", errors.New("bad"), "bad"},
		{"stringer", stringerVal{}, "stringer"},
		{"nil", nil, "nil"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppendValue(nil, tt.v)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestAppendValueStructFallback(t *testing.T) {
	type point struct{ X, Y int }
	got := string(AppendValue(nil, point{1, 2}))
	assert.Contains(t, got, "1")
	assert.Contains(t, got, "2")
}
