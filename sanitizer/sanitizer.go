// FILE: sanitizer/sanitizer.go
// Package sanitizer neutralizes terminal control sequences in log lines
// bound for an interactive console. Non-printable runes are hex-encoded as
// "<XXYY>" over their UTF-8 bytes. It is opt-in on the console sink only;
// file sinks always receive log bytes verbatim.
package sanitizer

import (
	"strconv"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// Sanitizer rewrites non-printable runes in place of a reused buffer.
// One Sanitizer belongs to one writer goroutine.
type Sanitizer struct {
	buf []byte
}

// New creates a Sanitizer instance
func New() *Sanitizer {
	return &Sanitizer{buf: make([]byte, 0, 256)}
}

// Sanitize returns data with every non-printable rune hex-encoded. The
// returned slice is valid until the next call. Tabs pass through; they are
// the only control character a console line legitimately contains.
func (s *Sanitizer) Sanitize(data []byte) []byte {
	clean := true
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if !printable(r) {
			clean = false
			break
		}
		i += size
	}
	if clean {
		return data
	}

	s.buf = s.buf[:0]
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if printable(r) {
			s.buf = append(s.buf, data[i:i+size]...)
		} else {
			s.buf = appendHex(s.buf, data[i:i+size])
		}
		i += size
	}
	return s.buf
}

// SanitizeString is the string-input convenience form of Sanitize
func (s *Sanitizer) SanitizeString(data string) string {
	return string(s.Sanitize([]byte(data)))
}

func printable(r rune) bool {
	if r == '\t' {
		return true
	}
	return strconv.IsPrint(r)
}

// appendHex encodes raw bytes as "<XXYY>"
func appendHex(buf []byte, b []byte) []byte {
	buf = append(buf, '<')
	for _, c := range b {
		buf = append(buf, hexDigits[c>>4], hexDigits[c&0x0f])
	}
	return append(buf, '>')
}
