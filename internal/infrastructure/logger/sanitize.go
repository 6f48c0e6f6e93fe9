package logger

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var escapes = map[rune]string{
	'\n':   "\\n",
	'\r':   "\\r",
	'\t':   "\\t",
	'\x00': "\\x00",
}

// SanitizeForLog escapes control characters so untrusted text (titles, URLs, tool output)
// cannot forge log lines or inject terminal escapes. Printable Unicode is kept as is.
func SanitizeForLog(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if esc, ok := escapes[r]; ok {
			b.WriteString(esc)
			continue
		}
		if r < 32 || r == 127 {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Tail keeps the last n bytes of s, cut on a rune boundary and sanitized for logging.
// Subprocess stderr is reduced with Tail before it is logged or stored.
func Tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 {
		return ""
	}
	if len(s) > n {
		cut := len(s) - n
		for cut < len(s) && !utf8.RuneStart(s[cut]) {
			cut++
		}
		s = "..." + s[cut:]
	}
	return SanitizeForLog(s)
}
