package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "url unchanged",
			input:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42",
			expected: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "forged log line in title",
			input:    "title\nERROR: fake entry",
			expected: "title\\nERROR: fake entry",
		},
		{
			name:     "CRLF from tool output",
			input:    "frame=1\r\nframe=2",
			expected: "frame=1\\r\\nframe=2",
		},
		{
			name:     "tab escaped",
			input:    "col1\tcol2",
			expected: "col1\\tcol2",
		},
		{
			name:     "null byte escaped",
			input:    "before\x00after",
			expected: "before\\x00after",
		},
		{
			name:     "ANSI color from yt-dlp escaped",
			input:    "\x1b[0;31mERROR:\x1b[0m Video unavailable",
			expected: "\\x1b[0;31mERROR:\\x1b[0m Video unavailable",
		},
		{
			name:     "DEL escaped",
			input:    "a\x7fb",
			expected: "a\\x7fb",
		},
		{
			name:     "unicode title preserved",
			input:    "ゴール集 ⚽ été",
			expected: "ゴール集 ⚽ été",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeForLog(tt.input))
		})
	}
}

func TestTail(t *testing.T) {
	t.Run("short input kept", func(t *testing.T) {
		assert.Equal(t, "exit 1", Tail("  exit 1\n", 64))
	})

	t.Run("long input keeps the end", func(t *testing.T) {
		in := strings.Repeat("x", 100) + "Conversion failed!"
		got := Tail(in, 18)
		assert.Equal(t, "...Conversion failed!", got)
	})

	t.Run("does not split runes", func(t *testing.T) {
		got := Tail(strings.Repeat("é", 10), 5)
		assert.Equal(t, "...éé", got)
	})

	t.Run("newlines escaped", func(t *testing.T) {
		assert.Equal(t, "a\\nb", Tail("a\nb", 10))
	})

	t.Run("zero length", func(t *testing.T) {
		assert.Equal(t, "", Tail("anything", 0))
	})
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	prev := output
	output = &buf
	t.Cleanup(func() {
		output = prev
		_ = SetLevel("info")
	})

	assert.NoError(t, SetLevel("warn"))
	Info.Print("hidden")
	Warn.Print("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	assert.NoError(t, SetLevel("DEBUG"))
	Debug.Print("debugging")
	assert.Contains(t, buf.String(), "debugging")

	assert.Error(t, SetLevel("verbose"))
}
