package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

var (
	Info  *log.Logger
	Error *log.Logger
	Debug *log.Logger
	Warn  *log.Logger
)

const logFlags = log.Ldate | log.Ltime | log.LUTC | log.Lshortfile

var output io.Writer = os.Stdout

func init() {
	Info = log.New(output, "INFO: ", logFlags)
	Error = log.New(output, "ERROR: ", logFlags)
	Debug = log.New(io.Discard, "DEBUG: ", logFlags)
	Warn = log.New(output, "WARN: ", logFlags)
}

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

// SetLevel silences every logger below level. Debug is off unless level is "debug".
func SetLevel(level string) error {
	min, ok := levels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return fmt.Errorf("unknown log level %q", level)
	}
	pick := func(l int) io.Writer {
		if l < min {
			return io.Discard
		}
		return output
	}
	Debug.SetOutput(pick(0))
	Info.SetOutput(pick(1))
	Warn.SetOutput(pick(2))
	Error.SetOutput(pick(3))
	return nil
}
