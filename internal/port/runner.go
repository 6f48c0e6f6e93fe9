package port

import (
	"context"
	"time"
)

// Command is one external tool invocation.
type Command struct {
	Name    string
	Args    []string
	Dir     string
	Timeout time.Duration
	// OnLine, when set, receives stdout and stderr lines as they are produced.
	OnLine func(line string)
}

// CommandResult holds what the tool left behind. Stdout is kept in full, Stderr is capped.
type CommandResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   string
	Duration time.Duration
}

func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandRunner runs external tools. A non-zero exit is reported through ExitCode, not as an
// error; the error is reserved for failures to start and for domain.ErrTimeout.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (CommandResult, error)
}
