package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/port"
)

const (
	defaultStderrLimit = 16 * 1024
	defaultWaitDelay   = 5 * time.Second
)

// Exec runs tools with os/exec. The wall-clock bound of each command kills the process
// when exceeded.
type Exec struct {
	StderrLimit int
	WaitDelay   time.Duration
}

func New() *Exec {
	return &Exec{
		StderrLimit: defaultStderrLimit,
		WaitDelay:   defaultWaitDelay,
	}
}

func (e *Exec) Run(ctx context.Context, cmd port.Command) (port.CommandResult, error) {
	if cmd.Name == "" {
		return port.CommandResult{}, fmt.Errorf("command name is required")
	}

	runCtx := ctx
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(runCtx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.WaitDelay = e.WaitDelay

	var stdout bytes.Buffer
	stderr := newTailBuffer(e.StderrLimit)

	var lines *lineSplitter
	if cmd.OnLine == nil {
		c.Stdout = &stdout
		c.Stderr = stderr
	} else {
		lines = newLineSplitter(cmd.OnLine)
		c.Stdout = io.MultiWriter(&stdout, lines.stream())
		c.Stderr = io.MultiWriter(stderr, lines.stream())
	}

	start := time.Now()
	err := c.Run()
	if lines != nil {
		lines.flush()
	}

	res := port.CommandResult{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		res.ExitCode = -1
		return res, fmt.Errorf("%s exceeded %s: %w", cmd.Name, cmd.Timeout, domain.ErrTimeout)
	}
	if ctx.Err() != nil {
		res.ExitCode = -1
		return res, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// -1 when the process was killed by a signal
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("run %s: %w", cmd.Name, err)
	}
	return res, nil
}

// lineSplitter turns the output streams into whole lines for a callback. Carriage returns
// end a line too, so progress bars arrive per update. Writers are set on the command
// directly, which keeps WaitDelay in force when a grandchild holds the pipes open.
type lineSplitter struct {
	mu      sync.Mutex
	onLine  func(string)
	streams []*lineStream
}

type lineStream struct {
	s       *lineSplitter
	partial []byte
}

func newLineSplitter(onLine func(string)) *lineSplitter {
	return &lineSplitter{onLine: onLine}
}

func (l *lineSplitter) stream() io.Writer {
	ls := &lineStream{s: l}
	l.streams = append(l.streams, ls)
	return ls
}

func (ls *lineStream) Write(p []byte) (int, error) {
	ls.s.mu.Lock()
	defer ls.s.mu.Unlock()

	for _, b := range p {
		if b != '\n' && b != '\r' {
			ls.partial = append(ls.partial, b)
			continue
		}
		if len(ls.partial) > 0 {
			ls.s.onLine(string(ls.partial))
			ls.partial = ls.partial[:0]
		}
	}
	return len(p), nil
}

// flush delivers unterminated trailing output. Call after the command has exited.
func (l *lineSplitter) flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ls := range l.streams {
		if len(ls.partial) > 0 {
			l.onLine(string(ls.partial))
			ls.partial = nil
		}
	}
}

// tailBuffer keeps only the last limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	buf   []byte
}

func newTailBuffer(limit int) *tailBuffer {
	if limit <= 0 {
		limit = defaultStderrLimit
	}
	return &tailBuffer{limit: limit}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.limit; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}

var _ port.CommandRunner = (*Exec)(nil)
