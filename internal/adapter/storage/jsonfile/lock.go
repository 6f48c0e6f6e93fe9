package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/snip/internal/infrastructure/logger"
)

const (
	lockOwnerFile = "owner.json"
	lockPoll      = 10 * time.Millisecond
	lockWait      = 10 * time.Second
	// A lock older than this is left over from a crashed process. Holders only keep it for
	// one read-modify-write of the document.
	lockStaleAfter = 30 * time.Second
)

var errLockTimeout = errors.New("timed out waiting for registry lock")

type lockOwner struct {
	PID       int    `json:"pid"`
	CreatedAt string `json:"created_at"`
	Hostname  string `json:"hostname,omitempty"`
}

// dirLock is a cross-process mutex: whoever creates the directory holds it.
type dirLock struct {
	dir string
}

func acquireLock(ctx context.Context, dir string) (*dirLock, error) {
	deadline := time.Now().Add(lockWait)
	for {
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			writeOwner(dir)
			return &dirLock{dir: dir}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("acquire registry lock %s: %w", dir, err)
		}
		if breakStale(dir) {
			continue
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s (%s)", errLockTimeout, dir, describeOwner(dir))
		}

		timer := time.NewTimer(lockPoll)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *dirLock) release() error {
	_ = os.Remove(filepath.Join(l.dir, lockOwnerFile))
	if err := os.Remove(l.dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("release registry lock %s: %w", l.dir, err)
	}
	return nil
}

func writeOwner(dir string) {
	host, _ := os.Hostname()
	data, err := json.Marshal(lockOwner{
		PID:       os.Getpid(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Hostname:  strings.TrimSpace(host),
	})
	if err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(dir, lockOwnerFile), data, 0o600)
}

func describeOwner(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, lockOwnerFile))
	if err != nil {
		return "owner unknown"
	}
	var owner lockOwner
	if err := json.Unmarshal(data, &owner); err != nil || owner.PID <= 0 {
		return "owner unknown"
	}
	return fmt.Sprintf("pid=%d created_at=%s host=%s", owner.PID, owner.CreatedAt, owner.Hostname)
}

// breakStale removes a lock directory abandoned by a crashed holder.
func breakStale(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil {
		// released in the meantime
		return os.IsNotExist(err)
	}
	if time.Since(info.ModTime()) < lockStaleAfter {
		return false
	}
	logger.Warn.Printf("breaking stale registry lock %s (%s)", dir, describeOwner(dir))
	_ = os.Remove(filepath.Join(dir, lockOwnerFile))
	return os.Remove(dir) == nil
}
