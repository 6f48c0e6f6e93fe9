// Package jsonfile is a job registry persisted as one JSON document. Processes sharing the
// data directory coordinate through a lock directory next to the file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/infrastructure/logger"
	"github.com/bnema/snip/internal/port"
)

const (
	fileName    = "jobs.json"
	lockDirName = "jobs.json.lock"
)

// Registry rereads the document before every operation. Writes hold the process mutex and
// the directory lock across read, change and atomic rewrite, so a guarded transition is
// atomic across every process using the same directory.
type Registry struct {
	mu      sync.Mutex
	path    string
	lockDir string
	jobs    map[string]*domain.Job
	now     func() time.Time
}

func NewRegistry(dataDir string) (*Registry, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	r := &Registry{
		path:    filepath.Join(dataDir, fileName),
		lockDir: filepath.Join(dataDir, lockDirName),
		jobs:    make(map[string]*domain.Job),
		now:     time.Now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.refresh(); err != nil {
		return nil, err
	}
	return r, nil
}

// refresh replaces the snapshot with the document on disk. Must be called with mu held.
func (r *Registry) refresh() error {
	jobs := make(map[string]*domain.Job)

	data, err := os.ReadFile(r.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read %s: %w", r.path, err)
	}
	if len(data) > 0 {
		var list []*domain.Job
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("parse %s: %w", r.path, err)
		}
		for _, j := range list {
			jobs[j.ID] = j
		}
	}
	r.jobs = jobs
	return nil
}

// save must be called with mu and the directory lock held.
func (r *Registry) save() error {
	list := make([]*domain.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		list = append(list, j)
	}
	sort.Slice(list, func(i, k int) bool {
		return list[i].CreatedAt.Before(list[k].CreatedAt)
	})

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpPath, r.path)
}

// view runs fn over a fresh snapshot.
func (r *Registry) view(fn func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refresh(); err != nil {
		return err
	}
	fn()
	return nil
}

// update runs fn over a fresh snapshot under the directory lock and saves when fn reports a
// change. A failed save leaves the snapshot dirty; the next operation rereads the file.
func (r *Registry) update(ctx context.Context, fn func() (bool, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, err := acquireLock(ctx, r.lockDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.release(); err != nil {
			logger.Warn.Printf("jsonfile registry: %v", err)
		}
	}()

	if err := r.refresh(); err != nil {
		return err
	}
	changed, err := fn()
	if err != nil || !changed {
		return err
	}
	if err := r.save(); err != nil {
		return fmt.Errorf("persist %s: %w", r.path, err)
	}
	return nil
}

// mutate applies fn to a copy of job id and persists it only if fn succeeds.
func (r *Registry) mutate(ctx context.Context, id string, fn func(j *domain.Job) error) error {
	return r.update(ctx, func() (bool, error) {
		current, ok := r.jobs[id]
		if !ok {
			return false, domain.ErrNotFound
		}
		next := clone(current)
		if err := fn(next); err != nil {
			return false, err
		}
		r.jobs[id] = next
		return true, nil
	})
}

func (r *Registry) Create(ctx context.Context, job *domain.Job) error {
	return r.update(ctx, func() (bool, error) {
		if _, exists := r.jobs[job.ID]; exists {
			return false, fmt.Errorf("job %s already exists", job.ID)
		}
		r.jobs[job.ID] = clone(job)
		return true, nil
	})
}

func (r *Registry) Get(ctx context.Context, id string) (*domain.Job, error) {
	var found *domain.Job
	if err := r.view(func() {
		if j, ok := r.jobs[id]; ok {
			found = clone(j)
		}
	}); err != nil {
		return nil, err
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

func (r *Registry) ClaimNext(ctx context.Context, workerID string) (*domain.Job, error) {
	var claimed *domain.Job
	err := r.update(ctx, func() (bool, error) {
		var oldest *domain.Job
		for _, j := range r.jobs {
			if j.Status != domain.JobStatusQueued {
				continue
			}
			if oldest == nil || j.CreatedAt.Before(oldest.CreatedAt) ||
				(j.CreatedAt.Equal(oldest.CreatedAt) && j.ID < oldest.ID) {
				oldest = j
			}
		}
		if oldest == nil {
			return false, nil
		}
		next := clone(oldest)
		next.Claim(workerID, r.now())
		r.jobs[next.ID] = next
		claimed = clone(next)
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("claim next job: %w", err)
	}
	return claimed, nil
}

func (r *Registry) Claim(ctx context.Context, id, workerID string) (bool, error) {
	err := r.mutate(ctx, id, func(j *domain.Job) error {
		if !j.Claim(workerID, r.now()) {
			return domain.ErrNotOwner
		}
		return nil
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotOwner), errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (r *Registry) UpdateProgress(ctx context.Context, id, workerID string, progress int, stage string) error {
	return r.mutate(ctx, id, func(j *domain.Job) error {
		if !j.OwnedBy(workerID) || progress < j.Progress {
			return domain.ErrNotOwner
		}
		j.Advance(progress, stage, r.now())
		return nil
	})
}

func (r *Registry) UpdateSource(ctx context.Context, id, workerID, title, formatID string) error {
	return r.mutate(ctx, id, func(j *domain.Job) error {
		if !j.OwnedBy(workerID) {
			return domain.ErrNotOwner
		}
		now := r.now()
		j.Title = title
		j.FormatID = formatID
		j.HeartbeatAt = now
		j.UpdatedAt = now
		return nil
	})
}

func (r *Registry) Heartbeat(ctx context.Context, id, workerID string) error {
	return r.mutate(ctx, id, func(j *domain.Job) error {
		if !j.OwnedBy(workerID) {
			return domain.ErrNotOwner
		}
		j.HeartbeatAt = r.now()
		return nil
	})
}

func (r *Registry) Complete(ctx context.Context, id, workerID string, ref domain.ArtifactRef) error {
	return r.mutate(ctx, id, func(j *domain.Job) error {
		if !j.OwnedBy(workerID) {
			return domain.ErrNotOwner
		}
		j.MarkDone(ref, r.now())
		return nil
	})
}

func (r *Registry) Fail(ctx context.Context, id, workerID string, jerr *domain.JobError) error {
	if jerr == nil || !jerr.Kind.Valid() {
		return fmt.Errorf("fail job %s: a classified error is required", id)
	}
	stored := &domain.JobError{Kind: jerr.Kind, Message: jerr.Message, Detail: jerr.Detail}
	return r.mutate(ctx, id, func(j *domain.Job) error {
		if !j.OwnedBy(workerID) {
			return domain.ErrNotOwner
		}
		j.MarkFailed(stored, r.now())
		return nil
	})
}

func (r *Registry) ListStale(ctx context.Context, cutoff time.Time) ([]*domain.Job, error) {
	stale, err := r.list(func(j *domain.Job) bool {
		return j.Status == domain.JobStatusWorking && j.HeartbeatAt.Before(cutoff)
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(stale, func(i, k int) bool {
		return stale[i].HeartbeatAt.Before(stale[k].HeartbeatAt)
	})
	return stale, nil
}

func (r *Registry) ListDone(ctx context.Context) ([]*domain.Job, error) {
	done, err := r.list(func(j *domain.Job) bool {
		return j.Status == domain.JobStatusDone
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(done, func(i, k int) bool {
		return done[i].CompletedAt.Before(done[k].CompletedAt)
	})
	return done, nil
}

func (r *Registry) list(match func(j *domain.Job) bool) ([]*domain.Job, error) {
	var out []*domain.Job
	err := r.view(func() {
		for _, j := range r.jobs {
			if match(j) {
				out = append(out, clone(j))
			}
		}
	})
	return out, err
}

func (r *Registry) MarkLost(ctx context.Context, id string, cutoff time.Time) (bool, error) {
	err := r.mutate(ctx, id, func(j *domain.Job) error {
		if j.Status != domain.JobStatusWorking || !j.HeartbeatAt.Before(cutoff) {
			return domain.ErrNotOwner
		}
		j.MarkFailed(&domain.JobError{
			Kind:    domain.KindWorkerLost,
			Message: "worker stopped reporting progress",
			Detail:  fmt.Sprintf("no heartbeat since %s", cutoff.UTC().Format(time.RFC3339)),
		}, r.now())
		return nil
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotOwner), errors.Is(err, domain.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (r *Registry) ExpireQueued(ctx context.Context, cutoff time.Time) (int, error) {
	return r.deleteWhere(ctx, func(j *domain.Job) bool {
		return j.Status == domain.JobStatusQueued && j.CreatedAt.Before(cutoff)
	})
}

func (r *Registry) DeleteByStorageKey(ctx context.Context, key string) (int, error) {
	return r.deleteWhere(ctx, func(j *domain.Job) bool {
		return j.Status == domain.JobStatusDone && j.Artifact != nil && j.Artifact.StorageKey == key
	})
}

func (r *Registry) PurgeTerminal(ctx context.Context, cutoff time.Time) (int, error) {
	return r.deleteWhere(ctx, func(j *domain.Job) bool {
		return j.Status == domain.JobStatusError && j.CompletedAt.Before(cutoff)
	})
}

func (r *Registry) deleteWhere(ctx context.Context, match func(j *domain.Job) bool) (int, error) {
	removed := 0
	err := r.update(ctx, func() (bool, error) {
		for id, j := range r.jobs {
			if match(j) {
				delete(r.jobs, id)
				removed++
			}
		}
		return removed > 0, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (r *Registry) CountByStatus(ctx context.Context) (map[domain.JobStatus]int, error) {
	counts := make(map[domain.JobStatus]int)
	err := r.view(func() {
		for _, j := range r.jobs {
			counts[j.Status]++
		}
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *Registry) Close() error {
	return nil
}

func clone(j *domain.Job) *domain.Job {
	c := *j
	if j.Artifact != nil {
		a := *j.Artifact
		c.Artifact = &a
	}
	if j.Error != nil {
		e := *j.Error
		c.Error = &e
	}
	return &c
}

var _ port.JobRegistry = (*Registry)(nil)
