package port

import (
	"context"
	"time"

	"github.com/bnema/snip/internal/domain"
)

// JobRegistry is the shared job store. It doubles as the queue: queued records are claimed
// oldest first. Every transition after creation is a guarded compare-and-swap; a write whose
// guard does not hold returns domain.ErrNotOwner and changes nothing.
type JobRegistry interface {
	Create(ctx context.Context, job *domain.Job) error
	Get(ctx context.Context, id string) (*domain.Job, error)

	// ClaimNext atomically moves the oldest queued job to working. It returns nil, nil when
	// nothing is queued.
	ClaimNext(ctx context.Context, workerID string) (*domain.Job, error)
	// Claim atomically moves job id from queued to working. It returns false when the job
	// was not queued, including when another worker won the race.
	Claim(ctx context.Context, id, workerID string) (bool, error)

	// UpdateProgress requires status=working, owner=workerID and progress not decreasing.
	UpdateProgress(ctx context.Context, id, workerID string, progress int, stage string) error
	// UpdateSource records the resolved title and format of a working job.
	UpdateSource(ctx context.Context, id, workerID, title, formatID string) error
	Heartbeat(ctx context.Context, id, workerID string) error
	Complete(ctx context.Context, id, workerID string, ref domain.ArtifactRef) error
	Fail(ctx context.Context, id, workerID string, jerr *domain.JobError) error

	// ListStale returns working jobs whose heartbeat is older than cutoff.
	ListStale(ctx context.Context, cutoff time.Time) ([]*domain.Job, error)
	// ListDone returns every done job, oldest completion first.
	ListDone(ctx context.Context) ([]*domain.Job, error)
	// MarkLost fails a working job with WorkerLost if its heartbeat is still older than cutoff.
	MarkLost(ctx context.Context, id string, cutoff time.Time) (bool, error)

	// ExpireQueued deletes queued jobs created before cutoff.
	ExpireQueued(ctx context.Context, cutoff time.Time) (int, error)
	// DeleteByStorageKey reaps job records that reference an evicted artifact.
	DeleteByStorageKey(ctx context.Context, key string) (int, error)
	// PurgeTerminal deletes error records that completed before cutoff.
	PurgeTerminal(ctx context.Context, cutoff time.Time) (int, error)

	CountByStatus(ctx context.Context) (map[domain.JobStatus]int, error)

	Close() error
}
