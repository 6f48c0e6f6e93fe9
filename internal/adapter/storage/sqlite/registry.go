package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/snip/internal/adapter/storage/sqlite/sqlitedb"
	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/port"
)

const workerLostMessage = "worker stopped reporting progress"

// Registry is the job registry backed by the jobs table. Every transition is a single
// conditional UPDATE, so the guard and the write cannot be separated by another writer.
type Registry struct {
	store   *Store
	queries *sqlitedb.Queries
	now     func() time.Time
}

func NewRegistry(store *Store) *Registry {
	return &Registry{
		store:   store,
		queries: store.queries,
		now:     time.Now,
	}
}

func (r *Registry) Create(ctx context.Context, job *domain.Job) error {
	err := r.queries.InsertJob(ctx, sqlitedb.InsertJobParams{
		ID:              job.ID,
		Url:             job.URL,
		StartSec:        job.Start,
		EndSec:          job.End,
		RequestedFormat: job.RequestedFormat,
		RequestedHeight: int64(job.RequestedHeight),
		Stage:           job.Stage,
		CreatedAt:       toMillis(job.CreatedAt),
	})
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *Registry) Get(ctx context.Context, id string) (*domain.Job, error) {
	row, err := r.queries.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return jobFromRow(row), nil
}

func (r *Registry) ClaimNext(ctx context.Context, workerID string) (*domain.Job, error) {
	row, err := r.queries.ClaimNextJob(ctx, sqlitedb.ClaimNextJobParams{
		WorkerID:  workerID,
		Stage:     domain.StageResolving,
		StartedAt: toMillis(r.now()),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("claim next job: %w", err)
	}
	return jobFromRow(row), nil
}

func (r *Registry) Claim(ctx context.Context, id, workerID string) (bool, error) {
	n, err := r.queries.ClaimJob(ctx, sqlitedb.ClaimJobParams{
		ID:        id,
		WorkerID:  workerID,
		Stage:     domain.StageResolving,
		StartedAt: toMillis(r.now()),
	})
	if err != nil {
		return false, fmt.Errorf("claim job %s: %w", id, err)
	}
	return n == 1, nil
}

func (r *Registry) UpdateProgress(ctx context.Context, id, workerID string, progress int, stage string) error {
	n, err := r.queries.UpdateJobProgress(ctx, sqlitedb.UpdateJobProgressParams{
		ID:          id,
		WorkerID:    workerID,
		Progress:    int64(progress),
		Stage:       stage,
		HeartbeatAt: toMillis(r.now()),
	})
	return r.guarded(ctx, id, n, err)
}

func (r *Registry) UpdateSource(ctx context.Context, id, workerID, title, formatID string) error {
	n, err := r.queries.UpdateJobSource(ctx, sqlitedb.UpdateJobSourceParams{
		ID:          id,
		WorkerID:    workerID,
		Title:       title,
		FormatID:    formatID,
		HeartbeatAt: toMillis(r.now()),
	})
	return r.guarded(ctx, id, n, err)
}

func (r *Registry) Heartbeat(ctx context.Context, id, workerID string) error {
	n, err := r.queries.HeartbeatJob(ctx, sqlitedb.HeartbeatJobParams{
		ID:          id,
		WorkerID:    workerID,
		HeartbeatAt: toMillis(r.now()),
	})
	return r.guarded(ctx, id, n, err)
}

func (r *Registry) Complete(ctx context.Context, id, workerID string, ref domain.ArtifactRef) error {
	n, err := r.queries.CompleteJob(ctx, sqlitedb.CompleteJobParams{
		ID:          id,
		WorkerID:    workerID,
		Stage:       domain.StageDone,
		StorageKey:  ref.StorageKey,
		Checksum:    ref.Checksum,
		SizeBytes:   ref.SizeBytes,
		CompletedAt: toMillis(r.now()),
	})
	return r.guarded(ctx, id, n, err)
}

func (r *Registry) Fail(ctx context.Context, id, workerID string, jerr *domain.JobError) error {
	if jerr == nil || !jerr.Kind.Valid() {
		return fmt.Errorf("fail job %s: a classified error is required", id)
	}
	n, err := r.queries.FailJob(ctx, sqlitedb.FailJobParams{
		ID:           id,
		WorkerID:     workerID,
		Stage:        domain.StageFailed,
		ErrorKind:    string(jerr.Kind),
		ErrorMessage: jerr.Message,
		ErrorDetail:  jerr.Detail,
		CompletedAt:  toMillis(r.now()),
	})
	return r.guarded(ctx, id, n, err)
}

func (r *Registry) ListStale(ctx context.Context, cutoff time.Time) ([]*domain.Job, error) {
	rows, err := r.queries.ListStaleJobs(ctx, toMillis(cutoff))
	if err != nil {
		return nil, fmt.Errorf("list stale jobs: %w", err)
	}
	jobs := make([]*domain.Job, len(rows))
	for i, row := range rows {
		jobs[i] = jobFromRow(row)
	}
	return jobs, nil
}

func (r *Registry) ListDone(ctx context.Context) ([]*domain.Job, error) {
	rows, err := r.queries.ListDoneJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list done jobs: %w", err)
	}
	jobs := make([]*domain.Job, len(rows))
	for i, row := range rows {
		jobs[i] = jobFromRow(row)
	}
	return jobs, nil
}

func (r *Registry) MarkLost(ctx context.Context, id string, cutoff time.Time) (bool, error) {
	n, err := r.queries.MarkJobLost(ctx, sqlitedb.MarkJobLostParams{
		ID:           id,
		Stage:        domain.StageFailed,
		ErrorMessage: workerLostMessage,
		ErrorDetail:  fmt.Sprintf("no heartbeat since %s", cutoff.UTC().Format(time.RFC3339)),
		CompletedAt:  toMillis(r.now()),
		Cutoff:       toMillis(cutoff),
	})
	if err != nil {
		return false, fmt.Errorf("mark job %s lost: %w", id, err)
	}
	return n == 1, nil
}

func (r *Registry) ExpireQueued(ctx context.Context, cutoff time.Time) (int, error) {
	n, err := r.queries.ExpireQueuedJobs(ctx, toMillis(cutoff))
	return int(n), err
}

func (r *Registry) DeleteByStorageKey(ctx context.Context, key string) (int, error) {
	n, err := r.queries.DeleteJobsByStorageKey(ctx, key)
	return int(n), err
}

func (r *Registry) PurgeTerminal(ctx context.Context, cutoff time.Time) (int, error) {
	n, err := r.queries.PurgeTerminalJobs(ctx, toMillis(cutoff))
	return int(n), err
}

func (r *Registry) CountByStatus(ctx context.Context) (map[domain.JobStatus]int, error) {
	rows, err := r.queries.CountJobsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}
	counts := make(map[domain.JobStatus]int, len(rows))
	for _, row := range rows {
		counts[domain.JobStatus(row.Status)] = int(row.Count)
	}
	return counts, nil
}

func (r *Registry) Close() error {
	return r.store.Close()
}

// guarded turns a zero-row conditional update into ErrNotFound or ErrNotOwner.
func (r *Registry) guarded(ctx context.Context, id string, affected int64, err error) error {
	if err != nil {
		return fmt.Errorf("update job %s: %w", id, err)
	}
	if affected == 1 {
		return nil
	}
	if _, err := r.queries.GetJob(ctx, id); errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return domain.ErrNotOwner
}

func jobFromRow(row sqlitedb.Job) *domain.Job {
	job := &domain.Job{
		ID:              row.ID,
		URL:             row.Url,
		Start:           row.StartSec,
		End:             row.EndSec,
		RequestedFormat: row.RequestedFormat,
		RequestedHeight: int(row.RequestedHeight),
		Status:          domain.JobStatus(row.Status),
		Progress:        int(row.Progress),
		Stage:           row.Stage,
		WorkerID:        row.WorkerID,
		Title:           row.Title,
		FormatID:        row.FormatID,
		CreatedAt:       fromMillis(row.CreatedAt),
		UpdatedAt:       fromMillis(row.UpdatedAt),
		StartedAt:       fromMillis(row.StartedAt),
		HeartbeatAt:     fromMillis(row.HeartbeatAt),
		CompletedAt:     fromMillis(row.CompletedAt),
	}
	if row.StorageKey != "" {
		job.Artifact = &domain.ArtifactRef{
			StorageKey: row.StorageKey,
			Checksum:   row.Checksum,
			SizeBytes:  row.SizeBytes,
		}
	}
	if row.ErrorKind != "" {
		job.Error = &domain.JobError{
			Kind:    domain.ErrorKind(row.ErrorKind),
			Message: row.ErrorMessage,
			Detail:  row.ErrorDetail,
		}
	}
	return job
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

var _ port.JobRegistry = (*Registry)(nil)
