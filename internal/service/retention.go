package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/infrastructure/logger"
	"github.com/bnema/snip/internal/metrics"
	"github.com/bnema/snip/internal/port"
)

type RetentionOptions struct {
	Policy   domain.RetentionPolicy
	QueueTTL time.Duration
	Interval time.Duration
}

type RetentionReport struct {
	Sweep       *domain.SweepResult `json:"sweep"`
	ReapedJobs  int                 `json:"reaped_jobs"`
	ExpiredJobs int                 `json:"expired_jobs"`
	PurgedJobs  int                 `json:"purged_jobs"`
}

// Retention sweeps the artifact store and keeps the registry consistent with it: a job that
// pointed at a deleted artifact is deleted with it.
type Retention struct {
	registry port.JobRegistry
	store    port.ArtifactStore
	metrics  *metrics.Collector
	opts     RetentionOptions
	now      func() time.Time
}

func NewRetention(registry port.JobRegistry, store port.ArtifactStore, collector *metrics.Collector, opts RetentionOptions) *Retention {
	if opts.Interval <= 0 {
		opts.Interval = 15 * time.Minute
	}
	return &Retention{
		registry: registry,
		store:    store,
		metrics:  collector,
		opts:     opts,
		now:      time.Now,
	}
}

func (r *Retention) Sweep(ctx context.Context) (*RetentionReport, error) {
	res, err := r.store.Sweep(ctx, r.opts.Policy)
	if err != nil {
		return nil, fmt.Errorf("sweep artifacts: %w", err)
	}
	report := &RetentionReport{Sweep: res}

	var errs []error
	for _, key := range res.DeletedKeys {
		n, err := r.registry.DeleteByStorageKey(ctx, key)
		if err != nil {
			errs = append(errs, fmt.Errorf("reap jobs for %s: %w", key, err))
			continue
		}
		report.ReapedJobs += n
	}
	orphans, err := r.reapOrphans(ctx)
	report.ReapedJobs += orphans
	if err != nil {
		errs = append(errs, err)
	}

	now := r.now()
	if r.opts.QueueTTL > 0 {
		if report.ExpiredJobs, err = r.registry.ExpireQueued(ctx, now.Add(-r.opts.QueueTTL)); err != nil {
			errs = append(errs, fmt.Errorf("expire queued jobs: %w", err))
		}
	}
	if r.opts.Policy.MaxAge > 0 {
		if report.PurgedJobs, err = r.registry.PurgeTerminal(ctx, now.Add(-r.opts.Policy.MaxAge)); err != nil {
			errs = append(errs, fmt.Errorf("purge failed jobs: %w", err))
		}
	}

	r.metrics.RecordSweep(res, report.ReapedJobs+report.ExpiredJobs+report.PurgedJobs)
	if counts, err := r.registry.CountByStatus(ctx); err == nil {
		r.metrics.SetJobCounts(counts)
	}

	if res.DeletedCount > 0 || res.StaleTemps > 0 || report.ExpiredJobs > 0 || report.PurgedJobs > 0 {
		logger.Info.Printf("retention: deleted %d artifacts (%s), %d temp files, %d dirs; jobs reaped=%d expired=%d purged=%d",
			res.DeletedCount, humanize.Bytes(uint64(res.FreedBytes)), res.StaleTemps, res.RemovedDirs,
			report.ReapedJobs, report.ExpiredJobs, report.PurgedJobs)
	}
	return report, errors.Join(errs...)
}

// reapOrphans deletes done jobs whose artifact is gone. It catches records left behind when
// an earlier reap failed after the artifact was already removed.
func (r *Retention) reapOrphans(ctx context.Context) (int, error) {
	done, err := r.registry.ListDone(ctx)
	if err != nil {
		return 0, fmt.Errorf("list done jobs: %w", err)
	}

	reaped := 0
	var errs []error
	for _, job := range done {
		if job.Artifact == nil {
			continue
		}
		key := job.Artifact.StorageKey
		rc, _, err := r.store.Fetch(ctx, key, false)
		if err == nil {
			_ = rc.Close()
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			continue
		}
		n, err := r.registry.DeleteByStorageKey(ctx, key)
		if err != nil {
			errs = append(errs, fmt.Errorf("reap jobs for %s: %w", key, err))
			continue
		}
		if n > 0 {
			logger.Info.Printf("retention: reaped %d job(s) pointing at missing artifact %s", n, key)
		}
		reaped += n
	}
	return reaped, errors.Join(errs...)
}

func (r *Retention) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	for {
		if _, err := r.Sweep(ctx); err != nil && ctx.Err() == nil {
			logger.Error.Printf("retention: %v", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
