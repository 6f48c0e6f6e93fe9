package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/infrastructure/logger"
	"github.com/bnema/snip/internal/metrics"
	"github.com/bnema/snip/internal/port"
)

// Reaper fails working jobs whose worker stopped heartbeating. Lost jobs are never resumed.
type Reaper struct {
	registry   port.JobRegistry
	eventBus   EventPublisher
	metrics    *metrics.Collector
	staleAfter time.Duration
	interval   time.Duration
	now        func() time.Time
}

func NewReaper(registry port.JobRegistry, eventBus EventPublisher, collector *metrics.Collector, staleAfter time.Duration) *Reaper {
	interval := staleAfter / 2
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reaper{
		registry:   registry,
		eventBus:   eventBus,
		metrics:    collector,
		staleAfter: staleAfter,
		interval:   interval,
		now:        time.Now,
	}
}

// Reap marks every stale working job as WorkerLost and returns how many it marked.
func (r *Reaper) Reap(ctx context.Context) (int, error) {
	cutoff := r.now().Add(-r.staleAfter)
	stale, err := r.registry.ListStale(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list stale jobs: %w", err)
	}

	lost := 0
	for _, job := range stale {
		ok, err := r.registry.MarkLost(ctx, job.ID, cutoff)
		if err != nil {
			logger.Error.Printf("reaper: failed to mark job %s lost: %v", job.ID, err)
			continue
		}
		if !ok {
			// heartbeat arrived or the worker finished between list and mark
			continue
		}
		lost++
		logger.Warn.Printf("reaper: job %s lost (worker=%s, stage=%q, last heartbeat %s)",
			job.ID, job.WorkerID, job.Stage, job.HeartbeatAt.Format(time.RFC3339))
		if r.eventBus != nil {
			r.eventBus.Publish(job.ID, Event{
				Status:   string(domain.JobStatusError),
				Progress: job.Progress,
				Stage:    domain.StageFailed,
				Message:  string(domain.KindWorkerLost),
			})
		}
	}
	r.metrics.RecordLost(lost)
	return lost, nil
}

func (r *Reaper) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.Reap(ctx); err != nil && ctx.Err() == nil {
			logger.Error.Printf("reaper: %v", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
