package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/infrastructure/logger"
	"github.com/bnema/snip/internal/metrics"
	"github.com/bnema/snip/internal/port"
)

type WorkerOptions struct {
	Workers           int
	WorkDir           string
	HeartbeatInterval time.Duration
	// Idle paces ClaimNext while the queue is empty or the registry is failing.
	Idle *Backoff
	// Name prefixes worker ids; defaults to host-pid.
	Name string
}

type WorkerPool struct {
	registry  port.JobRegistry
	resolver  *FormatResolver
	extractor port.Extractor
	trimmer   port.Trimmer
	store     port.ArtifactStore
	eventBus  EventPublisher
	metrics   *metrics.Collector
	opts      WorkerOptions
}

func NewWorkerPool(
	registry port.JobRegistry,
	resolver *FormatResolver,
	extractor port.Extractor,
	trimmer port.Trimmer,
	store port.ArtifactStore,
	eventBus EventPublisher,
	collector *metrics.Collector,
	opts WorkerOptions,
) *WorkerPool {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.HeartbeatInterval <= 0 {
		opts.HeartbeatInterval = 10 * time.Second
	}
	if opts.Idle == nil {
		opts.Idle = NewBackoff(500*time.Millisecond, 5*time.Second, 2)
	}
	if opts.Name == "" {
		host, _ := os.Hostname()
		opts.Name = fmt.Sprintf("%s-%d", host, os.Getpid())
	}
	return &WorkerPool{
		registry:  registry,
		resolver:  resolver,
		extractor: extractor,
		trimmer:   trimmer,
		store:     store,
		eventBus:  eventBus,
		metrics:   collector,
		opts:      opts,
	}
}

// Run starts the workers and blocks until ctx is cancelled and every in-flight job has
// reached a terminal state. Cancelling ctx stops claiming; it does not abort running jobs.
func (wp *WorkerPool) Run(ctx context.Context) error {
	if err := os.MkdirAll(wp.opts.WorkDir, 0o755); err != nil {
		return fmt.Errorf("create work directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range wp.opts.Workers {
		workerID := fmt.Sprintf("%s-%d", wp.opts.Name, i)
		g.Go(func() error {
			wp.runWorker(ctx, workerID)
			return nil
		})
	}
	logger.Info.Printf("started %d workers", wp.opts.Workers)
	return g.Wait()
}

func (wp *WorkerPool) runWorker(ctx context.Context, workerID string) {
	attempt := 0
	for {
		if ctx.Err() != nil {
			logger.Info.Printf("worker %s shutting down", workerID)
			return
		}

		job, err := wp.registry.ClaimNext(ctx, workerID)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			attempt++
			logger.Error.Printf("worker %s: failed to claim job: %v", workerID, err)
			sleep(ctx, wp.opts.Idle.Duration(attempt))
			continue
		}
		if job == nil {
			attempt++
			sleep(ctx, wp.opts.Idle.Duration(attempt))
			continue
		}

		attempt = 0
		wp.metrics.RecordClaimed()
		wp.RunJob(context.WithoutCancel(ctx), job, workerID)
	}
}

// RunOne claims job id and runs it in the calling goroutine. It reports false when the job
// was not queued, which includes losing the claim to another worker.
func (wp *WorkerPool) RunOne(ctx context.Context, id string) (bool, error) {
	workerID := wp.opts.Name + "-oneshot"
	ok, err := wp.registry.Claim(ctx, id, workerID)
	if err != nil || !ok {
		return false, err
	}
	wp.metrics.RecordClaimed()

	job, err := wp.registry.Get(ctx, id)
	if err != nil {
		return true, err
	}
	if err := os.MkdirAll(wp.opts.WorkDir, 0o755); err != nil {
		return true, fmt.Errorf("create work directory: %w", err)
	}
	wp.RunJob(ctx, job, workerID)
	return true, nil
}

// RunJob drives a claimed job to a terminal state. Stages run strictly in order and each is
// attempted once.
func (wp *WorkerPool) RunJob(ctx context.Context, job *domain.Job, workerID string) {
	started := time.Now()
	logger.Info.Printf("worker %s: processing job %s (url=%s, range=%s-%s, format=%q)",
		workerID, job.ID, logger.SanitizeForLog(job.URL),
		domain.FormatTimestamp(job.Start), domain.FormatTimestamp(job.End),
		logger.SanitizeForLog(job.RequestedFormat))
	wp.publishEvent(job.ID, domain.JobStatusWorking, 0, domain.StageResolving, "")

	hbCtx, stopHeartbeat := context.WithCancel(ctx)
	go wp.heartbeat(hbCtx, job.ID, workerID)

	art, trim, err := wp.process(ctx, job, workerID)
	if err == nil {
		err = wp.registry.Complete(ctx, job.ID, workerID, art.Ref())
		if err != nil {
			wp.discard(art.StorageKey)
		}
	}
	stopHeartbeat()

	switch {
	case errors.Is(err, domain.ErrNotOwner):
		logger.Warn.Printf("job %s: lost ownership, dropping result", job.ID)
		return
	case err != nil:
		wp.fail(ctx, job.ID, workerID, err)
		return
	}

	wp.metrics.RecordCompleted(trim.Strategy, art.SizeBytes)
	wp.publishEvent(job.ID, domain.JobStatusDone, domain.ProgressComplete, domain.StageDone, art.StorageKey)
	logger.Info.Printf("job %s completed: key=%s, size=%s, strategy=%s, took=%s",
		job.ID, art.StorageKey, humanize.Bytes(uint64(art.SizeBytes)), trim.Strategy,
		time.Since(started).Round(time.Millisecond))
}

func (wp *WorkerPool) process(ctx context.Context, job *domain.Job, workerID string) (*domain.Artifact, *domain.TrimResult, error) {
	workDir := filepath.Join(wp.opts.WorkDir, job.ID)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, nil, domain.WrapJobError(domain.KindStorageFailure, fmt.Errorf("create job directory: %w", err), "")
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			logger.Warn.Printf("job %s: failed to clean work directory: %v", job.ID, err)
		}
	}()

	var (
		info  *domain.SourceInfo
		sel   *Selection
		src   string
		trim  *domain.TrimResult
		art   *domain.Artifact
		title string
	)

	err := wp.stage(ctx, job.ID, workerID, domain.StageResolving, domain.KindResolutionFailed,
		domain.ProgressResolved, domain.StageDownload, func() error {
			var err error
			if info, err = wp.resolver.Resolve(ctx, job.URL); err != nil {
				return err
			}
			if sel, err = wp.resolver.Select(info.Variants, job.RequestedFormat, job.RequestedHeight); err != nil {
				return err
			}
			if job.Start >= info.Duration && info.Duration > 0 {
				return domain.NewJobError(domain.KindInvalidRequest,
					fmt.Sprintf("start %s is past the end of the %s source",
						domain.FormatTimestamp(job.Start), domain.FormatTimestamp(info.Duration)))
			}
			title = strings.TrimSpace(info.Title)
			if title == "" {
				title = "clip"
			}
			return wp.registry.UpdateSource(ctx, job.ID, workerID, title, sel.Variant.FormatID)
		})
	if err != nil {
		return nil, nil, err
	}
	logger.Info.Printf("job %s: resolved %q to format %s (%dp, %s)",
		job.ID, logger.SanitizeForLog(title), sel.Variant.FormatID, sel.Variant.Height, sel.Strategy)

	err = wp.stage(ctx, job.ID, workerID, domain.StageDownload, domain.KindDownloadFailed,
		domain.ProgressDownloaded, domain.StageTrimming, func() error {
			var err error
			src, err = wp.extractor.Download(ctx, domain.DownloadRequest{
				URL:      job.URL,
				Selector: sel.Variant.Selector(),
				Dir:        workDir,
				BaseName:   "source",
				OnProgress: wp.downloadProgress(job.ID),
			})
			return err
		})
	if err != nil {
		return nil, nil, err
	}

	err = wp.stage(ctx, job.ID, workerID, domain.StageTrimming, domain.KindEncodeFailed,
		domain.ProgressTrimmed, domain.StagePublishing, func() error {
			var err error
			trim, err = wp.trimmer.Trim(ctx, domain.TrimRequest{
				Source:    src,
				Start:     job.Start,
				End:       job.End,
				OutputDir: workDir,
				BaseName:  "clip",
			})
			return err
		})
	if err != nil {
		return nil, nil, err
	}

	err = wp.stage(ctx, job.ID, workerID, domain.StagePublishing, domain.KindStorageFailure,
		domain.ProgressPublished, domain.StagePublishing, func() error {
			var err error
			art, err = wp.store.Publish(ctx, trim.OutputPath, title+filepath.Ext(trim.OutputPath), job.ID)
			return err
		})
	if err != nil {
		if art != nil {
			wp.discard(art.StorageKey)
		}
		return nil, nil, err
	}
	return art, trim, nil
}

// stage runs fn, classifies its failure under fallback and advances the job to progress
// with the next stage label.
func (wp *WorkerPool) stage(ctx context.Context, id, workerID, name string, fallback domain.ErrorKind, progress int, next string, fn func() error) error {
	started := time.Now()
	err := fn()
	wp.metrics.ObserveStage(name, time.Since(started))
	if err != nil {
		if errors.Is(err, domain.ErrNotOwner) {
			return err
		}
		return domain.Classify(err, fallback)
	}

	if err := wp.registry.UpdateProgress(ctx, id, workerID, progress, next); err != nil {
		if errors.Is(err, domain.ErrNotOwner) {
			return err
		}
		logger.Warn.Printf("job %s: failed to record progress %d: %v", id, progress, err)
	}
	wp.publishEvent(id, domain.JobStatusWorking, progress, next, "")
	return nil
}

func (wp *WorkerPool) fail(ctx context.Context, id, workerID string, err error) {
	jerr := domain.Classify(err, domain.KindStorageFailure)
	logger.Error.Printf("job %s failed: %s", id, logger.SanitizeForLog(jerr.Error()))

	if ferr := wp.registry.Fail(ctx, id, workerID, jerr); ferr != nil {
		if errors.Is(ferr, domain.ErrNotOwner) {
			logger.Warn.Printf("job %s: lost ownership before recording failure", id)
			return
		}
		logger.Error.Printf("job %s: failed to record failure: %v", id, ferr)
		return
	}
	wp.metrics.RecordFailed(jerr.Kind)
	wp.publishEvent(id, domain.JobStatusError, 0, domain.StageFailed, jerr.Message)
}

// discard removes an artifact whose job can no longer reference it.
func (wp *WorkerPool) discard(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := wp.store.Delete(ctx, key); err != nil {
		logger.Warn.Printf("failed to delete orphaned artifact %s: %v", key, err)
		return
	}
	logger.Info.Printf("deleted orphaned artifact %s", key)
}

func (wp *WorkerPool) heartbeat(ctx context.Context, id, workerID string) {
	ticker := time.NewTicker(wp.opts.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := wp.registry.Heartbeat(ctx, id, workerID)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrNotOwner), errors.Is(err, domain.ErrNotFound):
				logger.Warn.Printf("job %s: heartbeat rejected, stopping: %v", id, err)
				return
			case ctx.Err() != nil:
				return
			default:
				logger.Warn.Printf("job %s: heartbeat failed: %v", id, err)
			}
		}
	}
}

// downloadProgress maps the extractor's percentage onto the download stage's progress band.
// Only changes are published and the registry is left alone.
func (wp *WorkerPool) downloadProgress(jobID string) func(float64) {
	if wp.eventBus == nil {
		return nil
	}
	last := domain.ProgressResolved
	return func(pct float64) {
		pct = max(0, min(pct, 100))
		p := domain.ProgressResolved + int(pct*float64(domain.ProgressDownloaded-domain.ProgressResolved)/100)
		if p <= last || p >= domain.ProgressDownloaded {
			return
		}
		last = p
		wp.publishEvent(jobID, domain.JobStatusWorking, p, domain.StageDownload, "")
	}
}

func (wp *WorkerPool) publishEvent(jobID string, status domain.JobStatus, progress int, stage, message string) {
	if wp.eventBus != nil {
		wp.eventBus.Publish(jobID, Event{
			Status:   string(status),
			Progress: progress,
			Stage:    stage,
			Message:  message,
		})
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
