package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/infrastructure/logger"
	"github.com/bnema/snip/internal/metrics"
	"github.com/bnema/snip/internal/port"
)

// ErrNotReady is returned by Fetch for a job that has not published an artifact.
var ErrNotReady = errors.New("job has no artifact yet")

type JobServiceOptions struct {
	MaxClipDuration  time.Duration
	VerifyChecksum   bool
	DeleteAfterFetch bool
}

// JobService is the submission and polling side of the pipeline. It only ever writes
// queued records; every later transition belongs to the worker that claims the job.
type JobService struct {
	registry port.JobRegistry
	store    port.ArtifactStore
	metrics  *metrics.Collector
	opts     JobServiceOptions
	now      func() time.Time
	newID    func() string
}

func NewJobService(registry port.JobRegistry, store port.ArtifactStore, collector *metrics.Collector, opts JobServiceOptions) *JobService {
	if opts.MaxClipDuration <= 0 {
		opts.MaxClipDuration = domain.MaxClipDuration
	}
	return &JobService{
		registry: registry,
		store:    store,
		metrics:  collector,
		opts:     opts,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *JobService) Submit(ctx context.Context, req domain.SubmitRequest) (string, error) {
	if err := domain.ValidateClipRequest(req, s.opts.MaxClipDuration); err != nil {
		return "", err
	}

	job := domain.NewJob(s.newID(), req, s.now().UTC())
	if err := s.registry.Create(ctx, job); err != nil {
		logger.Error.Printf("failed to enqueue job for %s: %v", logger.SanitizeForLog(req.URL), err)
		return "", fmt.Errorf("enqueue job: %w", err)
	}
	s.metrics.RecordSubmitted()

	logger.Info.Printf("job queued: id=%s, url=%s, range=%s-%s, format=%q",
		job.ID, logger.SanitizeForLog(job.URL),
		domain.FormatTimestamp(job.Start), domain.FormatTimestamp(job.End),
		logger.SanitizeForLog(job.RequestedFormat))
	return job.ID, nil
}

func (s *JobService) Poll(ctx context.Context, id string) (*domain.JobStatusView, error) {
	job, err := s.registry.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return job.View(), nil
}

// Fetch opens the artifact of a done job. With DeleteAfterFetch set, closing the reader after
// reading it to the end deletes the artifact and reaps the job record.
func (s *JobService) Fetch(ctx context.Context, id string) (io.ReadCloser, *domain.Artifact, error) {
	job, err := s.registry.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if job.Status != domain.JobStatusDone || job.Artifact == nil {
		return nil, nil, fmt.Errorf("job %s is %s: %w", id, job.Status, ErrNotReady)
	}

	rc, art, err := s.store.Fetch(ctx, job.Artifact.StorageKey, s.opts.VerifyChecksum)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptArtifact) {
			logger.Error.Printf("artifact %s of job %s failed integrity check", job.Artifact.StorageKey, id)
		}
		return nil, nil, err
	}
	if !s.opts.DeleteAfterFetch {
		return rc, art, nil
	}
	return &fetchOnce{ReadCloser: rc, onDrained: func() { s.consume(art.StorageKey) }}, art, nil
}

func (s *JobService) consume(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.store.Delete(ctx, key); err != nil {
		logger.Warn.Printf("download-once: failed to delete %s: %v", key, err)
		return
	}
	n, err := s.registry.DeleteByStorageKey(ctx, key)
	if err != nil {
		logger.Warn.Printf("download-once: failed to reap jobs for %s: %v", key, err)
		return
	}
	logger.Info.Printf("download-once: deleted %s and %d job record(s)", key, n)
}

// fetchOnce runs onDrained on Close, only if the reader hit EOF.
type fetchOnce struct {
	io.ReadCloser
	onDrained func()

	drained bool
	once    sync.Once
}

func (f *fetchOnce) Read(p []byte) (int, error) {
	n, err := f.ReadCloser.Read(p)
	if errors.Is(err, io.EOF) {
		f.drained = true
	}
	return n, err
}

func (f *fetchOnce) Close() error {
	err := f.ReadCloser.Close()
	f.once.Do(func() {
		if f.drained {
			f.onDrained()
		}
	})
	return err
}
