package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/port/mocks"
)

func TestRetention_Sweep(t *testing.T) {
	registry := mocks.NewJobRegistryMock(t)
	store := mocks.NewArtifactStoreMock(t)
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	policy := domain.RetentionPolicy{MaxAge: 24 * time.Hour, MaxTotalBytes: 1 << 30}

	store.EXPECT().Sweep(mock.Anything, policy).Return(&domain.SweepResult{
		DeletedCount: 2,
		FreedBytes:   2048,
		DeletedKeys:  []string{"2026-05-08/a_job-1.mp4", "2026-05-09/b_job-2.mp4"},
	}, nil).Once()
	registry.EXPECT().DeleteByStorageKey(mock.Anything, "2026-05-08/a_job-1.mp4").Return(1, nil).Once()
	registry.EXPECT().DeleteByStorageKey(mock.Anything, "2026-05-09/b_job-2.mp4").Return(1, nil).Once()
	registry.EXPECT().ListDone(mock.Anything).Return(nil, nil).Once()
	registry.EXPECT().ExpireQueued(mock.Anything, now.Add(-time.Hour)).Return(3, nil).Once()
	registry.EXPECT().PurgeTerminal(mock.Anything, now.Add(-24*time.Hour)).Return(4, nil).Once()
	registry.EXPECT().CountByStatus(mock.Anything).Return(map[domain.JobStatus]int{}, nil).Once()

	r := NewRetention(registry, store, nil, RetentionOptions{Policy: policy, QueueTTL: time.Hour})
	r.now = func() time.Time { return now }

	report, err := r.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.ReapedJobs)
	assert.Equal(t, 3, report.ExpiredJobs)
	assert.Equal(t, 4, report.PurgedJobs)
	assert.Equal(t, int64(2048), report.Sweep.FreedBytes)
}

func TestRetention_Sweep_NoBounds(t *testing.T) {
	registry := mocks.NewJobRegistryMock(t)
	store := mocks.NewArtifactStoreMock(t)

	store.EXPECT().Sweep(mock.Anything, domain.RetentionPolicy{}).Return(&domain.SweepResult{}, nil).Once()
	registry.EXPECT().ListDone(mock.Anything).Return(nil, nil).Once()
	registry.EXPECT().CountByStatus(mock.Anything).Return(nil, errors.New("closed")).Once()

	report, err := NewRetention(registry, store, nil, RetentionOptions{}).Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.ReapedJobs)
}

func TestRetention_Sweep_StoreError(t *testing.T) {
	registry := mocks.NewJobRegistryMock(t)
	store := mocks.NewArtifactStoreMock(t)
	store.EXPECT().Sweep(mock.Anything, mock.Anything).Return(nil, errors.New("permission denied")).Once()

	_, err := NewRetention(registry, store, nil, RetentionOptions{}).Sweep(context.Background())
	assert.ErrorContains(t, err, "permission denied")
}

// No done job may keep pointing at an artifact the sweep removed.
func TestRetention_ReapsDoneJobs(t *testing.T) {
	h := newHarness(t)
	h.extractor.EXPECT().Probe(mock.Anything, sourceURL).Return(sourceInfo(), nil).Once()
	h.extractor.EXPECT().Download(mock.Anything, mock.Anything).RunAndReturn(fakeDownload).Once()
	h.trimmer.EXPECT().Trim(mock.Anything, mock.Anything).RunAndReturn(fakeTrim).Once()

	ctx := context.Background()
	id := h.submit(t, domain.SubmitRequest{Start: 0, End: 5})
	require.Equal(t, domain.JobStatusDone, h.run(t, id).Status)

	// a one-byte budget evicts everything
	r := NewRetention(h.registry, h.store, nil, RetentionOptions{
		Policy: domain.RetentionPolicy{MaxAge: 24 * time.Hour, MaxTotalBytes: 1},
	})
	report, err := r.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sweep.DeletedCount)
	assert.Equal(t, 1, report.ReapedJobs)

	_, err = h.jobs.Poll(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func doneJob(id, key string) *domain.Job {
	job := domain.NewJob(id, domain.SubmitRequest{URL: sourceURL, End: 5}, time.Now())
	job.Claim("w", time.Now())
	job.MarkDone(domain.ArtifactRef{StorageKey: key, SizeBytes: 1}, time.Now())
	return job
}

// A failed reap must not stop later keys from being reaped, and the record left behind is
// retried against the store.
func TestRetention_Sweep_ReapFailureContinues(t *testing.T) {
	registry := mocks.NewJobRegistryMock(t)
	store := mocks.NewArtifactStoreMock(t)
	const (
		first  = "2026-05-08/a_job-1.mp4"
		second = "2026-05-09/b_job-2.mp4"
	)
	locked := errors.New("database is locked")

	store.EXPECT().Sweep(mock.Anything, mock.Anything).Return(&domain.SweepResult{
		DeletedCount: 2,
		DeletedKeys:  []string{first, second},
	}, nil).Once()
	registry.EXPECT().DeleteByStorageKey(mock.Anything, first).Return(0, locked).Once()
	registry.EXPECT().DeleteByStorageKey(mock.Anything, second).Return(1, nil).Once()

	registry.EXPECT().ListDone(mock.Anything).Return([]*domain.Job{doneJob("job-1", first)}, nil).Once()
	store.EXPECT().Fetch(mock.Anything, first, false).Return(nil, nil, domain.ErrNotFound).Once()
	registry.EXPECT().DeleteByStorageKey(mock.Anything, first).Return(1, nil).Once()
	registry.EXPECT().CountByStatus(mock.Anything).Return(map[domain.JobStatus]int{}, nil).Once()

	report, err := NewRetention(registry, store, nil, RetentionOptions{}).Sweep(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, locked)
	assert.Equal(t, 2, report.ReapedJobs)
}

func TestRetention_Sweep_KeepsJobsWithArtifacts(t *testing.T) {
	registry := mocks.NewJobRegistryMock(t)
	store := mocks.NewArtifactStoreMock(t)
	const key = "2026-05-09/b_job-2.mp4"

	store.EXPECT().Sweep(mock.Anything, mock.Anything).Return(&domain.SweepResult{}, nil).Once()
	registry.EXPECT().ListDone(mock.Anything).Return([]*domain.Job{doneJob("job-2", key)}, nil).Once()
	store.EXPECT().Fetch(mock.Anything, key, false).
		Return(io.NopCloser(strings.NewReader("clip")), &domain.Artifact{StorageKey: key}, nil).Once()
	registry.EXPECT().CountByStatus(mock.Anything).Return(map[domain.JobStatus]int{}, nil).Once()

	report, err := NewRetention(registry, store, nil, RetentionOptions{}).Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.ReapedJobs)
}

// A done record whose artifact vanished without its reap is removed by the next sweep.
func TestRetention_ReapsOrphanedDoneJobs(t *testing.T) {
	h := newHarness(t)
	h.extractor.EXPECT().Probe(mock.Anything, sourceURL).Return(sourceInfo(), nil).Once()
	h.extractor.EXPECT().Download(mock.Anything, mock.Anything).RunAndReturn(fakeDownload).Once()
	h.trimmer.EXPECT().Trim(mock.Anything, mock.Anything).RunAndReturn(fakeTrim).Once()

	ctx := context.Background()
	id := h.submit(t, domain.SubmitRequest{Start: 0, End: 5})
	view := h.run(t, id)
	require.Equal(t, domain.JobStatusDone, view.Status)

	existed, err := h.store.Delete(ctx, view.Result.StorageKey)
	require.NoError(t, err)
	require.True(t, existed)

	report, err := NewRetention(h.registry, h.store, nil, RetentionOptions{}).Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Sweep.DeletedCount)
	assert.Equal(t, 1, report.ReapedJobs)

	_, err = h.jobs.Poll(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
