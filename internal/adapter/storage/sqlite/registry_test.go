package sqlite

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/snip/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, dir string) *Registry {
	t.Helper()
	store, err := NewStore(dir)
	require.NoError(t, err)
	r := NewRegistry(store)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func queuedJob(id string, created time.Time) *domain.Job {
	return domain.NewJob(id, domain.SubmitRequest{
		URL:             "https://example.com/watch?v=" + id,
		Start:           10,
		End:             25.5,
		RequestedFormat: "22",
		RequestedHeight: 720,
	}, created)
}

func TestRegistry_Lifecycle(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t, t.TempDir())
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, r.Create(ctx, queuedJob("job-1", created)))

	got, err := r.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusQueued, got.Status)
	assert.Equal(t, domain.StageQueued, got.Stage)
	assert.Equal(t, 720, got.RequestedHeight)
	assert.InDelta(t, 15.5, got.Duration(), 1e-9)
	assert.Equal(t, created, got.CreatedAt)
	assert.True(t, got.StartedAt.IsZero())

	claimed, err := r.ClaimNext(ctx, "w1")
	require.NoError(t, err)
	require.NotNil(t, claimed)
	assert.Equal(t, "job-1", claimed.ID)
	assert.Equal(t, domain.JobStatusWorking, claimed.Status)
	assert.Equal(t, "w1", claimed.WorkerID)
	assert.Equal(t, domain.StageResolving, claimed.Stage)
	assert.False(t, claimed.HeartbeatAt.IsZero())

	none, err := r.ClaimNext(ctx, "w2")
	require.NoError(t, err)
	assert.Nil(t, none, "nothing left to claim")

	require.NoError(t, r.UpdateSource(ctx, "job-1", "w1", "Great goal", "22"))
	require.NoError(t, r.UpdateProgress(ctx, "job-1", "w1", domain.ProgressResolved, domain.StageDownload))
	require.NoError(t, r.UpdateProgress(ctx, "job-1", "w1", domain.ProgressDownloaded, domain.StageTrimming))
	assert.ErrorIs(t, r.UpdateProgress(ctx, "job-1", "w1", domain.ProgressResolved, domain.StageDownload), domain.ErrNotOwner,
		"progress never moves backwards")
	assert.ErrorIs(t, r.UpdateProgress(ctx, "job-1", "w2", 80, domain.StagePublishing), domain.ErrNotOwner)
	assert.ErrorIs(t, r.Heartbeat(ctx, "job-1", "w2"), domain.ErrNotOwner)
	require.NoError(t, r.Heartbeat(ctx, "job-1", "w1"))

	ref := domain.ArtifactRef{StorageKey: "2026-05-01/Great_goal_job-1.mp4", Checksum: "abc", SizeBytes: 1234}
	assert.ErrorIs(t, r.Complete(ctx, "job-1", "w2", ref), domain.ErrNotOwner)
	require.NoError(t, r.Complete(ctx, "job-1", "w1", ref))

	done, err := r.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusDone, done.Status)
	assert.Equal(t, domain.ProgressComplete, done.Progress)
	assert.Equal(t, domain.StageDone, done.Stage)
	assert.Equal(t, "Great goal", done.Title)
	assert.Equal(t, "22", done.FormatID)
	require.NotNil(t, done.Artifact)
	assert.Equal(t, ref, *done.Artifact)
	assert.Nil(t, done.Error)
	assert.False(t, done.CompletedAt.IsZero())

	assert.ErrorIs(t, r.Fail(ctx, "job-1", "w1", domain.NewJobError(domain.KindTimeout, "late")), domain.ErrNotOwner,
		"terminal states are final")
	assert.ErrorIs(t, r.Heartbeat(ctx, "missing", "w1"), domain.ErrNotFound)

	_, err = r.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistry_Fail(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t, t.TempDir())
	require.NoError(t, r.Create(ctx, queuedJob("job-1", time.Now())))

	ok, err := r.Claim(ctx, "job-1", "w1")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Error(t, r.Fail(ctx, "job-1", "w1", nil))
	assert.Error(t, r.Fail(ctx, "job-1", "w1", &domain.JobError{Kind: "Exploded"}), "kinds are a closed set")

	jerr := domain.WrapJobError(domain.KindEncodeFailed, fmt.Errorf("ffmpeg exited with -1"), "Killed")
	require.NoError(t, r.Fail(ctx, "job-1", "w1", jerr))

	got, err := r.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusError, got.Status)
	require.NotNil(t, got.Error)
	assert.Equal(t, domain.KindEncodeFailed, got.Error.Kind)
	assert.Equal(t, "Killed", got.Error.Detail)
	assert.Nil(t, got.Artifact)

	view := got.View()
	assert.Nil(t, view.Result)
	assert.Equal(t, domain.KindEncodeFailed, view.Error.Kind)
}

func TestRegistry_ClaimOrder(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t, t.TempDir())
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, r.Create(ctx, queuedJob("second", base.Add(time.Second))))
	require.NoError(t, r.Create(ctx, queuedJob("first", base)))

	j, err := r.ClaimNext(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "first", j.ID)
}

// Many workers racing for one job: exactly one wins.
func TestRegistry_Claim_SingleFlight(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	registries := []*Registry{newTestRegistry(t, dir), newTestRegistry(t, dir)}
	require.NoError(t, registries[0].Create(ctx, queuedJob("job-1", time.Now())))

	const workers = 16
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := registries[i%2].Claim(ctx, "job-1", fmt.Sprintf("w%d", i))
			assert.NoError(t, err)
			if ok {
				wins.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	got, err := registries[1].Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusWorking, got.Status)
}

// Every queued job is claimed exactly once across concurrent pollers.
func TestRegistry_ClaimNext_Concurrent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	registries := []*Registry{newTestRegistry(t, dir), newTestRegistry(t, dir)}

	const jobs = 20
	base := time.Now()
	for i := range jobs {
		require.NoError(t, registries[0].Create(ctx, queuedJob(fmt.Sprintf("job-%02d", i), base.Add(time.Duration(i)*time.Millisecond))))
	}

	var mu sync.Mutex
	claimedBy := map[string]string{}
	var wg sync.WaitGroup
	for w := range 6 {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			worker := fmt.Sprintf("w%d", w)
			for {
				j, err := registries[w%2].ClaimNext(ctx, worker)
				if !assert.NoError(t, err) || j == nil {
					return
				}
				mu.Lock()
				_, dup := claimedBy[j.ID]
				assert.False(t, dup, "job %s claimed twice", j.ID)
				claimedBy[j.ID] = worker
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()

	assert.Len(t, claimedBy, jobs)
}

func TestRegistry_StaleAndLost(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t, t.TempDir())
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	require.NoError(t, r.Create(ctx, queuedJob("stale", now)))
	require.NoError(t, r.Create(ctx, queuedJob("alive", now.Add(time.Millisecond))))
	_, err := r.ClaimNext(ctx, "dead-worker")
	require.NoError(t, err)

	now = now.Add(5 * time.Minute)
	_, err = r.ClaimNext(ctx, "live-worker")
	require.NoError(t, err)

	cutoff := now.Add(-2 * time.Minute)
	stale, err := r.ListStale(ctx, cutoff)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "stale", stale[0].ID)

	// the worker recovers before the reaper writes
	require.NoError(t, r.Heartbeat(ctx, "stale", "dead-worker"))
	lost, err := r.MarkLost(ctx, "stale", cutoff)
	require.NoError(t, err)
	assert.False(t, lost, "a fresh heartbeat defeats the reaper")

	now = now.Add(10 * time.Minute)
	cutoff = now.Add(-2 * time.Minute)
	lost, err = r.MarkLost(ctx, "stale", cutoff)
	require.NoError(t, err)
	assert.True(t, lost)

	got, err := r.Get(ctx, "stale")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusError, got.Status)
	assert.Equal(t, domain.KindWorkerLost, got.Error.Kind)

	err = r.Complete(ctx, "stale", "dead-worker", domain.ArtifactRef{StorageKey: "2026-05-01/x_stale.mp4"})
	assert.ErrorIs(t, err, domain.ErrNotOwner, "a lost job cannot be completed late")
}

func TestRegistry_Housekeeping(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t, t.TempDir())
	now := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now.Add(-30 * time.Hour) }

	require.NoError(t, r.Create(ctx, queuedJob("old-done", now.Add(-30*time.Hour))))
	require.NoError(t, r.Create(ctx, queuedJob("old-error", now.Add(-30*time.Hour+time.Millisecond))))
	_, _ = r.ClaimNext(ctx, "w1")
	_, _ = r.ClaimNext(ctx, "w1")
	require.NoError(t, r.Complete(ctx, "old-done", "w1", domain.ArtifactRef{StorageKey: "2026-05-01/a_old-done.mp4"}))
	require.NoError(t, r.Fail(ctx, "old-error", "w1", domain.NewJobError(domain.KindSourceUnavailable, "429")))

	require.NoError(t, r.Create(ctx, queuedJob("old-queued", now.Add(-2*time.Hour))))
	require.NoError(t, r.Create(ctx, queuedJob("new-queued", now)))

	counts, err := r.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.JobStatus]int{
		domain.JobStatusDone:   1,
		domain.JobStatusError:  1,
		domain.JobStatusQueued: 2,
	}, counts)

	n, err := r.ExpireQueued(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.PurgeTerminal(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.DeleteByStorageKey(ctx, "2026-05-01/a_old-done.mp4")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	for _, id := range []string{"old-done", "old-error", "old-queued"} {
		_, err := r.Get(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound, id)
	}
	_, err = r.Get(ctx, "new-queued")
	assert.NoError(t, err)
}

func TestRegistry_ListDone(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t, t.TempDir())
	now := time.Date(2026, 5, 3, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, r.Create(ctx, queuedJob(id, now)))
	}
	for _, id := range []string{"b", "a"} {
		ok, err := r.Claim(ctx, id, "w")
		require.NoError(t, err)
		require.True(t, ok)
		now = now.Add(time.Minute)
		require.NoError(t, r.Complete(ctx, id, "w", domain.ArtifactRef{StorageKey: "2026-05-03/t_" + id + ".mp4", SizeBytes: 7}))
	}

	done, err := r.ListDone(ctx)
	require.NoError(t, err)
	require.Len(t, done, 2)
	assert.Equal(t, "b", done[0].ID)
	assert.Equal(t, "a", done[1].ID)
	assert.Equal(t, "2026-05-03/t_a.mp4", done[1].Artifact.StorageKey)
}
