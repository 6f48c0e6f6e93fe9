package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/snip/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJob(id string, created time.Time) *domain.Job {
	return domain.NewJob(id, domain.SubmitRequest{
		URL:   "https://example.com/v/" + id,
		Start: 0,
		End:   30,
	}, created)
}

func TestNewRegistry(t *testing.T) {
	t.Run("creates registry successfully", func(t *testing.T) {
		r, err := NewRegistry(t.TempDir())
		assert.NoError(t, err)
		assert.NotNil(t, r)
		assert.Empty(t, r.jobs)
	})

	t.Run("loads existing data from file", func(t *testing.T) {
		dir := t.TempDir()
		jobs := []*domain.Job{
			newJob("a", time.Now()),
			newJob("b", time.Now()),
		}
		data, _ := json.MarshalIndent(jobs, "", "  ")
		require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), data, 0o600))

		r, err := NewRegistry(dir)
		require.NoError(t, err)
		assert.Len(t, r.jobs, 2)
		assert.Equal(t, "https://example.com/v/a", r.jobs["a"].URL)
	})

	t.Run("returns error for invalid JSON", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte("invalid json"), 0o600))

		r, err := NewRegistry(dir)
		assert.Error(t, err)
		assert.Nil(t, r)
	})

	t.Run("empty file is an empty registry", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), nil, 0o600))

		r, err := NewRegistry(dir)
		require.NoError(t, err)
		assert.Empty(t, r.jobs)
	})
}

func TestRegistry_LifecyclePersists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	r, err := NewRegistry(dir)
	require.NoError(t, err)

	require.NoError(t, r.Create(ctx, newJob("job-1", time.Now())))
	assert.Error(t, r.Create(ctx, newJob("job-1", time.Now())), "duplicate ids are rejected")

	j, err := r.ClaimNext(ctx, "w1")
	require.NoError(t, err)
	require.NotNil(t, j)
	j.Status = domain.JobStatusDone // callers get copies

	require.NoError(t, r.UpdateSource(ctx, "job-1", "w1", "Title", "18"))
	require.NoError(t, r.UpdateProgress(ctx, "job-1", "w1", domain.ProgressDownloaded, domain.StageTrimming))
	assert.ErrorIs(t, r.UpdateProgress(ctx, "job-1", "w1", domain.ProgressResolved, domain.StageDownload), domain.ErrNotOwner)
	assert.ErrorIs(t, r.Heartbeat(ctx, "job-1", "w2"), domain.ErrNotOwner)

	ref := domain.ArtifactRef{StorageKey: "2026-05-01/Title_job-1.mp4", Checksum: "c0ffee", SizeBytes: 42}
	require.NoError(t, r.Complete(ctx, "job-1", "w1", ref))
	assert.ErrorIs(t, r.Fail(ctx, "job-1", "w1", domain.NewJobError(domain.KindTimeout, "late")), domain.ErrNotOwner)

	reopened, err := NewRegistry(dir)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusDone, got.Status)
	assert.Equal(t, domain.ProgressComplete, got.Progress)
	assert.Equal(t, "Title", got.Title)
	assert.Equal(t, ref, *got.Artifact)

	_, err = reopened.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistry_FailKeepsClassifiedError(t *testing.T) {
	ctx := context.Background()
	r, err := NewRegistry(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, r.Create(ctx, newJob("job-1", time.Now())))

	ok, err := r.Claim(ctx, "job-1", "w1")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Error(t, r.Fail(ctx, "job-1", "w1", &domain.JobError{Kind: "Weird"}))
	require.NoError(t, r.Fail(ctx, "job-1", "w1",
		domain.WrapJobError(domain.KindDownloadFailed, fmt.Errorf("yt-dlp exited 1"), "HTTP Error 403")))

	got, err := r.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusError, got.Status)
	assert.Equal(t, domain.KindDownloadFailed, got.Error.Kind)
	assert.Equal(t, "HTTP Error 403", got.Error.Detail)
}

func TestRegistry_ConcurrentClaim(t *testing.T) {
	ctx := context.Background()
	r, err := NewRegistry(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, r.Create(ctx, newJob("job-1", time.Now())))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := r.Claim(ctx, "job-1", fmt.Sprintf("w%d", i))
			assert.NoError(t, err)
			if ok {
				wins.Add(1)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestRegistry_ConcurrentClaimNext(t *testing.T) {
	ctx := context.Background()
	r, err := NewRegistry(t.TempDir())
	require.NoError(t, err)

	base := time.Now()
	for i := range 10 {
		require.NoError(t, r.Create(ctx, newJob(fmt.Sprintf("job-%d", i), base.Add(time.Duration(i)))))
	}

	var mu sync.Mutex
	seen := map[string]int{}
	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for {
				j, err := r.ClaimNext(ctx, fmt.Sprintf("w%d", w))
				if err != nil || j == nil {
					return
				}
				mu.Lock()
				seen[j.ID]++
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()

	assert.Len(t, seen, 10)
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
}

func TestRegistry_ReaperAndHousekeeping(t *testing.T) {
	ctx := context.Background()
	r, err := NewRegistry(t.TempDir())
	require.NoError(t, err)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	require.NoError(t, r.Create(ctx, newJob("working", now.Add(-time.Hour))))
	_, err = r.ClaimNext(ctx, "w1")
	require.NoError(t, err)
	require.NoError(t, r.Create(ctx, newJob("queued-old", now.Add(-3*time.Hour))))
	require.NoError(t, r.Create(ctx, newJob("queued-new", now)))

	now = now.Add(10 * time.Minute)
	cutoff := now.Add(-2 * time.Minute)

	stale, err := r.ListStale(ctx, cutoff)
	require.NoError(t, err)
	require.Len(t, stale, 1)

	lost, err := r.MarkLost(ctx, "working", cutoff)
	require.NoError(t, err)
	assert.True(t, lost)
	lost, err = r.MarkLost(ctx, "working", cutoff)
	require.NoError(t, err)
	assert.False(t, lost, "already terminal")

	got, _ := r.Get(ctx, "working")
	assert.Equal(t, domain.KindWorkerLost, got.Error.Kind)

	counts, err := r.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[domain.JobStatusQueued])
	assert.Equal(t, 1, counts[domain.JobStatusError])

	n, err := r.ExpireQueued(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.PurgeTerminal(ctx, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.DeleteByStorageKey(ctx, "2026-05-01/nothing.mp4")
	require.NoError(t, err)
	assert.Zero(t, n)

	counts, _ = r.CountByStatus(ctx)
	assert.Equal(t, map[domain.JobStatus]int{domain.JobStatusQueued: 1}, counts)
}

// Two processes share the document: a job submitted by one is claimed by the other and
// survives the other's writes.
func TestRegistry_SharedAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	submitter, err := NewRegistry(dir)
	require.NoError(t, err)
	worker, err := NewRegistry(dir)
	require.NoError(t, err)

	require.NoError(t, worker.Create(ctx, newJob("local", time.Now().Add(-time.Minute))))
	require.NoError(t, submitter.Create(ctx, newJob("remote", time.Now())))

	j, err := worker.ClaimNext(ctx, "w1")
	require.NoError(t, err)
	require.NotNil(t, j)
	assert.Equal(t, "local", j.ID)

	j, err = worker.ClaimNext(ctx, "w1")
	require.NoError(t, err)
	require.NotNil(t, j, "job created by the other instance must be visible")
	assert.Equal(t, "remote", j.ID)

	got, err := submitter.Get(ctx, "remote")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusWorking, got.Status)
	assert.Equal(t, "w1", got.WorkerID)

	fresh, err := NewRegistry(dir)
	require.NoError(t, err)
	assert.Len(t, fresh.jobs, 2)
}

func TestRegistry_ConcurrentClaimAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	seed, err := NewRegistry(dir)
	require.NoError(t, err)
	for i := range 8 {
		require.NoError(t, seed.Create(ctx, newJob(fmt.Sprintf("job-%d", i), time.Now().Add(time.Duration(i)))))
	}

	var mu sync.Mutex
	seen := map[string]int{}
	var wg sync.WaitGroup
	for w := range 3 {
		r, err := NewRegistry(dir)
		require.NoError(t, err)
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for {
				j, err := r.ClaimNext(ctx, fmt.Sprintf("w%d", w))
				if !assert.NoError(t, err) || j == nil {
					return
				}
				mu.Lock()
				seen[j.ID]++
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()

	assert.Len(t, seen, 8)
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
}

func TestRegistry_Lock(t *testing.T) {
	t.Run("stale lock is broken", func(t *testing.T) {
		dir := t.TempDir()
		r, err := NewRegistry(dir)
		require.NoError(t, err)

		lockDir := filepath.Join(dir, lockDirName)
		require.NoError(t, os.Mkdir(lockDir, 0o755))
		old := time.Now().Add(-2 * lockStaleAfter)
		require.NoError(t, os.Chtimes(lockDir, old, old))

		require.NoError(t, r.Create(context.Background(), newJob("job-1", time.Now())))
		assert.NoDirExists(t, lockDir, "released after the write")
	})

	t.Run("held lock waits for the context", func(t *testing.T) {
		dir := t.TempDir()
		r, err := NewRegistry(dir)
		require.NoError(t, err)
		require.NoError(t, os.Mkdir(filepath.Join(dir, lockDirName), 0o755))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		err = r.Create(ctx, newJob("job-1", time.Now()))
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		// reads do not need the lock
		_, err = r.Get(context.Background(), "job-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRegistry_ListDone(t *testing.T) {
	ctx := context.Background()
	r, err := NewRegistry(t.TempDir())
	require.NoError(t, err)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, r.Create(ctx, newJob(id, now)))
	}
	for _, id := range []string{"b", "a"} {
		ok, err := r.Claim(ctx, id, "w")
		require.NoError(t, err)
		require.True(t, ok)
		now = now.Add(time.Minute)
		require.NoError(t, r.Complete(ctx, id, "w", domain.ArtifactRef{StorageKey: "2026-05-01/t_" + id + ".mp4"}))
	}

	done, err := r.ListDone(ctx)
	require.NoError(t, err)
	require.Len(t, done, 2)
	assert.Equal(t, "b", done[0].ID)
	assert.Equal(t, "a", done[1].ID)
}
