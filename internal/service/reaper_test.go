package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/port/mocks"
)

func TestReaper_Reap(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	stale := h.submit(t, domain.SubmitRequest{Start: 0, End: 5})
	ok, err := h.registry.Claim(ctx, stale, "w1")
	require.NoError(t, err)
	require.True(t, ok)
	queued := h.submit(t, domain.SubmitRequest{Start: 0, End: 5})

	events := h.bus.Subscribe(stale)
	reaper := NewReaper(h.registry, h.bus, nil, 2*time.Minute)

	n, err := reaper.Reap(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "fresh heartbeat")

	reaper.now = func() time.Time { return time.Now().Add(10 * time.Minute) }
	n, err = reaper.Reap(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	view, err := h.jobs.Poll(ctx, stale)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusError, view.Status)
	assert.Equal(t, domain.KindWorkerLost, view.Error.Kind)

	view, err = h.jobs.Poll(ctx, queued)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusQueued, view.Status, "queued jobs are never reaped")

	require.Len(t, events, 1)
	assert.Equal(t, string(domain.KindWorkerLost), (<-events).Message)

	assert.ErrorIs(t, h.registry.Heartbeat(ctx, stale, "w1"), domain.ErrNotOwner, "the lost worker cannot write back")
}

func TestReaper_RaceWithHeartbeat(t *testing.T) {
	registry := mocks.NewJobRegistryMock(t)
	job := domain.NewJob("job-1", domain.SubmitRequest{URL: sourceURL, Start: 0, End: 5}, time.Now())

	registry.EXPECT().ListStale(mock.Anything, mock.Anything).Return([]*domain.Job{job}, nil).Once()
	registry.EXPECT().MarkLost(mock.Anything, "job-1", mock.Anything).Return(false, nil).Once()

	n, err := NewReaper(registry, nil, nil, time.Minute).Reap(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReaper_ListError(t *testing.T) {
	registry := mocks.NewJobRegistryMock(t)
	registry.EXPECT().ListStale(mock.Anything, mock.Anything).Return(nil, errors.New("database is locked")).Once()

	_, err := NewReaper(registry, nil, nil, time.Minute).Reap(context.Background())
	assert.ErrorContains(t, err, "database is locked")
}
