package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/snip/internal/domain"
)

func TestNewCollector(t *testing.T) {
	c := NewCollector()

	assert.NotNil(t, c.jobsClaimed)
	assert.NotNil(t, c.jobsCompleted)
	assert.NotNil(t, c.jobsFailed)
	assert.NotNil(t, c.stageDuration)

	assert.NotPanics(t, func() { NewCollector() }, "collectors do not share a registry")
}

func TestCollector_Records(t *testing.T) {
	c := NewCollector()

	c.RecordSubmitted()
	c.RecordClaimed()
	c.RecordClaimed()
	c.RecordCompleted(domain.TrimHybrid, 1024)
	c.RecordFailed(domain.KindEncodeFailed)
	c.RecordLost(2)
	c.RecordSweep(&domain.SweepResult{DeletedCount: 3, FreedBytes: 300}, 4)
	c.ObserveStage(domain.StageTrimming, 2*time.Second)
	c.SetJobCounts(map[domain.JobStatus]int{domain.JobStatusQueued: 5})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.jobsSubmitted))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.jobsClaimed))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.jobsCompleted.WithLabelValues("hybrid")))
	assert.Equal(t, 1024.0, testutil.ToFloat64(c.publishedBytes))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.jobsFailed.WithLabelValues("EncodeFailed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.jobsFailed.WithLabelValues("WorkerLost")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.jobsLost))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.sweepDeleted))
	assert.Equal(t, 300.0, testutil.ToFloat64(c.sweepFreed))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.jobsReaped))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.jobsByStatus.WithLabelValues("queued")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.jobsByStatus.WithLabelValues("working")))
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.RecordSubmitted()
		c.RecordClaimed()
		c.RecordCompleted(domain.TrimStreamCopy, 10)
		c.RecordFailed(domain.KindTimeout)
		c.RecordLost(1)
		c.RecordSweep(nil, 0)
		c.ObserveStage(domain.StageDownload, time.Second)
		c.SetJobCounts(nil)
	})
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.RecordClaimed()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "snip_jobs_claimed_total 1"))
}
