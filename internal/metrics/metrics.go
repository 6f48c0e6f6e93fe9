// Package metrics exposes worker, storage and queue counters in the Prometheus format.
//
// Every method is safe on a nil *Collector, so callers that run without a metrics
// listener pass nil instead of a stub.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/infrastructure/logger"
)

type Collector struct {
	registry *prometheus.Registry

	jobsSubmitted prometheus.Counter
	jobsClaimed   prometheus.Counter
	jobsCompleted *prometheus.CounterVec
	jobsFailed    *prometheus.CounterVec
	jobsLost      prometheus.Counter

	stageDuration  *prometheus.HistogramVec
	publishedBytes prometheus.Counter

	sweepDeleted prometheus.Counter
	sweepFreed   prometheus.Counter
	jobsReaped   prometheus.Counter

	jobsByStatus *prometheus.GaugeVec
}

// NewCollector registers every metric on a private registry, so several collectors can
// coexist in one process (tests, one-shot commands).
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		jobsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snip_jobs_submitted_total",
			Help: "Total number of clip jobs submitted",
		}),
		jobsClaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snip_jobs_claimed_total",
			Help: "Total number of jobs claimed by a worker",
		}),
		jobsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "snip_jobs_completed_total",
			Help: "Total number of jobs that published an artifact, by trim strategy",
		}, []string{"strategy"}),
		jobsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "snip_jobs_failed_total",
			Help: "Total number of failed jobs, by error kind",
		}, []string{"kind"}),
		jobsLost: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snip_jobs_lost_total",
			Help: "Total number of working jobs the reaper marked as lost",
		}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "snip_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"stage"}),
		publishedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snip_published_bytes_total",
			Help: "Total bytes of published artifacts",
		}),
		sweepDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snip_sweep_deleted_total",
			Help: "Total number of artifacts deleted by retention sweeps",
		}),
		sweepFreed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snip_sweep_freed_bytes_total",
			Help: "Total bytes freed by retention sweeps",
		}),
		jobsReaped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snip_jobs_reaped_total",
			Help: "Total number of job records removed by housekeeping",
		}),
		jobsByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "snip_jobs",
			Help: "Current number of job records, by status",
		}, []string{"status"}),
	}

	c.registry.MustRegister(
		c.jobsSubmitted,
		c.jobsClaimed,
		c.jobsCompleted,
		c.jobsFailed,
		c.jobsLost,
		c.stageDuration,
		c.publishedBytes,
		c.sweepDeleted,
		c.sweepFreed,
		c.jobsReaped,
		c.jobsByStatus,
	)
	return c
}

func (c *Collector) RecordSubmitted() {
	if c == nil {
		return
	}
	c.jobsSubmitted.Inc()
}

func (c *Collector) RecordClaimed() {
	if c == nil {
		return
	}
	c.jobsClaimed.Inc()
}

func (c *Collector) RecordCompleted(strategy domain.TrimStrategy, sizeBytes int64) {
	if c == nil {
		return
	}
	c.jobsCompleted.WithLabelValues(string(strategy)).Inc()
	c.publishedBytes.Add(float64(sizeBytes))
}

func (c *Collector) RecordFailed(kind domain.ErrorKind) {
	if c == nil {
		return
	}
	c.jobsFailed.WithLabelValues(string(kind)).Inc()
}

func (c *Collector) RecordLost(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.jobsLost.Add(float64(n))
	c.jobsFailed.WithLabelValues(string(domain.KindWorkerLost)).Add(float64(n))
}

func (c *Collector) ObserveStage(stage string, d time.Duration) {
	if c == nil {
		return
	}
	c.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (c *Collector) RecordSweep(res *domain.SweepResult, reaped int) {
	if c == nil {
		return
	}
	if res != nil {
		c.sweepDeleted.Add(float64(res.DeletedCount))
		c.sweepFreed.Add(float64(res.FreedBytes))
	}
	if reaped > 0 {
		c.jobsReaped.Add(float64(reaped))
	}
}

// SetJobCounts replaces the per-status gauges. Statuses missing from counts read as zero.
func (c *Collector) SetJobCounts(counts map[domain.JobStatus]int) {
	if c == nil {
		return
	}
	for _, s := range []domain.JobStatus{
		domain.JobStatusQueued,
		domain.JobStatusWorking,
		domain.JobStatusDone,
		domain.JobStatusError,
	} {
		c.jobsByStatus.WithLabelValues(string(s)).Set(float64(counts[s]))
	}
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info.Printf("metrics listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
