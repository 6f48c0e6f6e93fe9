package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/bnema/snip/config"
	"github.com/bnema/snip/internal/adapter/converter/ffmpeg"
	"github.com/bnema/snip/internal/adapter/extractor/ytdlp"
	"github.com/bnema/snip/internal/adapter/runner"
	"github.com/bnema/snip/internal/adapter/storage/jsonfile"
	"github.com/bnema/snip/internal/adapter/storage/localfs"
	"github.com/bnema/snip/internal/adapter/storage/sqlite"
	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/metrics"
	"github.com/bnema/snip/internal/port"
	"github.com/bnema/snip/internal/service"
)

// app holds the wired pipeline for one command invocation.
type app struct {
	cfg       *config.Config
	registry  port.JobRegistry
	store     *localfs.Store
	extractor *ytdlp.Client
	metrics   *metrics.Collector
	bus       *service.EventBus
	resolver  *service.FormatResolver
	jobs      *service.JobService
	pool      *service.WorkerPool
	reaper    *service.Reaper
	retention *service.Retention
}

func newApp(cfg *config.Config) (*app, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	registry, err := openRegistry(cfg)
	if err != nil {
		return nil, err
	}
	store, err := localfs.NewStore(cfg.StorageDir, cfg.LookbackDays)
	if err != nil {
		_ = registry.Close()
		return nil, err
	}

	cmdRunner := runner.New()
	extractor := ytdlp.New(cmdRunner, ytdlp.Options{
		Bin:             cfg.ExtractorBin,
		CookiesFile:     cfg.CookiesFile,
		ProxyURL:        cfg.ProxyURL,
		ProbeTimeout:    cfg.ProbeTimeout,
		DownloadTimeout: cfg.DownloadTimeout,
	})
	trimmer := ffmpeg.NewTrimmer(cmdRunner, ffmpeg.Options{
		EncoderBin:        cfg.EncoderBin,
		ProbeBin:          cfg.ProbeBin,
		EncodeTimeout:     cfg.EncodeTimeout,
		ProbeTimeout:      cfg.ProbeTimeout,
		KeyframeTolerance: cfg.KeyframeTolerance,
		DurationTolerance: cfg.DurationTolerance,
	})

	collector := metrics.NewCollector()
	bus := service.NewEventBus()
	resolver := service.NewFormatResolver(extractor, service.FallbackPolicy{
		CapHeight:     cfg.FallbackCapHeight,
		MaxHeightDrop: cfg.FallbackMaxHeightDrop,
		AllowAny:      cfg.FallbackAllowAny,
	})
	policy := domain.RetentionPolicy{
		MaxAge:        cfg.RetentionMaxAge,
		MaxTotalBytes: cfg.RetentionMaxBytes,
	}

	return &app{
		cfg:       cfg,
		registry:  registry,
		store:     store,
		extractor: extractor,
		metrics:   collector,
		bus:       bus,
		resolver:  resolver,
		jobs: service.NewJobService(registry, store, collector, service.JobServiceOptions{
			MaxClipDuration:  cfg.MaxClipDuration,
			VerifyChecksum:   cfg.VerifyChecksum,
			DeleteAfterFetch: cfg.DeleteAfterFetch,
		}),
		pool: service.NewWorkerPool(registry, resolver, extractor, trimmer, store, bus, collector, service.WorkerOptions{
			Workers:           cfg.Workers,
			WorkDir:           cfg.WorkDir,
			HeartbeatInterval: cfg.HeartbeatInterval,
		}),
		reaper: service.NewReaper(registry, bus, collector, cfg.StaleAfter),
		retention: service.NewRetention(registry, store, collector, service.RetentionOptions{
			Policy:   policy,
			QueueTTL: cfg.QueueTTL,
			Interval: cfg.SweepInterval,
		}),
	}, nil
}

func openRegistry(cfg *config.Config) (port.JobRegistry, error) {
	switch cfg.Registry {
	case config.RegistryJSONFile:
		return jsonfile.NewRegistry(cfg.DataDir)
	case config.RegistrySQLite:
		store, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open job registry: %w", err)
		}
		return sqlite.NewRegistry(store), nil
	default:
		return nil, fmt.Errorf("unknown registry %q", cfg.Registry)
	}
}

func (a *app) Close() error {
	return a.registry.Close()
}

const (
	ytdlpInstallURL  = "https://github.com/yt-dlp/yt-dlp#installation"
	ffmpegInstallURL = "https://ffmpeg.org/download.html"
)

// DependencyError names an external tool missing from PATH.
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// checkDependencies reports every configured tool that cannot be found.
func checkDependencies(cfg *config.Config) error {
	tools := []struct {
		bin string
		url string
	}{
		{cfg.ExtractorBin, ytdlpInstallURL},
		{cfg.EncoderBin, ffmpegInstallURL},
		{cfg.ProbeBin, ffmpegInstallURL},
	}

	var errs []error
	for _, tool := range tools {
		if _, err := exec.LookPath(tool.bin); err != nil {
			errs = append(errs, &DependencyError{Name: filepath.Base(tool.bin), InstallURL: tool.url})
		}
	}
	return errors.Join(errs...)
}
