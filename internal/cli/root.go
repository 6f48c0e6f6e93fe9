// Package cli is the snip command line: a worker daemon plus the submission and polling
// commands that drive it.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/snip/config"
	"github.com/bnema/snip/internal/infrastructure/logger"
)

type rootOptions struct {
	configFile string
	logLevel   string
	registry   string
	dataDir    string
}

// BuildCLI assembles the command tree.
func BuildCLI() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "snip",
		Short: "Cut clips out of online videos",
		Long: `snip downloads a video with yt-dlp, trims [start, end) with ffmpeg and publishes
the clip to a date-partitioned local store. Jobs go through a shared registry so
any number of workers can run side by side.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", os.Getenv("SNIP_CONFIG"), "YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&opts.registry, "registry", "", "job registry: sqlite or jsonfile (overrides REGISTRY)")
	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (overrides DATA_DIR)")

	rootCmd.AddCommand(
		buildWorkerCommand(opts),
		buildSubmitCommand(opts),
		buildStatusCommand(opts),
		buildFormatsCommand(opts),
		buildFetchCommand(opts),
		buildSweepCommand(opts),
		buildClipCommand(opts),
	)
	return rootCmd
}

// Execute runs the command tree with a context cancelled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return BuildCLI().ExecuteContext(ctx)
}

func (o *rootOptions) load() (*config.Config, error) {
	if o.dataDir != "" {
		if err := os.Setenv("DATA_DIR", o.dataDir); err != nil {
			return nil, err
		}
	}
	cfg, err := config.LoadFile(o.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if o.registry != "" {
		cfg.Registry = o.registry
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withApp loads configuration, wires the pipeline and closes it after fn.
func (o *rootOptions) withApp(fn func(a *app) error) error {
	cfg, err := o.load()
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn.Printf("failed to close registry: %v", err)
		}
	}()
	return fn(a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
