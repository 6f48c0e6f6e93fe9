package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/infrastructure/logger"
	"github.com/bnema/snip/internal/service"
)

func buildWorkerCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the worker pool with the reaper and retention sweeper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app) error {
				if err := checkDependencies(a.cfg); err != nil {
					return err
				}
				logger.Info.Printf("starting snip worker: workers=%d, registry=%s, storage=%s",
					a.cfg.Workers, a.cfg.Registry, a.cfg.StorageDir)

				g, ctx := errgroup.WithContext(cmd.Context())
				g.Go(func() error { return a.pool.Run(ctx) })
				g.Go(func() error { return a.reaper.Run(ctx) })
				g.Go(func() error { return a.retention.Run(ctx) })
				if a.cfg.MetricsAddr != "" {
					g.Go(func() error { return a.metrics.Serve(ctx, a.cfg.MetricsAddr) })
				}
				err := g.Wait()
				if errors.Is(err, context.Canceled) {
					err = nil
				}
				logger.Info.Printf("snip worker stopped")
				return err
			})
		},
	}
}

type submitFlags struct {
	start  string
	end    string
	format string
	height int
}

func (f *submitFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.start, "start", "s", "", "clip start (seconds, MM:SS or HH:MM:SS.mmm)")
	cmd.Flags().StringVarP(&f.end, "end", "e", "", "clip end, exclusive")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "requested format id (empty for best available)")
	cmd.Flags().IntVar(&f.height, "height", 0, "height of the requested format, used when it has vanished")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

func (f *submitFlags) request(url string) (domain.SubmitRequest, error) {
	start, err := domain.ParseTimestamp(f.start)
	if err != nil {
		return domain.SubmitRequest{}, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := domain.ParseTimestamp(f.end)
	if err != nil {
		return domain.SubmitRequest{}, fmt.Errorf("invalid --end: %w", err)
	}
	return domain.SubmitRequest{
		URL:             url,
		Start:           start,
		End:             end,
		RequestedFormat: f.format,
		RequestedHeight: f.height,
	}, nil
}

func buildSubmitCommand(opts *rootOptions) *cobra.Command {
	flags := &submitFlags{}
	cmd := &cobra.Command{
		Use:   "submit URL",
		Short: "Queue a clip job and print its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(func(a *app) error {
				id, err := a.jobs.Submit(cmd.Context(), req)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
				return err
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func buildStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status [ID]",
		Short: "Show one job, or job counts per status",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app) error {
				if len(args) == 1 {
					view, err := a.jobs.Poll(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), view)
				}
				counts, err := a.registry.CountByStatus(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), counts)
			})
		},
	}
}

func buildFormatsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "formats URL",
		Short: "List the usable format variants of a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app) error {
				info, err := a.resolver.Resolve(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printFormats(cmd.OutOrStdout(), info)
			})
		},
	}
}

func printFormats(w io.Writer, info *domain.SourceInfo) error {
	if _, err := fmt.Fprintf(w, "%s (%s)\n\n", info.Title, domain.FormatTimestamp(info.Duration)); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tEXT\tHEIGHT\tVCODEC\tACODEC\tSIZE")
	for _, v := range info.Variants {
		height, size := "-", "~"
		if v.Height > 0 {
			height = strconv.Itoa(v.Height) + "p"
		}
		if v.ApproxSizeBytes != nil {
			size = humanize.Bytes(uint64(*v.ApproxSizeBytes))
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			v.FormatID, v.Container, height, orDash(v.VideoCodec), orDash(v.AudioCodec), size)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func buildFetchCommand(opts *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "fetch ID",
		Short: "Write the clip of a finished job to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app) error {
				return fetchTo(cmd.Context(), cmd.OutOrStdout(), a.jobs, args[0], output)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to the stored file name)")
	return cmd
}

// fetchTo copies a finished clip to output, or to its stored base name when output is empty.
func fetchTo(ctx context.Context, w io.Writer, jobs *service.JobService, id, output string) error {
	rc, art, err := jobs.Fetch(ctx, id)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	if output == "" {
		output = filepath.Base(art.StorageKey)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	n, err := io.Copy(f, rc)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(output)
		return fmt.Errorf("write %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s (%s)\n", output, humanize.Bytes(uint64(n)))
	return err
}

func buildSweepCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Reap stale jobs and apply the retention policy once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app) error {
				reaped, err := a.reaper.Reap(cmd.Context())
				if err != nil {
					return err
				}
				report, err := a.retention.Sweep(cmd.Context())
				if err != nil {
					return err
				}
				report.ReapedJobs += reaped
				return printJSON(cmd.OutOrStdout(), report)
			})
		},
	}
}

func buildClipCommand(opts *rootOptions) *cobra.Command {
	flags := &submitFlags{}
	var output string
	cmd := &cobra.Command{
		Use:   "clip URL",
		Short: "Submit, process and fetch a clip in one go",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(args[0])
			if err != nil {
				return err
			}
			return opts.withApp(func(a *app) error {
				if err := checkDependencies(a.cfg); err != nil {
					return err
				}
				return runClip(cmd.Context(), cmd.ErrOrStderr(), cmd.OutOrStdout(), a, req, output)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to the stored file name)")
	return cmd
}

func runClip(ctx context.Context, progress, out io.Writer, a *app, req domain.SubmitRequest, output string) error {
	id, err := a.jobs.Submit(ctx, req)
	if err != nil {
		return err
	}

	events := a.bus.Subscribe(id)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range events {
			_, _ = fmt.Fprintf(progress, "[%3d%%] %s\n", ev.Progress, ev.Stage)
		}
	}()

	ran, err := a.pool.RunOne(ctx, id)
	a.bus.Unsubscribe(id, events)
	<-done
	if err != nil {
		return err
	}
	if !ran {
		return fmt.Errorf("job %s was claimed by another worker", id)
	}

	view, err := a.jobs.Poll(ctx, id)
	if err != nil {
		return err
	}
	if view.Error != nil {
		return view.Error
	}
	return fetchTo(ctx, out, a.jobs, id, output)
}
