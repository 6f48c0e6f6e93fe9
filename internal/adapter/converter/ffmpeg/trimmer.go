package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/infrastructure/logger"
	"github.com/bnema/snip/internal/port"
)

type Options struct {
	EncoderBin        string
	ProbeBin          string
	EncodeTimeout     time.Duration
	ProbeTimeout      time.Duration
	KeyframeTolerance time.Duration
	DurationTolerance time.Duration
}

// Trimmer cuts clips out of downloaded sources with ffmpeg and verifies them with ffprobe.
type Trimmer struct {
	runner port.CommandRunner
	opts   Options
}

func NewTrimmer(runner port.CommandRunner, opts Options) *Trimmer {
	if opts.EncoderBin == "" {
		opts.EncoderBin = "ffmpeg"
	}
	if opts.ProbeBin == "" {
		opts.ProbeBin = "ffprobe"
	}
	if opts.EncodeTimeout <= 0 {
		opts.EncodeTimeout = 5 * time.Minute
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = time.Minute
	}
	if opts.KeyframeTolerance <= 0 {
		opts.KeyframeTolerance = 50 * time.Millisecond
	}
	if opts.DurationTolerance <= 0 {
		opts.DurationTolerance = 500 * time.Millisecond
	}
	return &Trimmer{runner: runner, opts: opts}
}

func (t *Trimmer) Trim(ctx context.Context, req domain.TrimRequest) (*domain.TrimResult, error) {
	if err := validatePath(req.Source); err != nil {
		return nil, domain.WrapJobError(domain.KindEncodeFailed, fmt.Errorf("source: %w", err), "")
	}
	if req.Start < 0 || req.End <= req.Start {
		return nil, domain.NewJobError(domain.KindInvalidRequest, fmt.Sprintf("invalid trim range %s-%s", seconds(req.Start), seconds(req.End)))
	}

	src, err := t.Probe(ctx, req.Source)
	if err != nil {
		return nil, err
	}
	vs := src.VideoStream()
	if vs == nil {
		return nil, domain.NewJobError(domain.KindEncodeFailed, "source has no video stream")
	}
	if total := src.Duration(); total > 0 && req.Start >= total {
		return nil, domain.NewJobError(domain.KindInvalidRequest,
			fmt.Sprintf("clip starts at %s but the source is only %s long", seconds(req.Start), seconds(total)))
	}

	keyframes, err := t.keyframes(ctx, req.Source, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	headArgs, matched := headEncoder(vs)
	plan := planTrim(keyframes, req.Start, req.End, t.opts.KeyframeTolerance.Seconds(), matched)

	audio := ""
	if as := src.AudioStream(); as != nil {
		audio = as.CodecName
	}
	ext := containerFor(vs.CodecName, audio)
	if plan.Strategy == domain.TrimReencode {
		ext = "mp4"
	}
	base := req.BaseName
	if base == "" {
		base = "clip"
	}
	out := filepath.Join(req.OutputDir, base+"."+ext)

	logger.Debug.Printf("trim %s [%s, %s) strategy=%s keyframes=%d",
		filepath.Base(req.Source), seconds(req.Start), seconds(req.End), plan.Strategy, len(keyframes))

	switch plan.Strategy {
	case domain.TrimStreamCopy:
		err = t.copySegment(ctx, req.Source, req.Start, req.End, out)
	case domain.TrimHybrid:
		err = t.hybrid(ctx, req, plan, headArgs, base, ext, out)
	default:
		err = t.reencode(ctx, req.Source, req.Start, req.End, out)
	}
	if err != nil {
		_ = os.Remove(out)
		return nil, err
	}

	result, err := t.verify(ctx, out, req.Duration())
	if err != nil {
		_ = os.Remove(out)
		return nil, err
	}
	result.Strategy = plan.Strategy
	return result, nil
}

// Probe reads container and stream metadata.
func (t *Trimmer) Probe(ctx context.Context, path string) (*domain.ProbeResult, error) {
	res, err := t.runner.Run(ctx, port.Command{
		Name: t.opts.ProbeBin,
		Args: []string{
			"-v", "error",
			"-print_format", "json",
			"-show_format",
			"-show_streams",
			path,
		},
		Timeout: t.opts.ProbeTimeout,
	})
	if err != nil {
		return nil, domain.Classify(err, domain.KindEncodeFailed)
	}
	if !res.Success() {
		return nil, domain.WrapJobError(domain.KindEncodeFailed, fmt.Errorf("ffprobe exited with %d", res.ExitCode), res.Stderr)
	}

	var probe domain.ProbeResult
	if err := json.Unmarshal(res.Stdout, &probe); err != nil {
		return nil, domain.WrapJobError(domain.KindEncodeFailed, fmt.Errorf("parse ffprobe output: %w", err), "")
	}
	return &probe, nil
}

// keyframes lists video keyframe timestamps between slightly before start and end.
func (t *Trimmer) keyframes(ctx context.Context, path string, start, end float64) ([]float64, error) {
	from := math.Max(0, start-t.opts.KeyframeTolerance.Seconds())
	res, err := t.runner.Run(ctx, port.Command{
		Name: t.opts.ProbeBin,
		Args: []string{
			"-v", "error",
			"-select_streams", "v:0",
			"-read_intervals", seconds(from) + "%" + seconds(end),
			"-show_entries", "packet=pts_time,flags",
			"-of", "json",
			path,
		},
		Timeout: t.opts.ProbeTimeout,
	})
	if err != nil {
		return nil, domain.Classify(err, domain.KindEncodeFailed)
	}
	if !res.Success() {
		return nil, domain.WrapJobError(domain.KindEncodeFailed, fmt.Errorf("keyframe probe exited with %d", res.ExitCode), res.Stderr)
	}

	var pp domain.PacketProbe
	if err := json.Unmarshal(res.Stdout, &pp); err != nil {
		return nil, domain.WrapJobError(domain.KindEncodeFailed, fmt.Errorf("parse keyframe probe: %w", err), "")
	}
	return pp.Keyframes(), nil
}

func (t *Trimmer) copySegment(ctx context.Context, src string, start, end float64, out string) error {
	args := []string{
		"-ss", seconds(start),
		"-i", src,
		"-t", seconds(end - start),
		"-map", "0:v:0",
		"-map", "0:a:0?",
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
	}
	return t.encode(ctx, withFaststart(args, out), out)
}

func (t *Trimmer) reencode(ctx context.Context, src string, start, end float64, out string) error {
	args := []string{
		"-ss", seconds(start),
		"-i", src,
		"-t", seconds(end - start),
		"-map", "0:v:0",
		"-map", "0:a:0?",
		"-c:v", "libx264",
		"-crf", "23",
		"-preset", "medium",
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "128k",
	}
	return t.encode(ctx, withFaststart(args, out), out)
}

// hybrid re-encodes [start, keyframe) with a matching encoder, stream-copies
// [keyframe, end) and joins both with the concat demuxer.
func (t *Trimmer) hybrid(ctx context.Context, req domain.TrimRequest, plan trimPlan, headArgs []string, base, ext, out string) error {
	head := filepath.Join(req.OutputDir, base+".head."+ext)
	tail := filepath.Join(req.OutputDir, base+".tail."+ext)
	list := filepath.Join(req.OutputDir, base+".concat.txt")
	defer func() {
		for _, p := range []string{head, tail, list} {
			_ = os.Remove(p)
		}
	}()

	args := []string{
		"-ss", seconds(plan.Start),
		"-i", req.Source,
		"-t", seconds(plan.Keyframe - plan.Start),
		"-map", "0:v:0",
		"-map", "0:a:0?",
	}
	args = append(args, headArgs...)
	args = append(args, "-c:a", "copy")
	if err := t.encode(ctx, append(args, head), head); err != nil {
		return err
	}

	if err := t.copySegment(ctx, req.Source, plan.Keyframe, plan.End, tail); err != nil {
		return err
	}

	manifest := fmt.Sprintf("file '%s'\nfile '%s'\n", concatEscape(head), concatEscape(tail))
	if err := os.WriteFile(list, []byte(manifest), 0o600); err != nil {
		return domain.WrapJobError(domain.KindStorageFailure, fmt.Errorf("write concat list: %w", err), "")
	}

	concat := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", list,
		"-c", "copy",
	}
	return t.encode(ctx, withFaststart(concat, out), out)
}

func (t *Trimmer) encode(ctx context.Context, args []string, out string) error {
	if err := validatePath(out); err != nil {
		return domain.WrapJobError(domain.KindEncodeFailed, fmt.Errorf("output: %w", err), "")
	}
	full := append([]string{"-hide_banner", "-nostdin", "-y", "-loglevel", "error"}, args...)

	res, err := t.runner.Run(ctx, port.Command{
		Name:    t.opts.EncoderBin,
		Args:    full,
		Timeout: t.opts.EncodeTimeout,
	})
	if err != nil {
		return domain.Classify(err, domain.KindEncodeFailed)
	}
	if !res.Success() {
		return domain.WrapJobError(domain.KindEncodeFailed, fmt.Errorf("ffmpeg exited with %d", res.ExitCode), res.Stderr)
	}
	return nil
}

// verify rejects outputs without video, of zero length, or of the wrong duration.
func (t *Trimmer) verify(ctx context.Context, out string, want float64) (*domain.TrimResult, error) {
	info, err := os.Stat(out)
	if err != nil || info.Size() == 0 {
		return nil, domain.NewJobError(domain.KindEmptyOutput, "encoder produced no output")
	}

	probe, err := t.Probe(ctx, out)
	if err != nil {
		return nil, err
	}
	got := probe.Duration()
	if probe.VideoStream() == nil || got <= 0 {
		return nil, domain.NewJobError(domain.KindEmptyOutput, "output has no decodable video")
	}
	if math.Abs(got-want) > t.opts.DurationTolerance.Seconds() {
		return nil, domain.NewJobError(domain.KindDurationMismatch,
			fmt.Sprintf("output is %ss, expected %ss", seconds(got), seconds(want)))
	}

	return &domain.TrimResult{
		OutputPath: out,
		Duration:   got,
		SizeBytes:  info.Size(),
	}, nil
}

func withFaststart(args []string, out string) []string {
	if strings.EqualFold(filepath.Ext(out), ".mp4") {
		args = append(args, "-movflags", "+faststart")
	}
	return append(args, out)
}

func concatEscape(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}

var _ port.Trimmer = (*Trimmer)(nil)
