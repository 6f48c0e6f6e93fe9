// Package ytdlp enumerates and downloads source video variants with yt-dlp.
package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/infrastructure/logger"
	"github.com/bnema/snip/internal/port"
)

type Options struct {
	Bin             string
	CookiesFile     string
	ProxyURL        string
	ProbeTimeout    time.Duration
	DownloadTimeout time.Duration
}

type Client struct {
	runner port.CommandRunner
	opts   Options
}

func New(runner port.CommandRunner, opts Options) *Client {
	if opts.Bin == "" {
		opts.Bin = "yt-dlp"
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = time.Minute
	}
	if opts.DownloadTimeout <= 0 {
		opts.DownloadTimeout = 10 * time.Minute
	}
	return &Client{runner: runner, opts: opts}
}

// probeOutput is the subset of `yt-dlp -J` we read.
type probeOutput struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Duration float64       `json:"duration"`
	Formats  []probeFormat `json:"formats"`
}

type probeFormat struct {
	FormatID       string `json:"format_id"`
	Ext            string `json:"ext"`
	VCodec         string `json:"vcodec"`
	ACodec         string `json:"acodec"`
	Height         *int   `json:"height"`
	FileSize       *int64 `json:"filesize"`
	FileSizeApprox *int64 `json:"filesize_approx"`
}

func (c *Client) Probe(ctx context.Context, url string) (*domain.SourceInfo, error) {
	if strings.TrimSpace(url) == "" {
		return nil, domain.NewJobError(domain.KindInvalidRequest, "source URL is required")
	}

	args := append([]string{"-J", "--no-playlist", "--no-warnings"}, c.commonArgs()...)
	args = append(args, url)

	res, err := c.runner.Run(ctx, port.Command{
		Name:    c.opts.Bin,
		Args:    args,
		Timeout: c.opts.ProbeTimeout,
	})
	if err != nil {
		return nil, domain.Classify(err, domain.KindSourceUnavailable)
	}
	if !res.Success() {
		return nil, classifyStderr(res.Stderr, domain.KindResolutionFailed)
	}
	if len(res.Stdout) == 0 {
		return nil, domain.NewJobError(domain.KindResolutionFailed, "yt-dlp returned empty output")
	}

	var out probeOutput
	if err := json.Unmarshal(res.Stdout, &out); err != nil {
		return nil, domain.WrapJobError(domain.KindResolutionFailed, fmt.Errorf("parse yt-dlp output: %w", err), "")
	}

	variants := make([]domain.FormatVariant, 0, len(out.Formats))
	for _, f := range out.Formats {
		variants = append(variants, toVariant(f))
	}

	info := &domain.SourceInfo{
		ID:       out.ID,
		Title:    out.Title,
		Duration: out.Duration,
		Variants: domain.FilterPlaceholders(variants),
	}
	logger.Debug.Printf("probed %s: %d formats, %d after filtering", logger.SanitizeForLog(url), len(out.Formats), len(info.Variants))
	return info, nil
}

func toVariant(f probeFormat) domain.FormatVariant {
	v := domain.FormatVariant{
		FormatID:  f.FormatID,
		Container: f.Ext,
	}
	if f.Height != nil {
		v.Height = *f.Height
	}
	switch {
	case f.FileSize != nil && *f.FileSize > 0:
		v.ApproxSizeBytes = f.FileSize
	case f.FileSizeApprox != nil && *f.FileSizeApprox > 0:
		v.ApproxSizeBytes = f.FileSizeApprox
	}

	vKnown, vPresent := codecState(f.VCodec)
	aKnown, aPresent := codecState(f.ACodec)
	switch {
	case !vKnown && !aKnown:
		// direct file links often carry no codec metadata at all
		v.HasVideo = v.Height > 0 || f.Ext != ""
		v.HasAudio = v.HasVideo
	case !vKnown:
		v.HasVideo = v.Height > 0
		v.HasAudio = aPresent
	case !aKnown:
		v.HasVideo = vPresent
		v.HasAudio = false
	default:
		v.HasVideo = vPresent
		v.HasAudio = aPresent
	}
	if v.HasVideo {
		v.VideoCodec = f.VCodec
	}
	if v.HasAudio {
		v.AudioCodec = f.ACodec
	}
	return v
}

// codecState reports whether yt-dlp told us anything about a codec, and whether it exists.
func codecState(codec string) (known, present bool) {
	switch strings.TrimSpace(codec) {
	case "":
		return false, false
	case "none":
		return true, false
	default:
		return true, true
	}
}

func (c *Client) Download(ctx context.Context, req domain.DownloadRequest) (string, error) {
	if strings.TrimSpace(req.URL) == "" || strings.TrimSpace(req.Selector) == "" {
		return "", domain.NewJobError(domain.KindInvalidRequest, "download needs a URL and a format selector")
	}
	if strings.TrimSpace(req.Dir) == "" {
		return "", domain.NewJobError(domain.KindStorageFailure, "download directory is required")
	}
	base := req.BaseName
	if base == "" {
		base = "source"
	}

	args := []string{
		"--no-playlist",
		"--no-warnings",
		"--newline",
		"--progress",
		"--no-part",
		"-f", req.Selector,
		"-P", req.Dir,
		"-o", base + ".%(ext)s",
		"--print", "after_move:filepath",
	}
	args = append(args, c.commonArgs()...)
	args = append(args, req.URL)

	res, err := c.runner.Run(ctx, port.Command{
		Name:    c.opts.Bin,
		Args:    args,
		Dir:     req.Dir,
		Timeout: c.opts.DownloadTimeout,
		OnLine: func(line string) {
			if pct, ok := parseProgress(line); ok {
				if req.OnProgress != nil {
					req.OnProgress(pct)
				}
				return
			}
			logger.Debug.Printf("yt-dlp: %s", logger.SanitizeForLog(line))
		},
	})
	if err != nil {
		return "", domain.Classify(err, domain.KindDownloadFailed)
	}
	if !res.Success() {
		return "", classifyStderr(res.Stderr, domain.KindDownloadFailed)
	}

	path, err := downloadedPath(res.Stdout, req.Dir, base)
	if err != nil {
		return "", domain.WrapJobError(domain.KindDownloadFailed, err, res.Stderr)
	}
	if err := checkVideoFile(path); err != nil {
		return "", domain.WrapJobError(domain.KindDownloadFailed, err, "")
	}
	return path, nil
}

var progressLine = regexp.MustCompile(`^\[download\]\s+(\d+(?:\.\d+)?)%`)

// parseProgress reads the percentage of a "[download]  42.0% of ..." line.
func parseProgress(line string) (float64, bool) {
	m := progressLine.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, false
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil || pct > 100 {
		return 0, false
	}
	return pct, true
}

func (c *Client) commonArgs() []string {
	var args []string
	if strings.TrimSpace(c.opts.CookiesFile) != "" {
		args = append(args, "--cookies", c.opts.CookiesFile)
	}
	if strings.TrimSpace(c.opts.ProxyURL) != "" {
		args = append(args, "--proxy", strings.TrimSpace(c.opts.ProxyURL))
	}
	return args
}

// downloadedPath takes the last printed path, falling back to a directory scan when yt-dlp
// printed nothing.
func downloadedPath(stdout []byte, dir, base string) (string, error) {
	lines := strings.Split(strings.TrimSpace(string(stdout)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		p := strings.TrimSpace(lines[i])
		if p == "" {
			continue
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	matches, err := filepath.Glob(filepath.Join(dir, base+".*"))
	if err != nil {
		return "", fmt.Errorf("scan download dir: %w", err)
	}
	for _, m := range matches {
		if strings.HasSuffix(m, ".part") || strings.HasSuffix(m, ".ytdl") {
			continue
		}
		return m, nil
	}
	return "", fmt.Errorf("yt-dlp reported success but no file was written")
}

var _ port.Extractor = (*Client)(nil)
