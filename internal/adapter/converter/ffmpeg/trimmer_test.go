package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/port"
	"github.com/bnema/snip/internal/port/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "valid path", path: "/tmp/video.mp4"},
		{name: "valid path with spaces", path: "/tmp/my video.mp4"},
		{name: "valid relative path", path: "video.mp4"},
		{name: "empty path", path: "", wantErr: ErrEmptyPath},
		{name: "null byte", path: "/tmp/\x00video.mp4", wantErr: ErrInvalidPath},
		{name: "looks like a flag", path: "-i.mp4", wantErr: ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePath(tt.path)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "validatePath(%q) = %v, want %v", tt.path, err, tt.wantErr)
		})
	}
}

func TestPlanTrim(t *testing.T) {
	tests := []struct {
		name      string
		keyframes []float64
		start     float64
		end       float64
		matched   bool
		want      domain.TrimStrategy
		wantKF    float64
	}{
		{name: "keyframe exactly at start", keyframes: []float64{8, 10, 12}, start: 10, end: 20, matched: true, want: domain.TrimStreamCopy},
		{name: "keyframe within tolerance", keyframes: []float64{9.97}, start: 10, end: 20, matched: true, want: domain.TrimStreamCopy},
		{name: "copy does not need codec match", keyframes: []float64{10}, start: 10, end: 20, matched: false, want: domain.TrimStreamCopy},
		{name: "keyframe inside clip", keyframes: []float64{8, 12, 16}, start: 10, end: 20, matched: true, want: domain.TrimHybrid, wantKF: 12},
		{name: "unmatched codec", keyframes: []float64{8, 12}, start: 10, end: 20, matched: false, want: domain.TrimReencode},
		{name: "no keyframe in range", keyframes: []float64{8, 24}, start: 10, end: 20, matched: true, want: domain.TrimReencode},
		{name: "keyframe at end is useless", keyframes: []float64{20}, start: 10, end: 20, matched: true, want: domain.TrimReencode},
		{name: "no keyframes", start: 10, end: 20, matched: true, want: domain.TrimReencode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := planTrim(tt.keyframes, tt.start, tt.end, 0.05, tt.matched)
			assert.Equal(t, tt.want, p.Strategy)
			assert.Equal(t, tt.wantKF, p.Keyframe)
		})
	}
}

func TestContainerFor(t *testing.T) {
	assert.Equal(t, "mp4", containerFor("h264", "aac"))
	assert.Equal(t, "webm", containerFor("vp9", "opus"))
	assert.Equal(t, "mkv", containerFor("vp9", "aac"))
	assert.Equal(t, "mkv", containerFor("mpeg2video", "mp2"))
}

// fakeTools answers ffprobe and ffmpeg invocations the way the real tools would.
type fakeTools struct {
	mu sync.Mutex

	videoCodec     string
	packets        []float64
	outputDuration float64
	outputNoVideo  bool
	encodeResult   port.CommandResult
	encodeErr      error

	encodes [][]string
}

func (f *fakeTools) run(_ context.Context, cmd port.Command) (port.CommandResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := cmd.Args[len(cmd.Args)-1]

	switch cmd.Name {
	case "ffprobe":
		if slices.Contains(cmd.Args, "-show_entries") {
			var pkts []string
			for _, p := range f.packets {
				pkts = append(pkts, fmt.Sprintf(`{"pts_time":"%.6f","flags":"K__"}`, p))
				pkts = append(pkts, fmt.Sprintf(`{"pts_time":"%.6f","flags":"___"}`, p+0.5))
			}
			return port.CommandResult{Stdout: []byte(`{"packets":[` + strings.Join(pkts, ",") + `]}`)}, nil
		}
		if strings.HasSuffix(path, "source.webm") {
			return port.CommandResult{Stdout: []byte(fmt.Sprintf(`{
				"format": {"duration": "600.000"},
				"streams": [
					{"codec_type": "video", "codec_name": %q, "profile": "High", "pix_fmt": "yuv420p", "r_frame_rate": "30/1"},
					{"codec_type": "audio", "codec_name": "aac"}
				]}`, f.videoCodec))}, nil
		}
		streams := `{"codec_type": "video", "codec_name": "h264"}, {"codec_type": "audio", "codec_name": "aac"}`
		if f.outputNoVideo {
			streams = `{"codec_type": "audio", "codec_name": "aac"}`
		}
		return port.CommandResult{Stdout: []byte(fmt.Sprintf(`{"format": {"duration": "%.3f"}, "streams": [%s]}`, f.outputDuration, streams))}, nil

	case "ffmpeg":
		f.encodes = append(f.encodes, cmd.Args)
		if f.encodeErr != nil || !f.encodeResult.Success() {
			return f.encodeResult, f.encodeErr
		}
		if err := os.WriteFile(path, []byte("encoded"), 0o600); err != nil {
			return port.CommandResult{}, err
		}
		return port.CommandResult{}, nil
	}
	return port.CommandResult{ExitCode: 127, Stderr: "unknown tool"}, nil
}

func newTestTrimmer(t *testing.T, tools *fakeTools) *Trimmer {
	t.Helper()
	r := mocks.NewCommandRunnerMock(t)
	r.EXPECT().Run(mock.Anything, mock.Anything).RunAndReturn(tools.run).Maybe()
	return NewTrimmer(r, Options{
		EncodeTimeout:     time.Minute,
		KeyframeTolerance: 50 * time.Millisecond,
		DurationTolerance: 500 * time.Millisecond,
	})
}

func trimRequest(t *testing.T, start, end float64) domain.TrimRequest {
	dir := t.TempDir()
	return domain.TrimRequest{
		Source:    filepath.Join(dir, "source.webm"),
		Start:     start,
		End:       end,
		OutputDir: dir,
		BaseName:  "clip",
	}
}

func argAfter(args []string, flag string) string {
	i := slices.Index(args, flag)
	if i < 0 || i+1 >= len(args) {
		return ""
	}
	return args[i+1]
}

func TestTrimmer_StreamCopy(t *testing.T) {
	tools := &fakeTools{videoCodec: "h264", packets: []float64{0, 10, 20}, outputDuration: 10}
	trimmer := newTestTrimmer(t, tools)

	res, err := trimmer.Trim(context.Background(), trimRequest(t, 10.02, 20.02))
	require.NoError(t, err)

	assert.Equal(t, domain.TrimStreamCopy, res.Strategy)
	assert.Equal(t, ".mp4", filepath.Ext(res.OutputPath))
	require.Len(t, tools.encodes, 1)

	args := tools.encodes[0]
	assert.Less(t, slices.Index(args, "-ss"), slices.Index(args, "-i"), "seek must precede input")
	assert.Equal(t, "10.020", argAfter(args, "-ss"))
	assert.Equal(t, "10.000", argAfter(args, "-t"))
	assert.Equal(t, "copy", argAfter(args, "-c"))
}

func TestTrimmer_Hybrid(t *testing.T) {
	tools := &fakeTools{videoCodec: "h264", packets: []float64{8, 12, 16}, outputDuration: 10}
	trimmer := newTestTrimmer(t, tools)
	req := trimRequest(t, 10, 20)

	res, err := trimmer.Trim(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.TrimHybrid, res.Strategy)
	require.Len(t, tools.encodes, 3)

	head, tail, concat := tools.encodes[0], tools.encodes[1], tools.encodes[2]
	assert.Equal(t, "10.000", argAfter(head, "-ss"))
	assert.Equal(t, "2.000", argAfter(head, "-t"))
	assert.Equal(t, "libx264", argAfter(head, "-c:v"))
	assert.Equal(t, "high", argAfter(head, "-profile:v"))

	assert.Equal(t, "12.000", argAfter(tail, "-ss"))
	assert.Equal(t, "8.000", argAfter(tail, "-t"))
	assert.Equal(t, "copy", argAfter(tail, "-c"))

	assert.Equal(t, "concat", argAfter(concat, "-f"))

	entries, err := os.ReadDir(req.OutputDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"clip.mp4"}, names, "intermediate segments are removed")
}

func TestTrimmer_Hybrid_DefaultBaseName(t *testing.T) {
	tools := &fakeTools{videoCodec: "h264", packets: []float64{8, 12, 16}, outputDuration: 10}
	trimmer := newTestTrimmer(t, tools)
	req := trimRequest(t, 10, 20)
	req.BaseName = ""

	res, err := trimmer.Trim(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.TrimHybrid, res.Strategy)
	assert.Equal(t, filepath.Join(req.OutputDir, "clip.mp4"), res.OutputPath)
	require.Len(t, tools.encodes, 3)

	head, tail, concat := tools.encodes[0], tools.encodes[1], tools.encodes[2]
	assert.Equal(t, "clip.head.mp4", filepath.Base(head[len(head)-1]))
	assert.Equal(t, "clip.tail.mp4", filepath.Base(tail[len(tail)-1]))
	assert.Equal(t, "clip.concat.txt", filepath.Base(argAfter(concat, "-i")))
}

func TestTrimmer_Reencode(t *testing.T) {
	tests := []struct {
		name    string
		codec   string
		packets []float64
	}{
		{name: "no keyframe in range", codec: "h264", packets: []float64{0, 30}},
		{name: "unsupported codec", codec: "mpeg2video", packets: []float64{8, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tools := &fakeTools{videoCodec: tt.codec, packets: tt.packets, outputDuration: 10}
			trimmer := newTestTrimmer(t, tools)

			res, err := trimmer.Trim(context.Background(), trimRequest(t, 10, 20))
			require.NoError(t, err)
			assert.Equal(t, domain.TrimReencode, res.Strategy)
			assert.Equal(t, ".mp4", filepath.Ext(res.OutputPath))
			require.Len(t, tools.encodes, 1)
			assert.Equal(t, "libx264", argAfter(tools.encodes[0], "-c:v"))
			assert.Equal(t, "aac", argAfter(tools.encodes[0], "-c:a"))
		})
	}
}

func TestTrimmer_Failures(t *testing.T) {
	tests := []struct {
		name       string
		tools      *fakeTools
		start, end float64
		wantKind   domain.ErrorKind
		wantDetail string
	}{
		{
			name:       "encoder killed",
			tools:      &fakeTools{videoCodec: "h264", packets: []float64{10}, encodeResult: port.CommandResult{ExitCode: -1, Stderr: "frame=  12 fps=0.0\nKilled"}},
			start:      10,
			end:        20,
			wantKind:   domain.KindEncodeFailed,
			wantDetail: "Killed",
		},
		{
			name:     "encoder timeout",
			tools:    &fakeTools{videoCodec: "h264", packets: []float64{10}, encodeErr: fmt.Errorf("ffmpeg exceeded 1m: %w", domain.ErrTimeout)},
			start:    10,
			end:      20,
			wantKind: domain.KindTimeout,
		},
		{
			name:     "no video in output",
			tools:    &fakeTools{videoCodec: "h264", packets: []float64{10}, outputDuration: 10, outputNoVideo: true},
			start:    10,
			end:      20,
			wantKind: domain.KindEmptyOutput,
		},
		{
			name:     "zero length output",
			tools:    &fakeTools{videoCodec: "h264", packets: []float64{10}, outputDuration: 0},
			start:    10,
			end:      20,
			wantKind: domain.KindEmptyOutput,
		},
		{
			name:     "duration drift",
			tools:    &fakeTools{videoCodec: "h264", packets: []float64{10}, outputDuration: 7.2},
			start:    10,
			end:      20,
			wantKind: domain.KindDurationMismatch,
		},
		{
			name:     "start past end of source",
			tools:    &fakeTools{videoCodec: "h264"},
			start:    700,
			end:      710,
			wantKind: domain.KindInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trimmer := newTestTrimmer(t, tt.tools)
			req := trimRequest(t, tt.start, tt.end)

			res, err := trimmer.Trim(context.Background(), req)
			assert.Nil(t, res)
			require.Error(t, err)

			var jerr *domain.JobError
			require.ErrorAs(t, err, &jerr)
			assert.Equal(t, tt.wantKind, jerr.Kind)
			if tt.wantDetail != "" {
				assert.Contains(t, jerr.Detail, tt.wantDetail)
			}
			_, statErr := os.Stat(filepath.Join(req.OutputDir, "clip.mp4"))
			assert.True(t, os.IsNotExist(statErr), "failed output is removed")
		})
	}
}
