package ffmpeg

import (
	"math"
	"strconv"

	"github.com/bnema/snip/internal/domain"
)

// trimPlan is how one clip will be cut. Keyframe is only set for the hybrid strategy.
type trimPlan struct {
	Strategy domain.TrimStrategy
	Start    float64
	End      float64
	Keyframe float64
}

// planTrim picks the cheapest strategy that keeps the cut frame-accurate.
// A keyframe within tolerance of start allows a pure stream copy. Otherwise, if a keyframe
// falls inside the clip and the codec can be matched, only the head up to that keyframe is
// re-encoded. Everything else is fully re-encoded.
func planTrim(keyframes []float64, start, end, tolerance float64, codecMatched bool) trimPlan {
	p := trimPlan{Strategy: domain.TrimReencode, Start: start, End: end}

	for _, kf := range keyframes {
		if math.Abs(kf-start) <= tolerance {
			p.Strategy = domain.TrimStreamCopy
			return p
		}
	}

	if !codecMatched {
		return p
	}
	for _, kf := range keyframes {
		if kf > start+tolerance && kf < end-tolerance {
			p.Strategy = domain.TrimHybrid
			p.Keyframe = kf
			return p
		}
	}
	return p
}

// headEncoder returns encoder arguments producing a stream that can be concatenated with a
// stream copy of the source. ok is false for codecs we cannot match.
func headEncoder(vs *domain.ProbeStream) (args []string, ok bool) {
	if vs == nil {
		return nil, false
	}
	switch vs.CodecName {
	case "h264":
		args = []string{"-c:v", "libx264", "-crf", "18", "-preset", "medium"}
		if profile := x264Profile(vs.Profile); profile != "" {
			args = append(args, "-profile:v", profile)
		}
	case "hevc":
		args = []string{"-c:v", "libx265", "-crf", "20", "-preset", "medium", "-tag:v", "hvc1"}
	case "vp9":
		args = []string{"-c:v", "libvpx-vp9", "-crf", "30", "-b:v", "0", "-row-mt", "1"}
	case "vp8":
		args = []string{"-c:v", "libvpx", "-crf", "10", "-b:v", "1M"}
	case "av1":
		args = []string{"-c:v", "libaom-av1", "-crf", "30", "-b:v", "0", "-cpu-used", "4", "-row-mt", "1"}
	default:
		return nil, false
	}
	if vs.PixFmt != "" {
		args = append(args, "-pix_fmt", vs.PixFmt)
	}
	if fps := domain.ParseFrameRate(vs.RFrameRate); fps > 0 {
		args = append(args, "-r", vs.RFrameRate)
	}
	return args, true
}

func x264Profile(profile string) string {
	switch profile {
	case "Baseline", "Constrained Baseline":
		return "baseline"
	case "Main":
		return "main"
	case "High":
		return "high"
	}
	return ""
}

// containerFor picks an output extension that can hold the source streams without remuxing
// problems.
func containerFor(video, audio string) string {
	switch video {
	case "vp8", "vp9":
		if audio == "" || audio == "opus" || audio == "vorbis" {
			return "webm"
		}
		return "mkv"
	case "h264", "hevc", "av1", "mpeg4":
		if audio == "" || audio == "aac" || audio == "mp3" || audio == "opus" {
			return "mp4"
		}
		return "mkv"
	}
	return "mkv"
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
