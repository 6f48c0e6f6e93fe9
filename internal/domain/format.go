package domain

import (
	"regexp"
	"strconv"
)

// FormatVariant is one downloadable stream option for a source video.
type FormatVariant struct {
	FormatID        string `json:"format_id"`
	Container       string `json:"container"`
	VideoCodec      string `json:"video_codec,omitempty"`
	AudioCodec      string `json:"audio_codec,omitempty"`
	Height          int    `json:"resolution"`
	ApproxSizeBytes *int64 `json:"approx_size_bytes,omitempty"`
	HasVideo        bool   `json:"has_video"`
	HasAudio        bool   `json:"has_audio"`
}

// Placeholder reports a manifest-only entry with neither a video nor an audio stream.
func (v FormatVariant) Placeholder() bool {
	return !v.HasVideo && !v.HasAudio
}

// Usable reports whether the variant can produce a clip. Download-time retrievability is
// checked by the extractor.
func (v FormatVariant) Usable() bool {
	return v.HasVideo
}

func (v FormatVariant) Combined() bool {
	return v.HasVideo && v.HasAudio
}

// Selector returns the extractor format selector for this variant. Video-only variants are
// merged with the best audio track when one exists.
func (v FormatVariant) Selector() string {
	if v.HasVideo && !v.HasAudio {
		return v.FormatID + "+bestaudio/" + v.FormatID
	}
	return v.FormatID
}

// SourceInfo is the result of probing a source URL.
type SourceInfo struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Duration float64         `json:"duration"`
	Variants []FormatVariant `json:"variants"`
}

// FilterPlaceholders drops manifest placeholders, keeping order.
func FilterPlaceholders(variants []FormatVariant) []FormatVariant {
	out := make([]FormatVariant, 0, len(variants))
	for _, v := range variants {
		if v.Placeholder() {
			continue
		}
		out = append(out, v)
	}
	return out
}

var heightHint = regexp.MustCompile(`(?i)^(\d{3,4})p\d*$`)

// HeightFromFormatID recovers a height from ids shaped like "720p" or "1080p60".
func HeightFromFormatID(id string) int {
	m := heightHint.FindStringSubmatch(id)
	if m == nil {
		return 0
	}
	h, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return h
}

// DownloadRequest asks the extractor to fetch one variant into Dir.
type DownloadRequest struct {
	URL      string
	Selector string
	Dir      string
	BaseName string
	// OnProgress, when set, receives the download percentage as the tool reports it.
	OnProgress func(percent float64)
}
