package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type ProbeFormat struct {
	FormatName string            `json:"format_name"`
	FormatLong string            `json:"format_long_name"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	BitRate    string            `json:"bit_rate"`
	NbStreams  int               `json:"nb_streams"`
	Tags       map[string]string `json:"tags"`
}

type ProbeStream struct {
	Index        int               `json:"index"`
	CodecType    string            `json:"codec_type"`
	CodecName    string            `json:"codec_name"`
	Profile      string            `json:"profile"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	PixFmt       string            `json:"pix_fmt"`
	RFrameRate   string            `json:"r_frame_rate"`
	AvgFrameRate string            `json:"avg_frame_rate"`
	Duration     string            `json:"duration"`
	BitRate      string            `json:"bit_rate"`
	SampleRate   string            `json:"sample_rate"`
	Channels     int               `json:"channels"`
	Tags         map[string]string `json:"tags"`
}

type ProbeResult struct {
	Format  ProbeFormat   `json:"format"`
	Streams []ProbeStream `json:"streams"`
}

func (p *ProbeResult) VideoStream() *ProbeStream {
	for i := range p.Streams {
		if p.Streams[i].CodecType == "video" {
			return &p.Streams[i]
		}
	}
	return nil
}

func (p *ProbeResult) AudioStream() *ProbeStream {
	for i := range p.Streams {
		if p.Streams[i].CodecType == "audio" {
			return &p.Streams[i]
		}
	}
	return nil
}

// Duration prefers the container duration and falls back to the video stream.
func (p *ProbeResult) Duration() float64 {
	if d := ParseDuration(p.Format.Duration); d > 0 {
		return d
	}
	if vs := p.VideoStream(); vs != nil {
		return ParseDuration(vs.Duration)
	}
	return 0
}

// ProbePacket is one entry of `ffprobe -show_entries packet=pts_time,flags`.
type ProbePacket struct {
	PtsTime string `json:"pts_time"`
	Flags   string `json:"flags"`
}

func (p ProbePacket) Keyframe() bool {
	return strings.Contains(p.Flags, "K")
}

type PacketProbe struct {
	Packets []ProbePacket `json:"packets"`
}

// Keyframes returns the sorted, de-duplicated keyframe timestamps.
func (pp *PacketProbe) Keyframes() []float64 {
	seen := make(map[float64]bool)
	var out []float64
	for _, pkt := range pp.Packets {
		if !pkt.Keyframe() {
			continue
		}
		t, err := strconv.ParseFloat(pkt.PtsTime, 64)
		if err != nil || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Float64s(out)
	return out
}

func ParseFrameRate(fraction string) float64 {
	if fraction == "" || fraction == "0/0" {
		return 0
	}
	var num, den int
	if _, err := fmt.Sscanf(fraction, "%d/%d", &num, &den); err == nil && den > 0 {
		return float64(num) / float64(den)
	}
	return 0
}

func ParseDuration(durationStr string) float64 {
	if durationStr == "" || durationStr == "N/A" {
		return 0
	}
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0
	}
	return duration
}
