package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseTimestamp parses HH:MM:SS(.fff), MM:SS(.fff) or raw seconds.
func ParseTimestamp(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty timestamp")
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got %q", s)
	}

	var total float64
	for i, p := range parts {
		last := i == len(parts)-1
		if last {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got %q", s)
			}
			if len(parts) > 1 && v >= 60 {
				return 0, fmt.Errorf("seconds out of range in %q", s)
			}
			total = total*60 + v
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got %q", s)
		}
		if i > 0 && v >= 60 {
			return 0, fmt.Errorf("minutes out of range in %q", s)
		}
		total = total*60 + float64(v)
	}
	return total, nil
}

// FormatTimestamp renders seconds as H:MM:SS.mmm.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	ms := int64(seconds*1000 + 0.5)
	h := ms / 3_600_000
	m := (ms % 3_600_000) / 60_000
	sec := (ms % 60_000) / 1000
	frac := ms % 1000
	return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, sec, frac)
}
