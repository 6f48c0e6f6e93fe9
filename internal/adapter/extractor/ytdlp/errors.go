package ytdlp

import (
	"strings"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/infrastructure/logger"
)

const stderrDetailLength = 512

type stderrRule struct {
	kind     domain.ErrorKind
	message  string
	patterns []string
}

// Checked in order; the first rule with a matching pattern wins.
var stderrRules = []stderrRule{
	{
		kind:    domain.KindFormatUnavailable,
		message: "requested format is not available",
		patterns: []string{
			"requested format is not available",
			"requested format not available",
		},
	},
	{
		kind:    domain.KindSourceUnavailable,
		message: "source platform refused the request",
		patterns: []string{
			"sign in to confirm",
			"login required",
			"cookies are no longer valid",
			"http error 429",
			"too many requests",
			"rate-limit",
			"unable to download webpage",
			"unable to download api page",
			"connection refused",
			"connection reset",
			"network is unreachable",
			"temporary failure in name resolution",
			"name or service not known",
			"read timed out",
			"http error 5",
		},
	},
	{
		kind:    domain.KindResolutionFailed,
		message: "source video is unavailable",
		patterns: []string{
			"video unavailable",
			"has been removed",
			"private video",
			"this video is not available",
			"http error 404",
			"unsupported url",
			"is not a valid url",
			"no video formats found",
			"does not exist",
		},
	},
}

// classifyStderr maps yt-dlp error text to an error kind, using fallback when nothing matches.
func classifyStderr(stderr string, fallback domain.ErrorKind) *domain.JobError {
	lower := strings.ToLower(stderr)
	detail := logger.Tail(lastErrorLine(stderr), stderrDetailLength)
	for _, rule := range stderrRules {
		for _, p := range rule.patterns {
			if strings.Contains(lower, p) {
				return &domain.JobError{Kind: rule.kind, Message: rule.message, Detail: detail}
			}
		}
	}
	msg := "yt-dlp failed"
	if fallback == domain.KindDownloadFailed {
		msg = "yt-dlp could not download the selected variant"
	}
	return &domain.JobError{Kind: fallback, Message: msg, Detail: detail}
}

// lastErrorLine prefers the final "ERROR:" line, which carries the reason.
func lastErrorLine(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.Contains(lines[i], "ERROR:") {
			return strings.TrimSpace(lines[i])
		}
	}
	return stderr
}
