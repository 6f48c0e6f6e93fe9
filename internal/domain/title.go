package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxTitleLength keeps "{title}_{uuid}.{ext}" well under the 255 byte filename limit.
const maxTitleLength = 120

// dangerousChars must never reach a storage key.
var dangerousChars = map[rune]bool{
	'"':  true,
	'\'': true,
	'\\': true,
	'/':  true,
	':':  true,
	'*':  true,
	'?':  true,
	'<':  true,
	'>':  true,
	'|':  true,
	'%':  true,
	'#':  true,
}

// SanitizeTitle turns an arbitrary video title into a filename segment:
//   - path separators, shell/URL metacharacters and control characters become underscores
//   - whitespace runs collapse to a single underscore
//   - Unicode letters are preserved
//   - leading dots are removed so artifacts are never hidden files
//   - the result is truncated on a rune boundary; empty input yields "clip"
func SanitizeTitle(title string) string {
	var sb strings.Builder
	sb.Grow(len(title))

	lastUnderscore := false
	for _, r := range title {
		replace := r < 32 || r == 127 || dangerousChars[r] || unicode.IsSpace(r)
		if replace {
			if !lastUnderscore {
				sb.WriteRune('_')
			}
			lastUnderscore = true
			continue
		}
		sb.WriteRune(r)
		lastUnderscore = r == '_'
	}

	result := strings.Trim(sb.String(), "_.")
	if result == "" {
		return "clip"
	}
	return truncateToBytes(result, maxTitleLength)
}

// truncateToBytes truncates s to at most maxBytes bytes without splitting a rune.
func truncateToBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}
