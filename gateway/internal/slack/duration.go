package slack

import (
	"regexp"
	"strconv"
	"strings"
)

// windowRegex matches arguments like "20m", "1h", or "2d", optionally followed
// by a "verbose" suffix.
var windowRegex = regexp.MustCompile(`^(\d+)([mhd])(\s+verbose)?$`)

var unitFactors = map[string]int{
	"m": 60,
	"h": 3600,
	"d": 86400,
}

// parseWindow derives a lookback window (in seconds) and a verbosity flag from
// free-form slash command text. Empty text yields the default lookback. Text
// that doesn't match the expected grammar also yields the default lookback
// rather than an error, with verbosity inferred from the presence of the word
// "verbose" anywhere in the text.
func parseWindow(text string, defaultLookbackSeconds int) (int, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return defaultLookbackSeconds, false
	}
	match := windowRegex.FindStringSubmatch(normalized)
	if match == nil {
		return defaultLookbackSeconds, strings.Contains(normalized, "verbose")
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		// Only reachable when the digits overflow an int. Treat it like any
		// other malformed window.
		return defaultLookbackSeconds, strings.Contains(normalized, "verbose")
	}
	return value * unitFactors[match[2]], match[3] != ""
}
