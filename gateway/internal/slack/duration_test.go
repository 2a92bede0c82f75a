package slack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	const defaultLookbackSeconds = 3600
	testCases := []struct {
		name            string
		text            string
		lookbackSeconds int
		verbose         bool
	}{
		{
			name:            "empty text",
			text:            "",
			lookbackSeconds: defaultLookbackSeconds,
			verbose:         false,
		},
		{
			name:            "whitespace only",
			text:            "   ",
			lookbackSeconds: defaultLookbackSeconds,
			verbose:         false,
		},
		{
			name:            "minutes",
			text:            "20m",
			lookbackSeconds: 1200,
			verbose:         false,
		},
		{
			name:            "hours with verbose suffix",
			text:            "1h verbose",
			lookbackSeconds: 3600,
			verbose:         true,
		},
		{
			name:            "days",
			text:            "2d",
			lookbackSeconds: 172800,
			verbose:         false,
		},
		{
			name:            "mixed case with surrounding whitespace",
			text:            "  1H VERBOSE  ",
			lookbackSeconds: 3600,
			verbose:         true,
		},
		{
			name:            "zero-length window",
			text:            "0m",
			lookbackSeconds: 0,
			verbose:         false,
		},
		{
			name:            "malformed window",
			text:            "garbage",
			lookbackSeconds: defaultLookbackSeconds,
			verbose:         false,
		},
		{
			name:            "malformed window mentioning verbose",
			text:            "garbage verbose text",
			lookbackSeconds: defaultLookbackSeconds,
			verbose:         true,
		},
		{
			name:            "unsupported unit",
			text:            "3w",
			lookbackSeconds: defaultLookbackSeconds,
			verbose:         false,
		},
		{
			name:            "overflowing digits",
			text:            "99999999999999999999m",
			lookbackSeconds: defaultLookbackSeconds,
			verbose:         false,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			lookbackSeconds, verbose :=
				parseWindow(testCase.text, defaultLookbackSeconds)
			require.Equal(t, testCase.lookbackSeconds, lookbackSeconds)
			require.Equal(t, testCase.verbose, verbose)
		})
	}
}
