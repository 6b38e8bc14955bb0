package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ademuri/streaming-stats/internal/analysis"
)

// parseRangeFromArgs uses the optional positional range argument, falling
// back to --range.
func parseRangeFromArgs(args []string) (analysis.TimeRange, error) {
	switch len(args) {
	case 0:
		return analysis.ParseTimeRange(viper.GetString("range"))

	case 1:
		return analysis.ParseTimeRange(args[0])

	default:
		return analysis.TimeRange{}, fmt.Errorf("Expected at most one range argument")
	}
}

// splitRangeArg peels a trailing range argument off args, if there is one.
// An argument that names an analysis is never taken as a range, so
// "lifetime" stays an analysis; use --range for a lifetime range.
func splitRangeArg(args []string) (rest []string, rangeArgs []string) {
	if len(args) == 0 {
		return args, nil
	}
	last := args[len(args)-1]
	if _, err := getActionFromName(last); err == nil {
		return args, nil
	}
	if _, err := analysis.ParseTimeRange(last); err != nil || last == "" {
		return args, nil
	}
	return args[:len(args)-1], []string{last}
}
