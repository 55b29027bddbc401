package utils

import (
	"fmt"
	"strconv"
	"time"
)

// FormatSlackTimestamp renders a Slack timestamp (seconds since epoch with
// fractional precision, e.g. "1715000000.000100") as a 12-hour clock time in
// the given location. A malformed timestamp is a contract violation by the
// Slack API and is returned as an error rather than silently defaulted.
func FormatSlackTimestamp(ts string, loc *time.Location) (string, error) {
	seconds, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse slack timestamp %q: %w", ts, err)
	}

	sec := int64(seconds)
	nsec := int64((seconds - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).In(loc).Format("03:04 PM"), nil
}
