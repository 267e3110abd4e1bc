package timespec

import (
	"fmt"
	"strconv"
	"time"
)

// Parse parses a time specification into a Unix timestamp in seconds, the
// unit events use for created_at. Supports three formats:
//   - Go duration format: "1h", "30m", "1h30m" (that long before now)
//   - RFC3339 timestamps: "2025-10-29T13:00:00Z"
//   - Raw Unix seconds: "1700000000"
func Parse(spec string, now time.Time) (int64, error) {
	if spec == "" {
		return 0, fmt.Errorf("empty time specification")
	}

	if t, err := time.Parse(time.RFC3339, spec); err == nil {
		return t.Unix(), nil
	}

	// Before durations, so "0" means the epoch rather than now
	if secs, err := strconv.ParseInt(spec, 10, 64); err == nil {
		return secs, nil
	}

	if d, err := time.ParseDuration(spec); err == nil {
		return now.Add(-d).Unix(), nil
	}

	return 0, fmt.Errorf("invalid time specification: %s (use duration like '1h30m', RFC3339 like '2025-10-29T13:00:00Z', or Unix seconds)", spec)
}

// ParseRange parses both --since and --until flags into a time range.
// An empty flag yields a nil bound; any parsed value, including zero or a
// time before 1970, is a real bound.
func ParseRange(since, until string, now time.Time) (*int64, *int64, error) {
	var sinceSecs, untilSecs *int64

	if since != "" {
		secs, err := Parse(since, now)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --since: %w", err)
		}
		sinceSecs = &secs
	}

	if until != "" {
		secs, err := Parse(until, now)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --until: %w", err)
		}
		untilSecs = &secs
	}

	if sinceSecs != nil && untilSecs != nil && *sinceSecs >= *untilSecs {
		return nil, nil, fmt.Errorf("--since must be before --until")
	}

	return sinceSecs, untilSecs, nil
}
