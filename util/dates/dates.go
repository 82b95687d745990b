// Package dates parses the date inputs the API accepts: bare calendar
// dates ("2024-03-01") and full RFC3339 timestamps.
package dates

import "time"

// Parse returns the instant for s. Bare dates resolve to midnight UTC,
// so whole-day differences divide evenly into 24h periods.
func Parse(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
