package utils

import "time"

// FormatTimestamp renders a journal timestamp for DTOs: UTC, RFC3339 with
// sub-second precision when present. The zero time renders as "".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
