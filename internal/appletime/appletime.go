// Package appletime converts between the Messages database timestamp
// encoding (nanoseconds since 2001-01-01 UTC) and time.Time.
package appletime

import "time"

// Layout is the wire format for message timestamps: UTC, second precision.
const Layout = "2006-01-02T15:04:05Z"

// epoch is the Apple reference date used by the Messages database.
var epoch = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

// ToTime converts a database timestamp to a time.Time in UTC.
func ToTime(ns int64) time.Time {
	return epoch.Add(time.Duration(ns)).UTC()
}

// FromTime converts a time.Time to a database timestamp.
func FromTime(t time.Time) int64 {
	return t.Sub(epoch).Nanoseconds()
}

// Format renders a database timestamp using Layout. Zero means the
// timestamp was never recorded, and negative values predate the epoch;
// both render as an empty string.
func Format(ns int64) string {
	if ns <= 0 {
		return ""
	}
	return ToTime(ns).Format(Layout)
}

// CutoffNanos returns the database timestamp for now minus days whole
// days. Query windows ("last N days") compare message dates against it.
func CutoffNanos(now time.Time, days int) int64 {
	return FromTime(now.Add(-time.Duration(days) * 24 * time.Hour))
}
