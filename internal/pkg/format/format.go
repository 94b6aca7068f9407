// Package format renders byte counts and timestamps the way the UI shows
// them.
package format

import (
	"math"
	"strconv"
	"time"
)

var units = []string{"B", "KB", "MB", "GB", "TB"}

// Bytes renders a byte count as a human string with at most one decimal,
// trailing zeros trimmed: 0 -> "0 B", 1536 -> "1.5 KB", 1048576 -> "1 MB".
func Bytes(n int64) string {
	if n <= 0 {
		return "0 B"
	}

	v := float64(n)
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}

	v = math.Round(v*10) / 10
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + units[i]
}

// Date renders a timestamp as "02 Jan 2006". The zero time renders as
// "Unknown", matching records that predate the uploaded_at column.
func Date(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("02 Jan 2006")
}
