// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration formats a duration as "Xd Yh Zm", omitting leading
// zero units. Durations under a minute (or negative) render as "0m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalMinutes := int(d / time.Minute)
	days := totalMinutes / (24 * 60)
	hours := (totalMinutes / 60) % 24
	minutes := totalMinutes % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || len(parts) > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	return strings.Join(parts, " ")
}

// FormatMinutes formats a minute count as "Xh Ym", or "Ym" under an hour.
func FormatMinutes(totalMinutes int) string {
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	if hours := totalMinutes / 60; hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, totalMinutes%60)
	}
	return fmt.Sprintf("%dm", totalMinutes)
}

// FormatDate formats a date as ISO "2006-01-02".
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatClock formats the time-of-day as "15:04".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatOffsetHours formats a UTC offset difference as e.g. "+1.0h".
func FormatOffsetHours(hours float64) string {
	return fmt.Sprintf("%+.1fh", hours)
}

// FormatWeekday returns the short weekday name, e.g. "Wed".
func FormatWeekday(t time.Time) string {
	return t.Format("Mon")
}
