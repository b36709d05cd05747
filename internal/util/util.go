package util

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as HH:MM:SS for the online timer
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSeconds := int(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatBudget formats an amount the way the dashboard summarizes budgets
func FormatBudget(amount float64) string {
	if amount >= 1000 {
		return fmt.Sprintf("$%.0fk", amount/1000)
	}
	return fmt.Sprintf("$%.0f", amount)
}

// Truncate shortens a string for single-line list rendering
func Truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
