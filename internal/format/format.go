// Package format renders aggregation results for display.
package format

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Duration renders a play time: "42 min", "3h 5m", "2d 4h".
func Duration(ms int64) string {
	totalMinutes := int64(math.Round(float64(ms) / 60000))
	if totalMinutes < 60 {
		return fmt.Sprintf("%d min", totalMinutes)
	}

	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	if hours < 24 {
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	remainingHours := hours % 24
	if remainingHours > 0 {
		return fmt.Sprintf("%dd %dh", days, remainingHours)
	}
	return fmt.Sprintf("%d days", days)
}

// Number groups thousands: 1234567 -> "1,234,567".
func Number[T int | int64](n T) string {
	return printer.Sprintf("%d", n)
}

// Percent renders a percentage with one decimal.
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// Date renders "Jan 2, 2006".
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
