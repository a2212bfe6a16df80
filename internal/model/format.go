package model

import (
	"fmt"
	"math"
	"time"
)

// FormatClock renders seconds as H:MM:SS when an hour or more remains,
// otherwise MM:SS.
func FormatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// DurationText renders a human readable duration such as "1h 30m",
// "2 hours" or "25 min".
func DurationText(seconds int) string {
	totalMinutes := seconds / 60
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	if hours > 0 {
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		if hours > 1 {
			return fmt.Sprintf("%d hours", hours)
		}
		return "1 hour"
	}
	return fmt.Sprintf("%d min", totalMinutes)
}

// Progress returns the elapsed share of the timer as a rounded percentage.
func Progress(timeLeft, original int) int {
	if original == 0 {
		return 0
	}
	return int(math.Round(float64(original-timeLeft) / float64(original) * 100))
}

func FormatTimestamp(t time.Time) string {
	return t.Format("03:04:05 PM")
}

func FormatDate(t time.Time) string {
	return t.Format("Mon Jan 02 2006")
}

func StatusLabel(s TimerState) string {
	if s.IsActive {
		return "Focus Time"
	}
	return "Paused"
}
