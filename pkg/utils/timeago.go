package utils

import (
	"fmt"
	"time"
)

// TimeAgo renders a timestamp relative to now: "Just now" under a minute,
// then minutes, hours and days, falling back to the absolute date after 30
// days. Thresholds match what the dashboard and community views display.
func TimeAgo(t, now time.Time) string {
	diff := now.Sub(t)
	seconds := int(diff.Seconds())

	switch {
	case seconds < 60:
		return "Just now"
	case seconds < 3600:
		return fmt.Sprintf("%dm ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%dh ago", seconds/3600)
	case seconds < 2592000:
		return fmt.Sprintf("%dd ago", seconds/86400)
	default:
		return t.Format("Jan 2, 2006")
	}
}
