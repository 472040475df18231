package utils

import (
	"fmt"
	"time"

	"github.com/yukikurage/taskflow/internal/models"
)

// Greeting returns a time-of-day greeting with a summary of remaining work.
func Greeting(now time.Time, pending int) string {
	var greeting, emoji string

	switch hour := now.Hour(); {
	case hour >= 5 && hour < 12:
		greeting, emoji = "Good Morning", "☀️"
	case hour >= 12 && hour < 17:
		greeting, emoji = "Good Afternoon", "🌤️"
	case hour >= 17 && hour < 21:
		greeting, emoji = "Good Evening", "🌆"
	default:
		greeting, emoji = "Burning the Midnight Oil", "🌙"
	}

	msg := " — All caught up! 🎉"
	if pending > 0 {
		msg = fmt.Sprintf(" — %d %s remaining", pending, Plural(pending, "task"))
	}
	return fmt.Sprintf("%s %s%s", emoji, greeting, msg)
}

// Plural appends an "s" to word unless n is exactly one.
func Plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// FormatDisplayDate renders a date like "Mon, Jan 2".
func FormatDisplayDate(d models.Date) string {
	return d.In(time.UTC).Format("Mon, Jan 2")
}

// FormatDisplayTime renders a clock time like "3:04 PM".
func FormatDisplayTime(c models.ClockTime) string {
	return time.Date(2000, 1, 1, c.Hour, c.Minute, 0, 0, time.UTC).Format("3:04 PM")
}
