package utils

import (
	"fmt"
	"time"

	"github.com/yukikurage/taskflow/internal/models"
)

type Urgency string

const (
	UrgencyNone    Urgency = "none"
	UrgencyUrgent  Urgency = "urgent"
	UrgencyOverdue Urgency = "overdue"
)

// Countdown is the human-readable time remaining until a task is due.
type Countdown struct {
	Text    string  `json:"text"`
	Urgency Urgency `json:"urgency"`
}

const day = 24 * time.Hour

// DueInstant returns the moment a task is due in loc: its due date combined
// with its due time, or 23:59:59 of the due date when no time is set.
// The second result is false when the task has no due date.
func DueInstant(task models.Task, loc *time.Location) (time.Time, bool) {
	if task.DueDate == nil {
		return time.Time{}, false
	}
	d := *task.DueDate
	if task.DueTime != nil {
		return time.Date(d.Year, d.Month, d.Day, task.DueTime.Hour, task.DueTime.Minute, 0, 0, loc), true
	}
	return time.Date(d.Year, d.Month, d.Day, 23, 59, 59, 0, loc), true
}

// IsOverdue reports whether an incomplete task's due instant lies strictly before now.
func IsOverdue(task models.Task, now time.Time) bool {
	if task.Completed {
		return false
	}
	due, ok := DueInstant(task, now.Location())
	if !ok {
		return false
	}
	return now.After(due)
}

// GetCountdown describes how long remains until (or has passed since) the
// task's due instant.
func GetCountdown(task models.Task, now time.Time) Countdown {
	due, ok := DueInstant(task, now.Location())
	if !ok {
		return Countdown{Urgency: UrgencyNone}
	}

	diff := due.Sub(now)

	if diff < 0 {
		abs := -diff
		days := int(abs / day)
		hours := int(abs % day / time.Hour)

		switch {
		case days > 0:
			return Countdown{Text: fmt.Sprintf("⚠️ %dd %dh overdue", days, hours), Urgency: UrgencyOverdue}
		case hours > 0:
			return Countdown{Text: fmt.Sprintf("⚠️ %dh overdue", hours), Urgency: UrgencyOverdue}
		default:
			return Countdown{Text: "⚠️ Overdue", Urgency: UrgencyOverdue}
		}
	}

	days := int(diff / day)
	hours := int(diff % day / time.Hour)
	minutes := int(diff % time.Hour / time.Minute)

	// The two "days left" buckets differ only in their icon.
	switch {
	case days > 7:
		return Countdown{Text: fmt.Sprintf("📆 %d days left", days), Urgency: UrgencyNone}
	case days > 1:
		return Countdown{Text: fmt.Sprintf("⏰ %d days left", days), Urgency: UrgencyNone}
	case days == 1:
		return Countdown{Text: fmt.Sprintf("⏰ Tomorrow, %dh left", hours), Urgency: UrgencyUrgent}
	case hours > 0:
		return Countdown{Text: fmt.Sprintf("🔥 %dh %dm left", hours, minutes), Urgency: UrgencyUrgent}
	case minutes > 0:
		return Countdown{Text: fmt.Sprintf("🔥 %dm left", minutes), Urgency: UrgencyUrgent}
	default:
		return Countdown{Text: "🔥 Due now!", Urgency: UrgencyUrgent}
	}
}
