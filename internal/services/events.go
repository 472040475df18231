package services

import "github.com/yukikurage/taskflow/internal/models"

type EventKind string

const (
	EventTaskAdded        EventKind = "task_added"
	EventTaskUpdated      EventKind = "task_updated"
	EventTaskRemoved      EventKind = "task_removed"
	EventTaskCompleted    EventKind = "task_completed"
	EventTaskReopened     EventKind = "task_reopened"
	EventCompletedCleared EventKind = "completed_cleared"
	EventBecameOverdue    EventKind = "became_overdue"
	EventViewRefreshed    EventKind = "view_refreshed"
)

// Event is emitted after a state transition so presentation code
// (celebration effects, notifications, counters) can react to it.
type Event struct {
	Kind  EventKind
	Task  models.Task
	Count int
}

// Listener receives events synchronously, on the goroutine that produced them.
type Listener func(Event)
