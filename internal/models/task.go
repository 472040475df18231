package models

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryLearning Category = "learning"
	CategoryShopping Category = "shopping"
	CategoryFinance  Category = "finance"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryHealth,
	CategoryLearning,
	CategoryShopping,
	CategoryFinance,
}

var categoryLabels = map[Category]string{
	CategoryWork:     "Work",
	CategoryPersonal: "Personal",
	CategoryHealth:   "Health",
	CategoryLearning: "Learning",
	CategoryShopping: "Shopping",
	CategoryFinance:  "Finance",
}

var categoryIcons = map[Category]string{
	CategoryWork:     "💼",
	CategoryPersonal: "🏠",
	CategoryHealth:   "❤️",
	CategoryLearning: "📚",
	CategoryShopping: "🛒",
	CategoryFinance:  "💰",
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	_, ok := categoryIcons[c]
	return ok
}

// Icon returns the category icon, or a pin for unknown categories.
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return "📌"
}

func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return c.Icon() + " " + label
	}
	return c.Icon() + " " + string(c)
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists every priority from lowest to highest weight.
var Priorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityCritical,
}

var priorityWeights = map[Priority]int{
	PriorityLow:      1,
	PriorityMedium:   2,
	PriorityHigh:     3,
	PriorityCritical: 4,
}

var priorityLabels = map[Priority]string{
	PriorityLow:      "🟢 Low",
	PriorityMedium:   "🟡 Medium",
	PriorityHigh:     "🟠 High",
	PriorityCritical: "🔴 Critical",
}

func (p Priority) IsValid() bool {
	_, ok := priorityWeights[p]
	return ok
}

// Weight returns the sort weight of the priority (low=1 ... critical=4).
// Unknown priorities weigh 0.
func (p Priority) Weight() int {
	return priorityWeights[p]
}

func (p Priority) Label() string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return string(p)
}

// Task is a single tracked item. Optional fields are pointers so that an
// absent value survives persistence distinctly from an empty one.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Category  Category   `json:"category"`
	Priority  Priority   `json:"priority"`
	DueDate   *Date      `json:"dueDate,omitempty"`
	DueTime   *ClockTime `json:"dueTime,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.DueTime != nil {
		ct := *t.DueTime
		c.DueTime = &ct
	}
	if t.Notes != nil {
		n := *t.Notes
		c.Notes = &n
	}
	return c
}

func (t Task) String() string {
	return fmt.Sprintf("%s (%s)", t.Title, t.ID)
}
