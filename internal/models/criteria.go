package models

import "fmt"

type QuickFilter string

const (
	QuickAll      QuickFilter = "all"
	QuickToday    QuickFilter = "today"
	QuickUpcoming QuickFilter = "upcoming"
	QuickOverdue  QuickFilter = "overdue"
)

type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
	StatusOverdue   StatusFilter = "overdue"
)

// CategoryFilter is either "all" or one of the categories.
type CategoryFilter string

const CategoryAll CategoryFilter = "all"

type SortKey string

const (
	SortByDueDate  SortKey = "dueDate"
	SortByPriority SortKey = "priority"
	SortByCreated  SortKey = "created"
	SortByTitle    SortKey = "title"
)

// ViewCriteria is the full set of selections that shape the task view.
type ViewCriteria struct {
	Query    string         `json:"query"`
	Quick    QuickFilter    `json:"quick"`
	Category CategoryFilter `json:"category"`
	Status   StatusFilter   `json:"status"`
	Sort     SortKey        `json:"sort"`
}

// DefaultCriteria shows everything sorted by due date.
func DefaultCriteria() ViewCriteria {
	return ViewCriteria{
		Quick:    QuickAll,
		Category: CategoryAll,
		Status:   StatusAll,
		Sort:     SortByDueDate,
	}
}

// Normalize fills empty selections with their defaults.
func (c ViewCriteria) Normalize() ViewCriteria {
	def := DefaultCriteria()
	if c.Quick == "" {
		c.Quick = def.Quick
	}
	if c.Category == "" {
		c.Category = def.Category
	}
	if c.Status == "" {
		c.Status = def.Status
	}
	if c.Sort == "" {
		c.Sort = def.Sort
	}
	return c
}

// Validate rejects selections outside their enums.
func (c ViewCriteria) Validate() error {
	switch c.Quick {
	case QuickAll, QuickToday, QuickUpcoming, QuickOverdue:
	default:
		return fmt.Errorf("unknown quick filter %q", c.Quick)
	}
	if c.Category != CategoryAll && !Category(c.Category).IsValid() {
		return fmt.Errorf("unknown category %q", c.Category)
	}
	switch c.Status {
	case StatusAll, StatusPending, StatusCompleted, StatusOverdue:
	default:
		return fmt.Errorf("unknown status filter %q", c.Status)
	}
	switch c.Sort {
	case SortByDueDate, SortByPriority, SortByCreated, SortByTitle:
	default:
		return fmt.Errorf("unknown sort key %q", c.Sort)
	}
	return nil
}
