package services

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/utils"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Stats summarizes the whole collection.
type Stats struct {
	Total           int `json:"total"`
	Completed       int `json:"completed"`
	Pending         int `json:"pending"`
	Overdue         int `json:"overdue"`
	ProgressPercent int `json:"progress_percent"`
}

// TaskView is a task annotated with its time-dependent state.
type TaskView struct {
	Task      models.Task
	Overdue   bool
	Countdown utils.Countdown
}

// View is everything needed to render one screen of tasks.
type View struct {
	Items    []TaskView
	Stats    Stats
	Greeting string
	Criteria models.ViewCriteria
	Now      time.Time
}

// FilterTasks narrows tasks by search query, quick filter, category and
// status. The result preserves input order.
func FilterTasks(tasks []models.Task, criteria models.ViewCriteria, now time.Time) []models.Task {
	criteria = criteria.Normalize()
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(criteria.Query))
	today := models.DateOf(now)
	weekAhead := today.AddDays(7)

	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if query != "" && !matchesQuery(fold, t, query) {
			continue
		}
		if !matchesQuick(t, criteria.Quick, today, weekAhead, now) {
			continue
		}
		if criteria.Category != models.CategoryAll && string(t.Category) != string(criteria.Category) {
			continue
		}
		if !matchesStatus(t, criteria.Status, now) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesQuery(fold cases.Caser, t models.Task, query string) bool {
	if strings.Contains(fold.String(t.Title), query) {
		return true
	}
	if t.Notes != nil && strings.Contains(fold.String(*t.Notes), query) {
		return true
	}
	return strings.Contains(fold.String(string(t.Category)), query)
}

func matchesQuick(t models.Task, quick models.QuickFilter, today, weekAhead models.Date, now time.Time) bool {
	switch quick {
	case models.QuickToday:
		return t.DueDate != nil && t.DueDate.Equal(today)
	case models.QuickUpcoming:
		return t.DueDate != nil && t.DueDate.Compare(today) >= 0 && t.DueDate.Compare(weekAhead) <= 0
	case models.QuickOverdue:
		return utils.IsOverdue(t, now) && !t.Completed
	default:
		return true
	}
}

func matchesStatus(t models.Task, status models.StatusFilter, now time.Time) bool {
	switch status {
	case models.StatusPending:
		return !t.Completed
	case models.StatusCompleted:
		return t.Completed
	case models.StatusOverdue:
		return utils.IsOverdue(t, now) && !t.Completed
	default:
		return true
	}
}

// SortTasks returns a stably sorted copy of tasks. Due dates are compared in
// loc; the input slice is never reordered.
func SortTasks(tasks []models.Task, key models.SortKey, loc *time.Location) []models.Task {
	out := slices.Clone(tasks)

	switch key {
	case models.SortByDueDate, "":
		slices.SortStableFunc(out, func(a, b models.Task) int {
			da, okA := utils.DueInstant(a, loc)
			db, okB := utils.DueInstant(b, loc)
			switch {
			case !okA && !okB:
				return 0
			case !okA:
				return 1
			case !okB:
				return -1
			default:
				return da.Compare(db)
			}
		})
	case models.SortByPriority:
		slices.SortStableFunc(out, func(a, b models.Task) int {
			return b.Priority.Weight() - a.Priority.Weight()
		})
	case models.SortByCreated:
		slices.SortStableFunc(out, func(a, b models.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case models.SortByTitle:
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b models.Task) int {
			return col.CompareString(a.Title, b.Title)
		})
	}

	return out
}

// ComputeStats counts the collection. ProgressPercent is 0 for an empty collection.
func ComputeStats(tasks []models.Task, now time.Time) Stats {
	var st Stats
	st.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
			continue
		}
		st.Pending++
		if utils.IsOverdue(t, now) {
			st.Overdue++
		}
	}
	if st.Total > 0 {
		st.ProgressPercent = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}

// BuildView filters, sorts and annotates tasks, and computes stats over the
// unfiltered collection.
func BuildView(tasks []models.Task, criteria models.ViewCriteria, now time.Time) View {
	criteria = criteria.Normalize()
	sorted := SortTasks(FilterTasks(tasks, criteria, now), criteria.Sort, now.Location())

	items := make([]TaskView, len(sorted))
	for i, t := range sorted {
		item := TaskView{
			Task:      t,
			Overdue:   utils.IsOverdue(t, now),
			Countdown: utils.Countdown{Urgency: utils.UrgencyNone},
		}
		if !t.Completed {
			item.Countdown = utils.GetCountdown(t, now)
		}
		items[i] = item
	}

	stats := ComputeStats(tasks, now)

	return View{
		Items:    items,
		Stats:    stats,
		Greeting: utils.Greeting(now, stats.Pending),
		Criteria: criteria,
		Now:      now,
	}
}
