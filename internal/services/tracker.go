package services

import (
	"context"
	"log"
	"time"

	"github.com/yukikurage/taskflow/internal/constants"
	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/utils"
)

// Tracker serializes every mutation and view refresh onto the goroutine
// running Run, and refreshes the view on a fixed interval so countdowns and
// overdue flags advance without any mutation.
type Tracker struct {
	store     *TaskStore
	criteria  models.ViewCriteria
	now       func() time.Time
	interval  time.Duration
	jobs      chan *job
	view      View
	known     map[string]bool
	listeners []Listener
}

type job struct {
	fn   func(*TaskStore) error
	err  error
	done chan struct{}
}

// TrackerOption customizes a Tracker
type TrackerOption func(*Tracker)

// WithTickInterval sets how often the view is refreshed without a mutation
func WithTickInterval(d time.Duration) TrackerOption {
	return func(t *Tracker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithTrackerClock replaces time.Now for view computation
func WithTrackerClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) { t.now = now }
}

// WithCriteria sets the initial view criteria
func WithCriteria(c models.ViewCriteria) TrackerOption {
	return func(t *Tracker) { t.criteria = c.Normalize() }
}

// NewTracker wraps store. Store events are forwarded to the tracker's listeners.
func NewTracker(store *TaskStore, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		store:    store,
		criteria: models.DefaultCriteria(),
		now:      time.Now,
		interval: constants.DefaultTickInterval,
		jobs:     make(chan *job),
		known:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(t)
	}
	store.Subscribe(t.emit)
	t.refresh(false)
	return t
}

// Subscribe registers a listener for store and tracker events. It must be
// called before Run; listeners run on the tracker goroutine and must not call Do.
func (t *Tracker) Subscribe(l Listener) {
	t.listeners = append(t.listeners, l)
}

// Run processes submitted work and periodic ticks until ctx is done.
func (t *Tracker) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case j := <-t.jobs:
			j.err = j.fn(t.store)
			t.refresh(true)
			close(j.done)
		case <-ticker.C:
			t.refresh(true)
		}
	}
}

// Do runs fn against the store on the tracker goroutine and waits for it,
// including the view refresh that follows.
func (t *Tracker) Do(ctx context.Context, fn func(*TaskStore) error) error {
	j := &job{fn: fn, done: make(chan struct{})}

	select {
	case t.jobs <- j:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-j.done:
		return j.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the most recently computed view.
func (t *Tracker) Snapshot(ctx context.Context) (View, error) {
	var v View
	err := t.Do(ctx, func(*TaskStore) error {
		v = t.view
		return nil
	})
	return v, err
}

// ViewFor builds a view of the current collection with criteria other than
// the tracked ones, for example a single client's selections.
func (t *Tracker) ViewFor(ctx context.Context, criteria models.ViewCriteria) (View, error) {
	var tasks []models.Task
	var now time.Time
	err := t.Do(ctx, func(s *TaskStore) error {
		tasks = s.Tasks()
		now = t.now()
		return nil
	})
	if err != nil {
		return View{}, err
	}
	return BuildView(tasks, criteria, now), nil
}

// Now returns the current instant as seen by the tracker's clock.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// SetCriteria replaces the criteria used for the tracked view.
func (t *Tracker) SetCriteria(ctx context.Context, c models.ViewCriteria) error {
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return &ValidationError{Field: "criteria", Message: err.Error()}
	}
	return t.Do(ctx, func(*TaskStore) error {
		t.criteria = c
		return nil
	})
}

// Tick forces a refresh as if the interval had elapsed.
func (t *Tracker) Tick(ctx context.Context) error {
	return t.Do(ctx, func(*TaskStore) error { return nil })
}

// refresh recomputes the view. With announce set, tasks that were already
// tracked as not overdue and are now overdue produce EventBecameOverdue.
func (t *Tracker) refresh(announce bool) {
	now := t.now()
	tasks := t.store.Tasks()
	t.view = BuildView(tasks, t.criteria, now)

	known := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		overdue := utils.IsOverdue(task, now)
		known[task.ID] = overdue

		wasOverdue, tracked := t.known[task.ID]
		if announce && tracked && !wasOverdue && overdue {
			log.Printf("Task became overdue: %s", task)
			t.emit(Event{Kind: EventBecameOverdue, Task: task})
		}
	}
	t.known = known

	if announce {
		t.emit(Event{Kind: EventViewRefreshed, Count: len(t.view.Items)})
	}
}

func (t *Tracker) emit(e Event) {
	for _, l := range t.listeners {
		l(e)
	}
}
