package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yukikurage/taskflow/internal/models"
)

var errDiskFull = errors.New("disk full")

// memoryRepository records what was saved and can be told to fail
type memoryRepository struct {
	tasks   []models.Task
	saves   int
	loadErr error
	saveErr error
}

func (r *memoryRepository) Load() ([]models.Task, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return cloneTasks(r.tasks), nil
}

func (r *memoryRepository) Save(tasks []models.Task) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.tasks = cloneTasks(tasks)
	return nil
}

// fakeClock is a settable time source, safe to read from the tracker goroutine
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// eventLog collects events delivered on another goroutine
type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) record(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) count(kind EventKind) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func datePtr(y int, m time.Month, d int) *models.Date {
	date := models.NewDate(y, m, d)
	return &date
}

func strPtr(s string) *string { return &s }

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}
