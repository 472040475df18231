package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskflow/internal/config"
	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/services"
)

func setupEnv(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", config.StorageBackendFile)
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("TASKFLOW_CONFIG", "")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAddAndList(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "add", "Buy", "milk", "-c", "shopping", "-p", "high", "-n", "oat")
	require.NoError(t, err)
	assert.Contains(t, out, "Added")
	assert.Contains(t, out, "Buy milk")

	_, err = run(t, "add", "Write report")
	require.NoError(t, err)

	out, err = run(t, "list", "--sort", "title")
	require.NoError(t, err)
	assert.Contains(t, out, "2 tasks remaining")
	assert.Less(t, bytes.Index([]byte(out), []byte("Buy milk")), bytes.Index([]byte(out), []byte("Write report")))

	out, err = run(t, "list", "-c", "shopping")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")
	assert.NotContains(t, out, "Write report")
}

func TestAdd_Invalid(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "add", "x", "-p", "urgent")
	assert.Error(t, err)

	_, err = run(t, "add", "x", "-d", "someday")
	assert.Error(t, err)

	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tasks found")
}

func TestList_InvalidSort(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "list", "--sort", "random")
	assert.Error(t, err)
}

func TestToggleClearAndStats(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "add", "Stretch")
	require.NoError(t, err)
	_, err = run(t, "add", "Read")
	require.NoError(t, err)

	id := onlyTaskID(t, "Stretch")

	out, err := run(t, "toggle", id[:6])
	require.NoError(t, err)
	assert.Contains(t, out, "Stretch is done")

	out, err = run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "50%")

	out, err = run(t, "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1 completed task")

	out, err = run(t, "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "No completed tasks to clear")
}

func TestEditAndRemove(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "add", "Dentist", "-d", "2030-01-02", "-t", "09:30")
	require.NoError(t, err)
	id := onlyTaskID(t, "Dentist")

	out, err := run(t, "edit", id, "--title", "Dentist checkup", "--clear-time")
	require.NoError(t, err)
	assert.Contains(t, out, "Dentist checkup")
	assert.NotContains(t, out, "9:30 AM")

	_, err = run(t, "edit", id, "--title", " ")
	assert.True(t, services.IsValidation(err))

	_, err = run(t, "rm", id)
	require.NoError(t, err)

	_, err = run(t, "rm", id)
	assert.True(t, services.IsNotFound(err))
}

func TestSuggest_NotConfigured(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "suggest", "buy milk tomorrow")
	assert.ErrorIs(t, err, services.ErrAIServiceNotConfigured)
}

func TestParseDue(t *testing.T) {
	now := time.Date(2025, time.December, 31, 22, 0, 0, 0, time.UTC)

	d, err := parseDue("today", now)
	require.NoError(t, err)
	assert.Equal(t, models.NewDate(2025, time.December, 31), d)

	d, err = parseDue("Tomorrow", now)
	require.NoError(t, err)
	assert.Equal(t, models.NewDate(2026, time.January, 1), d)

	_, err = parseDue("2025-13-01", now)
	assert.Error(t, err)
}

// onlyTaskID opens the store directly and returns the id of the task with title
func onlyTaskID(t *testing.T, title string) string {
	t.Helper()
	a := &app{now: time.Now}
	require.NoError(t, a.open(newRootCmd()))
	for _, task := range a.store.Tasks() {
		if task.Title == title {
			return task.ID
		}
	}
	t.Fatalf("no task titled %q", title)
	return ""
}
