package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/taskflow/internal/models"
)

func TestGreeting(t *testing.T) {
	at := func(hour int) time.Time { return time.Date(2025, time.May, 20, hour, 0, 0, 0, time.UTC) }

	assert.Equal(t, "☀️ Good Morning — 1 task remaining", Greeting(at(8), 1))
	assert.Equal(t, "🌤️ Good Afternoon — 3 tasks remaining", Greeting(at(13), 3))
	assert.Equal(t, "🌆 Good Evening — All caught up! 🎉", Greeting(at(18), 0))
	assert.Contains(t, Greeting(at(2), 0), "Midnight Oil")
	assert.Contains(t, Greeting(at(21), 0), "Midnight Oil")
}

func TestFormatDisplay(t *testing.T) {
	assert.Equal(t, "Tue, May 20", FormatDisplayDate(models.NewDate(2025, time.May, 20)))
	assert.Equal(t, "3:04 PM", FormatDisplayTime(models.ClockTime{Hour: 15, Minute: 4}))
	assert.Equal(t, "12:00 AM", FormatDisplayTime(models.ClockTime{}))
}
