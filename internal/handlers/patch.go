package handlers

import (
	"fmt"

	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/services"
)

// patchFromRequest builds a TaskPatch from a decoded JSON object. A field set
// to null clears it; a field that is absent is left unchanged. On failure it
// also returns the offending field name.
func patchFromRequest(raw map[string]any) (services.TaskPatch, string, error) {
	var patch services.TaskPatch

	if v, ok := raw["title"]; ok {
		s, ok := v.(string)
		if !ok {
			return patch, "title", fmt.Errorf("title must be a string")
		}
		patch.Title = &s
	}
	if v, ok := raw["category"]; ok {
		s, ok := v.(string)
		if !ok {
			return patch, "category", fmt.Errorf("category must be a string")
		}
		c := models.Category(s)
		patch.Category = &c
	}
	if v, ok := raw["priority"]; ok {
		s, ok := v.(string)
		if !ok {
			return patch, "priority", fmt.Errorf("priority must be a string")
		}
		p := models.Priority(s)
		patch.Priority = &p
	}
	if v, ok := raw["due_date"]; ok {
		switch s := v.(type) {
		case nil:
			patch.ClearDueDate = true
		case string:
			if s == "" {
				patch.ClearDueDate = true
				break
			}
			d, err := models.ParseDate(s)
			if err != nil {
				return patch, "due_date", err
			}
			patch.DueDate = &d
		default:
			return patch, "due_date", fmt.Errorf("due_date must be a string or null")
		}
	}
	if v, ok := raw["due_time"]; ok {
		switch s := v.(type) {
		case nil:
			patch.ClearDueTime = true
		case string:
			if s == "" {
				patch.ClearDueTime = true
				break
			}
			t, err := models.ParseClockTime(s)
			if err != nil {
				return patch, "due_time", err
			}
			patch.DueTime = &t
		default:
			return patch, "due_time", fmt.Errorf("due_time must be a string or null")
		}
	}
	if v, ok := raw["notes"]; ok {
		switch s := v.(type) {
		case nil:
			patch.ClearNotes = true
		case string:
			patch.Notes = &s
		default:
			return patch, "notes", fmt.Errorf("notes must be a string or null")
		}
	}
	if _, ok := raw["completed"]; ok {
		return patch, "completed", fmt.Errorf("completed can only be changed with the toggle endpoint")
	}

	return patch, "", nil
}
