package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/services"
	"github.com/yukikurage/taskflow/internal/utils"
)

const shortIDLen = 8

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#B0B7C3"})
	doneStyle      = mutedStyle.Strikethrough(true)
	urgentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	celebrateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

var priorityStyles = map[models.Priority]lipgloss.Style{
	models.PriorityLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	models.PriorityMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	models.PriorityHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	models.PriorityCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

func renderTask(task models.Task, now time.Time) string {
	item := services.TaskView{
		Task:      task,
		Overdue:   utils.IsOverdue(task, now),
		Countdown: utils.Countdown{Urgency: utils.UrgencyNone},
	}
	if !task.Completed {
		item.Countdown = utils.GetCountdown(task, now)
	}
	return renderItem(item)
}

func renderItem(item services.TaskView) string {
	task := item.Task

	check := "[ ]"
	title := task.Title
	if task.Completed {
		check = celebrateStyle.Render("[x]")
		title = doneStyle.Render(title)
	}

	parts := []string{
		mutedStyle.Render(shortID(task.ID)),
		check,
		task.Category.Icon(),
		title,
		priorityStyles[task.Priority].Render(task.Priority.Label()),
	}

	if task.DueDate != nil {
		due := utils.FormatDisplayDate(*task.DueDate)
		if task.DueTime != nil {
			due += " " + utils.FormatDisplayTime(*task.DueTime)
		}
		parts = append(parts, mutedStyle.Render(due))
	}

	switch item.Countdown.Urgency {
	case utils.UrgencyOverdue:
		parts = append(parts, overdueStyle.Render(item.Countdown.Text))
	case utils.UrgencyUrgent:
		parts = append(parts, urgentStyle.Render(item.Countdown.Text))
	default:
		if item.Countdown.Text != "" {
			parts = append(parts, item.Countdown.Text)
		}
	}

	line := strings.Join(parts, " ")
	if task.Notes != nil && *task.Notes != "" {
		line += fmt.Sprintf("\n      %s", mutedStyle.Render(*task.Notes))
	}
	return line
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}
