package dto

import (
	"time"

	apierrors "github.com/yukikurage/taskflow/internal/errors"
	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/services"
	"github.com/yukikurage/taskflow/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Category       models.Category  `json:"category"`
	CategoryLabel  string           `json:"category_label"`
	Priority       models.Priority  `json:"priority"`
	PriorityLabel  string           `json:"priority_label"`
	DueDate        *string          `json:"due_date"`
	DueTime        *string          `json:"due_time"`
	DueDateDisplay string           `json:"due_date_display,omitempty"`
	DueTimeDisplay string           `json:"due_time_display,omitempty"`
	Notes          *string          `json:"notes"`
	Completed      bool             `json:"completed"`
	CreatedAt      time.Time        `json:"created_at"`
	Overdue        bool             `json:"overdue"`
	Countdown      *utils.Countdown `json:"countdown,omitempty"`
}

// StatsDTO represents collection statistics in API responses
type StatsDTO struct {
	Total           int `json:"total"`
	Completed       int `json:"completed"`
	Pending         int `json:"pending"`
	Overdue         int `json:"overdue"`
	ProgressPercent int `json:"progress_percent"`
}

// TaskListResponse represents one page of the filtered and sorted view
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Stats      StatsDTO                 `json:"stats"`
	Greeting   string                   `json:"greeting"`
	Criteria   models.ViewCriteria      `json:"criteria"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// TaskResponse is returned after creating or updating a task
type TaskResponse struct {
	Task    TaskDTO             `json:"task"`
	Warning *apierrors.APIError `json:"warning,omitempty"`
}

// ToggleResponse is returned after toggling completion
type ToggleResponse struct {
	Task      TaskDTO             `json:"task"`
	Celebrate bool                `json:"celebrate"`
	Warning   *apierrors.APIError `json:"warning,omitempty"`
}

// RemovalResponse is returned after deleting or clearing tasks
type RemovalResponse struct {
	Message string              `json:"message"`
	Removed int                 `json:"removed"`
	Warning *apierrors.APIError `json:"warning,omitempty"`
}

// TaskDraftDTO represents an AI-generated draft in API responses
type TaskDraftDTO struct {
	Title    string          `json:"title"`
	Category models.Category `json:"category"`
	Priority models.Priority `json:"priority"`
	DueDate  *string         `json:"due_date"`
	DueTime  *string         `json:"due_time"`
	Notes    *string         `json:"notes"`
}

// Conversion functions

// ToTaskDTO converts a Task model to TaskDTO, annotated as of now
func ToTaskDTO(task models.Task, now time.Time) TaskDTO {
	item := services.TaskView{
		Task:    task,
		Overdue: utils.IsOverdue(task, now),
	}
	if !task.Completed {
		item.Countdown = utils.GetCountdown(task, now)
	}
	return ToTaskViewDTO(item)
}

// ToTaskViewDTO converts an annotated view item to TaskDTO
func ToTaskViewDTO(item services.TaskView) TaskDTO {
	task := item.Task
	dto := TaskDTO{
		ID:            task.ID,
		Title:         task.Title,
		Category:      task.Category,
		CategoryLabel: task.Category.Label(),
		Priority:      task.Priority,
		PriorityLabel: task.Priority.Label(),
		Notes:         task.Notes,
		Completed:     task.Completed,
		CreatedAt:     task.CreatedAt,
		Overdue:       item.Overdue,
	}

	if task.DueDate != nil {
		d := task.DueDate.String()
		dto.DueDate = &d
		dto.DueDateDisplay = utils.FormatDisplayDate(*task.DueDate)
	}
	if task.DueTime != nil {
		t := task.DueTime.String()
		dto.DueTime = &t
		dto.DueTimeDisplay = utils.FormatDisplayTime(*task.DueTime)
	}
	if item.Countdown.Text != "" {
		countdown := item.Countdown
		dto.Countdown = &countdown
	}

	return dto
}

// ToStatsDTO converts view statistics to StatsDTO
func ToStatsDTO(stats services.Stats) StatsDTO {
	return StatsDTO{
		Total:           stats.Total,
		Completed:       stats.Completed,
		Pending:         stats.Pending,
		Overdue:         stats.Overdue,
		ProgressPercent: stats.ProgressPercent,
	}
}

// ToTaskListResponse converts a view to one page of TaskListResponse
func ToTaskListResponse(view services.View, params utils.PaginationParams) TaskListResponse {
	page := utils.Paginate(view.Items, params)
	items := make([]TaskDTO, len(page))
	for i, item := range page {
		items[i] = ToTaskViewDTO(item)
	}

	return TaskListResponse{
		Tasks:    items,
		Stats:    ToStatsDTO(view.Stats),
		Greeting: view.Greeting,
		Criteria: view.Criteria,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: len(view.Items),
		},
	}
}

// ToTaskDraftDTO converts a generated draft to TaskDraftDTO
func ToTaskDraftDTO(draft services.TaskDraft) TaskDraftDTO {
	dto := TaskDraftDTO{
		Title:    draft.Title,
		Category: draft.Category,
		Priority: draft.Priority,
		Notes:    draft.Notes,
	}
	if draft.DueDate != nil {
		d := draft.DueDate.String()
		dto.DueDate = &d
	}
	if draft.DueTime != nil {
		t := draft.DueTime.String()
		dto.DueTime = &t
	}
	return dto
}
