package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow/internal/dto"
	apierrors "github.com/yukikurage/taskflow/internal/errors"
	"github.com/yukikurage/taskflow/internal/middleware"
	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/services"
	"github.com/yukikurage/taskflow/internal/utils"
)

type TaskHandler struct {
	tracker   *services.Tracker
	aiService *services.AIService
}

func NewTaskHandler(tracker *services.Tracker, aiService *services.AIService) *TaskHandler {
	return &TaskHandler{
		tracker:   tracker,
		aiService: aiService,
	}
}

// ListTasks returns the filtered, sorted and annotated task view
// Criteria come from LoadViewCriteria
func (h *TaskHandler) ListTasks(c *gin.Context) {
	criteria := middleware.GetViewCriteria(c)

	view, err := h.tracker.ViewFor(c.Request.Context(), criteria)
	if err != nil {
		apierrors.InternalError(c, "Failed to build task view")
		return
	}

	params := utils.GetPaginationParams(c)
	c.JSON(http.StatusOK, dto.ToTaskListResponse(view, params))
}

// GetStats returns statistics over the whole collection
func (h *TaskHandler) GetStats(c *gin.Context) {
	view, err := h.tracker.ViewFor(c.Request.Context(), models.DefaultCriteria())
	if err != nil {
		apierrors.InternalError(c, "Failed to compute stats")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":    dto.ToStatsDTO(view.Stats),
		"greeting": view.Greeting,
	})
}

// GetTask returns a specific task by ID
// Task is already loaded by RequireTask middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task, h.tracker.Now()))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title    string  `json:"title"`
		Category string  `json:"category" binding:"omitempty,oneof=work personal health learning shopping finance"`
		Priority string  `json:"priority" binding:"omitempty,oneof=low medium high critical"`
		DueDate  string  `json:"due_date"`
		DueTime  string  `json:"due_time"`
		Notes    *string `json:"notes"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	draft := services.TaskDraft{
		Title:    req.Title,
		Category: models.Category(req.Category),
		Priority: models.Priority(req.Priority),
		Notes:    req.Notes,
	}
	if req.DueDate != "" {
		d, err := models.ParseDate(req.DueDate)
		if err != nil {
			apierrors.ValidationFailed(c, "due_date", err.Error())
			return
		}
		draft.DueDate = &d
	}
	if req.DueTime != "" {
		t, err := models.ParseClockTime(req.DueTime)
		if err != nil {
			apierrors.ValidationFailed(c, "due_time", err.Error())
			return
		}
		draft.DueTime = &t
	}

	var task models.Task
	err := h.tracker.Do(c.Request.Context(), func(s *services.TaskStore) error {
		var err error
		task, err = s.Add(draft)
		return err
	})
	if err != nil && !services.IsPersistence(err) {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.TaskResponse{
		Task:    dto.ToTaskDTO(task, h.tracker.Now()),
		Warning: warningFor(err),
	})
}

// UpdateTask applies a partial update to an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	patch, field, err := patchFromRequest(rawReq)
	if err != nil {
		apierrors.ValidationFailed(c, field, err.Error())
		return
	}

	var updated models.Task
	err = h.tracker.Do(c.Request.Context(), func(s *services.TaskStore) error {
		var err error
		updated, err = s.Update(task.ID, patch)
		return err
	})
	if err != nil && !services.IsPersistence(err) {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{
		Task:    dto.ToTaskDTO(updated, h.tracker.Now()),
		Warning: warningFor(err),
	})
}

// ToggleTask flips a task between pending and completed
func (h *TaskHandler) ToggleTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	var result services.ToggleResult
	err := h.tracker.Do(c.Request.Context(), func(s *services.TaskStore) error {
		var err error
		result, err = s.ToggleComplete(task.ID)
		return err
	})
	if err != nil && !services.IsPersistence(err) {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToggleResponse{
		Task:      dto.ToTaskDTO(result.Task, h.tracker.Now()),
		Celebrate: result.Completed,
		Warning:   warningFor(err),
	})
}

// DeleteTask deletes a task. Deleting a missing task succeeds with nothing removed.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID := c.Param("id")

	var removed bool
	err := h.tracker.Do(c.Request.Context(), func(s *services.TaskStore) error {
		var err error
		removed, err = s.Remove(taskID)
		return err
	})
	if err != nil && !services.IsPersistence(err) {
		respondTaskError(c, err)
		return
	}

	resp := dto.RemovalResponse{
		Message: "Task deleted successfully",
		Warning: warningFor(err),
	}
	if removed {
		resp.Removed = 1
	}
	c.JSON(http.StatusOK, resp)
}

// ClearCompleted removes all completed tasks
func (h *TaskHandler) ClearCompleted(c *gin.Context) {
	var removed int
	err := h.tracker.Do(c.Request.Context(), func(s *services.TaskStore) error {
		var err error
		removed, err = s.ClearCompleted()
		return err
	})

	switch {
	case errors.Is(err, services.ErrNothingToClear):
		c.JSON(http.StatusOK, dto.RemovalResponse{Message: "No completed tasks to clear"})
		return
	case err != nil && !services.IsPersistence(err):
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RemovalResponse{
		Message: fmt.Sprintf("Cleared %d completed %s", removed, utils.Plural(removed, "task")),
		Removed: removed,
		Warning: warningFor(err),
	})
}

// GenerateTasks generates task drafts from text using AI
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	type GenerateTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.aiService.GenerateDrafts(c.Request.Context(), req.Text, h.tracker.Now())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	items := make([]dto.TaskDraftDTO, len(drafts))
	for i, d := range drafts {
		items[i] = dto.ToTaskDraftDTO(d)
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": items,
	})
}

func warningFor(err error) *apierrors.APIError {
	if err == nil {
		return nil
	}
	return apierrors.PersistenceWarning(err)
}

func respondTaskError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		apierrors.ValidationFailed(c, validationErr.Field, validationErr.Error())
	case errors.As(err, &notFoundErr):
		apierrors.NotFound(c, notFoundErr.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks):
		apierrors.ValidationFailed(c, "text", err.Error())
	default:
		apierrors.InternalError(c, fmt.Sprintf("Failed to process task request: %v", err))
	}
}
