package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskflow/internal/middleware"
	"github.com/yukikurage/taskflow/internal/services"
)

// RegisterRoutes mounts the health check and the task API on r.
// Session middleware must already be installed.
func RegisterRoutes(r gin.IRouter, tracker *services.Tracker, aiService *services.AIService) {
	taskHandler := NewTaskHandler(tracker, aiService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Taskflow is running",
		})
	})

	api := r.Group("/api")
	{
		api.GET("/stats", taskHandler.GetStats)

		tasks := api.Group("/tasks")
		{
			tasks.GET("", middleware.LoadViewCriteria(), taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/generate", taskHandler.GenerateTasks)
			tasks.POST("/clear-completed", taskHandler.ClearCompleted)
			tasks.GET("/:id", middleware.RequireTask(tracker), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireTask(tracker), taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/toggle", middleware.RequireTask(tracker), taskHandler.ToggleTask)
		}
	}
}
