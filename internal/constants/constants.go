package constants

import "time"

const (
	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200

	// Sessions
	SessionCookieName    = "taskflow_session"
	SessionKeyCriteria   = "view_criteria"
	ContextKeyTask       = "task"
	ContextKeyCriteria   = "view_criteria"
	SessionMaxAgeSeconds = 86400 * 30
	DefaultSessionSecret = "default-secret-key-change-me"

	// Storage
	DefaultStorageKey = "taskflow_tasks"
	DefaultDBFile     = "taskflow.db"

	// AI
	MaxAIGeneratedTasks = 20

	// View refresh
	DefaultTickInterval = 60 * time.Second
)
