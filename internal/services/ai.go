package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/taskflow/internal/constants"
	"github.com/yukikurage/taskflow/internal/models"
)

type AIService struct {
	client *openai.Client
}

// GeneratedTask is one task suggestion as returned by the model
type GeneratedTask struct {
	Title    string `json:"title"`
	Notes    string `json:"notes"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	DueDate  string `json:"dueDate"`
	DueTime  string `json:"dueTime"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// NewAIServiceWithConfig creates an AIService with a custom client configuration
// (for example a different base URL).
func NewAIServiceWithConfig(cfg openai.ClientConfig) *AIService {
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
	}
}

// GenerateTasksFromText analyzes text and extracts tasks using OpenAI GPT
func (s *AIService) GenerateTasksFromText(ctx context.Context, text string, now time.Time) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	categories := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		categories[i] = string(c)
	}
	priorities := make([]string, len(models.Priorities))
	for i, p := range models.Priorities {
		priorities[i] = string(p)
	}

	prompt := fmt.Sprintf(`You are a task extraction assistant. Extract concrete tasks from the text below.

Current time: %s

Text:
%s

Return a JSON array of tasks in this format:
[
  {
    "title": "short task title",
    "notes": "optional details, empty string if none",
    "category": "one of: %s",
    "priority": "one of: %s",
    "dueDate": "YYYY-MM-DD, or empty string if no deadline is mentioned",
    "dueTime": "HH:MM in 24h format, or empty string if no time is mentioned"
  }
]

Rules:
- Return [] if the text contains no tasks
- Convert relative expressions ("tomorrow", "next week") into concrete dates
- Return only JSON, no commentary`,
		now.Format("2006-01-02 15:04 Monday"), text,
		strings.Join(categories, ", "), strings.Join(priorities, ", "))

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)

	var tasks []GeneratedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return tasks, nil
}

// GenerateDrafts turns free text into validated task drafts. Nothing is
// added to any collection. A nil service reports ErrAIServiceNotConfigured.
func (s *AIService) GenerateDrafts(ctx context.Context, text string, now time.Time) ([]TaskDraft, error) {
	if s == nil {
		return nil, ErrAIServiceNotConfigured
	}

	generated, err := s.GenerateTasksFromText(ctx, text, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(generated) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(generated) > constants.MaxAIGeneratedTasks {
		return nil, fmt.Errorf("AI generated too many tasks (max %d)", constants.MaxAIGeneratedTasks)
	}

	today := models.DateOf(now)
	drafts := make([]TaskDraft, 0, len(generated))
	for _, g := range generated {
		draft, ok := g.toDraft(today)
		if !ok {
			continue
		}
		drafts = append(drafts, draft)
	}

	if len(drafts) == 0 {
		return nil, ErrAINoValidTasks
	}

	return drafts, nil
}

// toDraft converts a suggestion into a draft. Unknown categories and
// priorities fall back to the defaults, unparseable or past dates are dropped,
// and suggestions without a title are rejected.
func (g GeneratedTask) toDraft(today models.Date) (TaskDraft, bool) {
	title := strings.TrimSpace(g.Title)
	if title == "" {
		return TaskDraft{}, false
	}

	draft := TaskDraft{
		Title:    title,
		Category: models.Category(strings.ToLower(strings.TrimSpace(g.Category))),
		Priority: models.Priority(strings.ToLower(strings.TrimSpace(g.Priority))),
	}
	if !draft.Category.IsValid() {
		draft.Category = models.CategoryWork
	}
	if !draft.Priority.IsValid() {
		draft.Priority = models.PriorityMedium
	}

	if notes := strings.TrimSpace(g.Notes); notes != "" {
		draft.Notes = &notes
	}

	if g.DueDate != "" {
		if d, err := models.ParseDate(g.DueDate); err == nil && d.Compare(today) >= 0 {
			draft.DueDate = &d
			if g.DueTime != "" {
				if ct, err := models.ParseClockTime(g.DueTime); err == nil {
					draft.DueTime = &ct
				}
			}
		}
	}

	return draft, true
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
