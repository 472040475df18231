package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
	"github.com/yukikurage/taskflow/internal/config"
	"github.com/yukikurage/taskflow/internal/database"
	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/repository"
	"github.com/yukikurage/taskflow/internal/services"
)

// app holds what every subcommand needs once the root command has run
type app struct {
	cfg   *config.Config
	store *services.TaskStore
	ai    *services.AIService
	now   func() time.Time
}

func newRootCmd() *cobra.Command {
	a := &app{now: time.Now}

	rootCmd := &cobra.Command{
		Use:           "taskflow",
		Short:         "Taskflow - a personal task tracker",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
	}

	rootCmd.AddCommand(addCmd(a))
	rootCmd.AddCommand(listCmd(a))
	rootCmd.AddCommand(editCmd(a))
	rootCmd.AddCommand(toggleCmd(a))
	rootCmd.AddCommand(rmCmd(a))
	rootCmd.AddCommand(clearCmd(a))
	rootCmd.AddCommand(statsCmd(a))
	rootCmd.AddCommand(suggestCmd(a))

	return rootCmd
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	kv, err := openKVStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	store, err := services.OpenTaskStore(repository.NewTaskRepository(kv, cfg.StorageKey), services.WithClock(a.now))
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v, starting with an empty list\n", err)
	}
	a.store = store

	if cfg.OpenAIAPIKey != "" {
		aiConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
		if cfg.OpenAIBaseURL != "" {
			aiConfig.BaseURL = cfg.OpenAIBaseURL
		}
		a.ai = services.NewAIServiceWithConfig(aiConfig)
	}
	return nil
}

func openKVStore(cfg *config.Config) (repository.KVStore, error) {
	if cfg.StorageBackend == config.StorageBackendFile {
		return repository.NewFileKVStore(cfg.DataDir), nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return repository.NewGormKVStore(db), nil
}

// resolveID accepts a full task id or an unambiguous prefix of one
func (a *app) resolveID(arg string) (string, error) {
	var matches []string
	for _, t := range a.store.Tasks() {
		if t.ID == arg {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", &services.NotFoundError{ID: arg}
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q matches %d tasks", arg, len(matches))
	}
}

// warn prints a persistence failure and swallows it; the change itself went through
func warn(cmd *cobra.Command, err error) error {
	if err != nil && services.IsPersistence(err) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		return nil
	}
	return err
}

// parseDue understands YYYY-MM-DD plus "today" and "tomorrow"
func parseDue(s string, now time.Time) (models.Date, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return models.DateOf(now), nil
	case "tomorrow":
		return models.DateOf(now).AddDays(1), nil
	default:
		return models.ParseDate(s)
	}
}
