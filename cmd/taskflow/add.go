package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/services"
)

func addCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title...]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := services.TaskDraft{Title: strings.Join(args, " ")}

			category, _ := cmd.Flags().GetString("category")
			priority, _ := cmd.Flags().GetString("priority")
			draft.Category = models.Category(category)
			draft.Priority = models.Priority(priority)

			if due, _ := cmd.Flags().GetString("due"); due != "" {
				d, err := parseDue(due, a.now())
				if err != nil {
					return err
				}
				draft.DueDate = &d
			}
			if at, _ := cmd.Flags().GetString("at"); at != "" {
				t, err := models.ParseClockTime(at)
				if err != nil {
					return err
				}
				draft.DueTime = &t
			}
			if cmd.Flags().Changed("notes") {
				notes, _ := cmd.Flags().GetString("notes")
				draft.Notes = &notes
			}

			task, err := a.store.Add(draft)
			if err := warn(cmd, err); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", renderTask(task, a.now()))
			return nil
		},
	}

	cmd.Flags().StringP("category", "c", "", "Category (work, personal, health, learning, shopping, finance)")
	cmd.Flags().StringP("priority", "p", "", "Priority (low, medium, high, critical)")
	cmd.Flags().StringP("due", "d", "", "Due date (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().StringP("at", "t", "", "Due time (HH:MM)")
	cmd.Flags().StringP("notes", "n", "", "Notes")

	return cmd
}
