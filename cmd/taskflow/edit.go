package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/services"
	"github.com/yukikurage/taskflow/internal/utils"
)

func editCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}

			var patch services.TaskPatch
			flags := cmd.Flags()

			if flags.Changed("title") {
				v, _ := flags.GetString("title")
				patch.Title = &v
			}
			if flags.Changed("category") {
				v, _ := flags.GetString("category")
				c := models.Category(v)
				patch.Category = &c
			}
			if flags.Changed("priority") {
				v, _ := flags.GetString("priority")
				p := models.Priority(v)
				patch.Priority = &p
			}
			if flags.Changed("due") {
				v, _ := flags.GetString("due")
				d, err := parseDue(v, a.now())
				if err != nil {
					return err
				}
				patch.DueDate = &d
			}
			if flags.Changed("at") {
				v, _ := flags.GetString("at")
				t, err := models.ParseClockTime(v)
				if err != nil {
					return err
				}
				patch.DueTime = &t
			}
			if flags.Changed("notes") {
				v, _ := flags.GetString("notes")
				patch.Notes = &v
			}
			patch.ClearDueDate, _ = flags.GetBool("clear-due")
			patch.ClearDueTime, _ = flags.GetBool("clear-time")
			patch.ClearNotes, _ = flags.GetBool("clear-notes")

			task, err := a.store.Update(id, patch)
			if err := warn(cmd, err); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", renderTask(task, a.now()))
			return nil
		},
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().StringP("category", "c", "", "New category")
	cmd.Flags().StringP("priority", "p", "", "New priority")
	cmd.Flags().StringP("due", "d", "", "New due date (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().StringP("at", "t", "", "New due time (HH:MM)")
	cmd.Flags().StringP("notes", "n", "", "New notes")
	cmd.Flags().Bool("clear-due", false, "Remove the due date")
	cmd.Flags().Bool("clear-time", false, "Remove the due time")
	cmd.Flags().Bool("clear-notes", false, "Remove the notes")

	return cmd
}

func toggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle [id]",
		Aliases: []string{"done"},
		Short:   "Mark a task completed, or pending again",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}

			result, err := a.store.ToggleComplete(id)
			if err := warn(cmd, err); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Completed {
				fmt.Fprintln(out, celebrateStyle.Render("🎉 Nice work! "+result.Task.Title+" is done"))
			} else {
				fmt.Fprintf(out, "Reopened %s\n", renderTask(result.Task, a.now()))
			}
			return nil
		},
	}
}

func rmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.resolveID(args[0])
			if err != nil {
				return err
			}

			removed, err := a.store.Remove(id)
			if err := warn(cmd, err); err != nil {
				return err
			}
			if removed {
				fmt.Fprintln(cmd.OutOrStdout(), "Task deleted")
			}
			return nil
		},
	}
}

func clearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := a.store.ClearCompleted()
			if errors.Is(err, services.ErrNothingToClear) {
				fmt.Fprintln(cmd.OutOrStdout(), "No completed tasks to clear")
				return nil
			}
			if err := warn(cmd, err); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed %s\n", removed, utils.Plural(removed, "task"))
			return nil
		},
	}
}
