package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/taskflow/internal/models"
	"github.com/yukikurage/taskflow/internal/services"
)

func listCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria := models.DefaultCriteria()
			criteria.Query, _ = cmd.Flags().GetString("search")
			if v, _ := cmd.Flags().GetString("quick"); v != "" {
				criteria.Quick = models.QuickFilter(v)
			}
			if v, _ := cmd.Flags().GetString("category"); v != "" {
				criteria.Category = models.CategoryFilter(v)
			}
			if v, _ := cmd.Flags().GetString("status"); v != "" {
				criteria.Status = models.StatusFilter(v)
			}
			if v, _ := cmd.Flags().GetString("sort"); v != "" {
				criteria.Sort = models.SortKey(v)
			}
			if err := criteria.Validate(); err != nil {
				return err
			}

			view := services.BuildView(a.store.Tasks(), criteria, a.now())
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, headerStyle.Render(view.Greeting))
			if len(view.Items) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("No tasks found"))
				return nil
			}
			for _, item := range view.Items {
				fmt.Fprintln(out, renderItem(item))
			}
			return nil
		},
	}

	cmd.Flags().StringP("search", "q", "", "Search title, notes and category")
	cmd.Flags().String("quick", "", "Quick filter (all, today, upcoming, overdue)")
	cmd.Flags().StringP("category", "c", "", "Category filter")
	cmd.Flags().StringP("status", "s", "", "Status filter (all, pending, completed, overdue)")
	cmd.Flags().String("sort", "", "Sort key (dueDate, priority, created, title)")

	return cmd
}
