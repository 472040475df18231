package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func suggestCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest [text...]",
		Short: "Extract tasks from free text using AI",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, err := a.ai.GenerateDrafts(cmd.Context(), strings.Join(args, " "), a.now())
			if err != nil {
				return err
			}

			add, _ := cmd.Flags().GetBool("add")
			out := cmd.OutOrStdout()
			for _, d := range drafts {
				if !add {
					fmt.Fprintf(out, "  %s %s [%s]\n", d.Category.Icon(), d.Title, d.Priority.Label())
					continue
				}
				task, err := a.store.Add(d)
				if err := warn(cmd, err); err != nil {
					return err
				}
				fmt.Fprintf(out, "Added %s\n", renderTask(task, a.now()))
			}
			return nil
		},
	}

	cmd.Flags().Bool("add", false, "Add the suggested tasks instead of only printing them")

	return cmd
}
