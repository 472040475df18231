package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yukikurage/taskflow/internal/services"
)

const progressWidth = 20

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.now()
			st := services.ComputeStats(a.store.Tasks(), now)
			out := cmd.OutOrStdout()

			filled := st.ProgressPercent * progressWidth / 100
			bar := strings.Repeat("█", filled) + strings.Repeat("░", progressWidth-filled)

			fmt.Fprintf(out, "  %-10s %d\n", "Total:", st.Total)
			fmt.Fprintf(out, "  %-10s %d\n", "Pending:", st.Pending)
			fmt.Fprintf(out, "  %-10s %d\n", "Completed:", st.Completed)
			fmt.Fprintf(out, "  %-10s %s\n", "Overdue:", overdueStyle.Render(fmt.Sprint(st.Overdue)))
			fmt.Fprintf(out, "  %-10s %s %d%%\n", "Progress:", bar, st.ProgressPercent)
			return nil
		},
	}
}
