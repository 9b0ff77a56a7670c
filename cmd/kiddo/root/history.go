package root

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MookeeHugo/kiddo-habit-app/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show daily completion history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				days = 7
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := svc.WeeklyStats(ctx, time.Now(), days)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconStar, fmt.Sprintf("Last %d days", days)))
			for _, st := range stats {
				bar := historyBar(st.Rate)
				label := fmt.Sprintf("%s %s", st.Date.Format("Mon 01-02"), bar)
				if st.Total == 0 {
					fmt.Fprintf(out, "  %s %s\n", label, ui.Muted.Render("no dailies"))
					continue
				}
				line := fmt.Sprintf("  %s %d/%d", label, st.Completed, st.Total)
				if st.Perfect {
					line += " " + ui.Gold.Render(ui.IconSparkle)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", 7, "How many days back to show")

	return cmd
}

func historyBar(ratePercent int) string {
	const width = 10
	filled := ratePercent * width / 100
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if ratePercent >= 100 {
		return ui.Good.Render(bar)
	}
	return ui.Key.Render(bar)
}
