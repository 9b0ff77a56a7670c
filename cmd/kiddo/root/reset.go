package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MookeeHugo/kiddo-habit-app/internal/ui"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Run the daily rollover sweep now",
		Long: `Closes out the current day for daily tasks: records history, breaks
streaks on missed tasks and clears completion flags for the new day.
The sweep runs automatically once per calendar day; this command only
forces the check.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openServiceNoSweep(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			outcome, err := svc.RunDailyReset(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outcome == nil {
				fmt.Fprintln(out, ui.Muted.Render("Already swept today. Nothing to do."))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconLoop, "Daily reset"))
			fmt.Fprintln(out, ui.LabelValue("Completed", outcome.CompletedCount))
			fmt.Fprintln(out, ui.LabelValue("Missed", outcome.MissedCount))
			if outcome.PerfectDayRecorded {
				fmt.Fprintln(out, ui.Gold.Render(ui.IconSparkle+" Perfect day recorded!"))
			}
			if outcome.MaxStreakLost > 0 {
				fmt.Fprintln(out, ui.Bad.Render(fmt.Sprintf("%s Lost a streak of %d", ui.IconFire, outcome.MaxStreakLost)))
			}
			return nil
		},
	}
}
