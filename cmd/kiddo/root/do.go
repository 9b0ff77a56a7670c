package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MookeeHugo/kiddo-habit-app/internal/ui"
)

func newDoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "do <task-id>",
		Short: "Complete a task and collect the reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CompleteTask(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			line := fmt.Sprintf("%s %s  +%d %s  +%d exp",
				ui.Good.Render(ui.IconDone+" Done:"), res.Title,
				res.Points, ui.IconStar, res.Experience)
			if res.StreakBonusPercent > 0 {
				line += ui.Warn.Render(fmt.Sprintf("  %s %d (+%d%%)", ui.IconFire, res.Streak, res.StreakBonusPercent))
			} else if res.Streak > 0 {
				line += ui.Muted.Render(fmt.Sprintf("  %s %d", ui.IconFire, res.Streak))
			}
			fmt.Fprintln(out, line)

			if res.LevelUp {
				fmt.Fprintf(out, "%s %s Level %d → %d\n", ui.IconSparkle, ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
			}
			if len(res.NewAchievements) > 0 {
				fmt.Fprintf(out, "%s %s\n",
					ui.Gold.Render(ui.IconTrophy+" Unlocked:"),
					strings.Join(res.NewAchievements, ", "))
			}
			return nil
		},
	}
}
