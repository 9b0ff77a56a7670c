package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MookeeHugo/kiddo-habit-app/internal/engine"
	"github.com/MookeeHugo/kiddo-habit-app/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var showAchievements bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, experience, points and achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := svc.UserRepo().GetOrCreateDefault(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(u.Avatar, u.Name))
			fmt.Fprintln(out, ui.LabelValue("Level",
				fmt.Sprintf("%d  %s", u.Level, engine.LevelTitle(u.Level))))

			if next := engine.ExpForNextLevel(u.Level); next == engine.NoNextLevel {
				fmt.Fprintln(out, ui.LabelValue("Exp", ui.Gold.Render("MAX")))
			} else {
				fmt.Fprintln(out, ui.LabelValue("Exp", fmt.Sprintf("%d / %d", u.Experience, next)))
			}

			fmt.Fprintln(out, ui.LabelValue("Points",
				fmt.Sprintf("%d %s (earned %d)", u.AvailablePoints, ui.IconStar, u.TotalPoints)))
			fmt.Fprintln(out, ui.LabelValue("Best streak",
				fmt.Sprintf("%d %s", u.LongestStreak, ui.IconFire)))
			fmt.Fprintln(out, ui.LabelValue("Completed", u.TotalTasksCompleted))
			fmt.Fprintln(out, ui.LabelValue("Perfect days", u.PerfectDays))

			ast, err := svc.AchievementStats(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.LabelValue("Achievements",
				fmt.Sprintf("%d / %d (%d%%)", ast.Unlocked, ast.Total, ast.Rate)))

			dist, err := svc.Distribution(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.LabelValue("Tasks",
				fmt.Sprintf("%d daily, %d todo (%d easy / %d medium / %d hard)",
					dist.Daily, dist.Todo, dist.Easy, dist.Medium, dist.Hard)))

			if !showAchievements {
				return nil
			}

			all, err := svc.AchievementRepo().ListAll(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Achievements"))
			for _, a := range all {
				mark := ui.Muted.Render("[ ]")
				name := ui.Muted.Render(a.Title)
				if a.Unlocked {
					mark = ui.Gold.Render("[x]")
					name = a.Title
				}
				fmt.Fprintf(out, "  %s %s %s  %s\n", mark, a.Icon, name, ui.Muted.Render(a.Description))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showAchievements, "achievements", "a", false, "List every achievement")

	return cmd
}
