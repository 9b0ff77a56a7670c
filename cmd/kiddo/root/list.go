package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MookeeHugo/kiddo-habit-app/internal/engine"
	"github.com/MookeeHugo/kiddo-habit-app/internal/storage"
	"github.com/MookeeHugo/kiddo-habit-app/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool
	var done bool
	var kind string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks due today (or all with --all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var tasks []storage.Task
			switch {
			case done:
				tasks, err = svc.ListCompleted(ctx)
				if err != nil {
					return err
				}
			case kind != "":
				k, err := engine.ParseKind(kind)
				if err != nil {
					return err
				}
				tasks, err = svc.TaskRepo().ListByKind(ctx, string(k))
				if err != nil {
					return err
				}
			case all:
				tasks, err = svc.TaskRepo().ListAll(ctx)
				if err != nil {
					return err
				}
			default:
				tasks, err = svc.ListTodayTasks(ctx, time.Now())
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No tasks. Add one with: kiddo add"))
				return nil
			}

			heading := "Today"
			switch {
			case done:
				heading = "Completed"
			case all || kind != "":
				heading = "Tasks"
			}
			fmt.Fprintln(out, ui.Heading(ui.IconPin, heading))
			for _, t := range tasks {
				fmt.Fprintln(out, renderTaskLine(&t))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include tasks not due today")
	cmd.Flags().BoolVar(&done, "done", false, "Only tasks currently marked complete")
	cmd.Flags().StringVarP(&kind, "type", "t", "", "Only this task type (daily|todo)")

	return cmd
}

func renderTaskLine(t *storage.Task) string {
	line := fmt.Sprintf("  %s %s %s %s  %s",
		ui.CompletedMark(t.Completed),
		ui.KindIcon(t.Kind),
		t.Icon, t.Title,
		ui.DifficultyText(t.Difficulty))
	if t.Streak > 0 {
		line += ui.Warn.Render(fmt.Sprintf("  %s %d", ui.IconFire, t.Streak))
	}
	if t.DueDate != nil {
		line += ui.Muted.Render("  due " + t.DueDate.Format("2006-01-02"))
	}
	if n := len(t.Checklist); n > 0 {
		done := 0
		for _, item := range t.Checklist {
			if item.Completed {
				done++
			}
		}
		line += ui.Muted.Render(fmt.Sprintf("  [%d/%d]", done, n))
	}
	line += ui.Muted.Render(fmt.Sprintf("  %.8s", t.ID))
	return line
}
