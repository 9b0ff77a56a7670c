package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MookeeHugo/kiddo-habit-app/internal/engine"
	"github.com/MookeeHugo/kiddo-habit-app/internal/storage"
	"github.com/MookeeHugo/kiddo-habit-app/internal/ui"
)

func newAddCmd() *cobra.Command {
	var kind string
	var diff string
	var icon string
	var desc string
	var repeat string
	var due string
	var checklist []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a daily task or a todo",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			k, err := engine.ParseKind(kind)
			if err != nil {
				return err
			}

			in := engine.CreateTaskInput{
				Kind:       k,
				Title:      args[0],
				Icon:       icon,
				Difficulty: engine.ParseDifficulty(diff),
			}
			if desc != "" {
				in.Description = &desc
			}

			if k == engine.KindDaily {
				days, err := engine.ParseRepeatDays(repeat)
				if err != nil {
					return err
				}
				in.RepeatDays = days
			} else if due != "" {
				d, err := time.ParseInLocation("2006-01-02", due, time.Local)
				if err != nil {
					return fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", due)
				}
				in.DueDate = &d
			}

			for i, text := range checklist {
				in.Checklist = append(in.Checklist, storage.ChecklistItem{
					ID:   fmt.Sprintf("item-%d", i+1),
					Text: text,
				})
			}

			t, err := svc.CreateTask(ctx, in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				ui.KindIcon(t.Kind), t.Title,
				ui.Muted.Render(fmt.Sprintf("(%s, id %.8s)", t.Difficulty, t.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "daily", "Task type (daily|todo)")
	cmd.Flags().StringVarP(&diff, "diff", "d", "medium", "Difficulty (easy|medium|hard)")
	cmd.Flags().StringVarP(&icon, "icon", "i", "", "Icon emoji")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVarP(&repeat, "repeat", "r", "", "Weekdays the daily is due, e.g. mon,wed,fri or 1,3,5 (empty = every day)")
	cmd.Flags().StringVar(&due, "due", "", "Due date for a todo (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&checklist, "step", nil, "Checklist step (repeatable)")

	return cmd
}
