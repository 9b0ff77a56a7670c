package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MookeeHugo/kiddo-habit-app/internal/ui"
)

func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <task-id>",
		Short: "Undo a task completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.UncompleteTask(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Warn.Render(ui.IconUndo+" Undone:"), res.Title,
				ui.Muted.Render(fmt.Sprintf("(streak now %d)", res.Streak)))
			return nil
		},
	}
}
