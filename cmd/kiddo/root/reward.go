package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MookeeHugo/kiddo-habit-app/internal/engine"
	"github.com/MookeeHugo/kiddo-habit-app/internal/ui"
)

func newRewardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reward",
		Short: "Manage the reward shop",
	}
	cmd.AddCommand(newRewardAddCmd(), newRewardListCmd(), newRewardRedeemCmd(), newRewardRemoveCmd())
	return cmd
}

func newRewardAddCmd() *cobra.Command {
	var icon string
	var desc string
	var category string

	cmd := &cobra.Command{
		Use:   "add <title> <cost>",
		Short: "Add a reward to the shop",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cost, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid cost %q", args[1])
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rw, err := svc.CreateReward(ctx, engine.CreateRewardInput{
				Title:       args[0],
				Description: desc,
				Cost:        cost,
				Icon:        icon,
				Category:    engine.ParseCategory(category),
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconGift+" Added:"), rw.Icon, rw.Title,
				ui.Muted.Render(fmt.Sprintf("(%d %s, id %.8s)", rw.Cost, ui.IconStar, rw.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&icon, "icon", "i", "", "Icon emoji")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVarP(&category, "category", "c", "activity", "Category (toy|activity|privilege)")

	return cmd
}

func newRewardListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List rewards, cheapest first",
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
			rewards, err := svc.RewardRepo().ListAll(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconGift, fmt.Sprintf("Reward shop  (%d %s available)", u.AvailablePoints, ui.IconStar)))

			shown := 0
			for _, rw := range rewards {
				if rw.Redeemed && !all {
					continue
				}
				shown++
				cost := fmt.Sprintf("%d %s", rw.Cost, ui.IconStar)
				switch {
				case rw.Redeemed:
					cost = ui.Muted.Render(cost + "  redeemed")
				case rw.Cost <= u.AvailablePoints:
					cost = ui.Good.Render(cost)
				default:
					cost = ui.Muted.Render(cost)
				}
				fmt.Fprintf(out, "  %s %s  %s  %s\n",
					rw.Icon, rw.Title, cost, ui.Muted.Render(fmt.Sprintf("%.8s", rw.ID)))
			}
			if shown == 0 {
				fmt.Fprintln(out, ui.Muted.Render("  Shop is empty. Add one with: kiddo reward add"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include already redeemed rewards")

	return cmd
}

func newRewardRedeemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redeem <reward-id>",
		Short: "Spend points on a reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.RedeemReward(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  -%d %s  %s\n",
				ui.Gold.Render(ui.IconGift+" Redeemed:"), res.Title,
				res.Cost, ui.IconStar,
				ui.Muted.Render(fmt.Sprintf("(%d left)", res.PointsRemaining)))
			return nil
		},
	}
}

func newRewardRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <reward-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a reward from the shop",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeleteReward(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Removed."))
			return nil
		},
	}
}
