package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fightclub/internal/engine"
	"fightclub/internal/ui"
)

func newRewardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "Manage rewards",
	}

	cmd.AddCommand(newRewardsAddCmd(), newRewardsListCmd())

	return cmd
}

func newRewardsAddCmd() *cobra.Command {
	var desc string
	var kind string
	var icon string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a locked reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rec, err := svc.CreateReward(ctx, engine.CreateRewardInput{
				Title:       args[0],
				Description: desc,
				Type:        engine.RewardType(kind),
				BadgeIcon:   icon,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.IconLock, ui.Gold.Render(rec.Reward.ID), rec.Reward.Title,
				ui.Muted.Render("("+rec.Reward.Type+")"))
			return nil
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVarP(&kind, "type", "t", string(engine.RewardStreet), "Reward tier (street|vanguard|legendary|apex|mythic)")
	cmd.Flags().StringVar(&icon, "icon", "", "Badge icon")

	return cmd
}

func newRewardsListCmd() *cobra.Command {
	var locked bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List unlocked (or locked) rewards",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			recs, err := svc.ListRewards(ctx, locked)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no rewards)"))
				return nil
			}
			icon := ui.IconUnlock
			if locked {
				icon = ui.IconLock
			}
			for _, rec := range recs {
				fmt.Fprintf(out, "%s %s %s %s\n",
					icon, ui.Gold.Render(rec.Reward.ID), rec.Reward.Title,
					ui.Muted.Render("("+rec.Reward.Type+")"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&locked, "locked", "l", false, "Show locked rewards instead")

	return cmd
}
