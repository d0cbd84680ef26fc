package root

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"fightclub/internal/engine"
	"fightclub/internal/ui"
)

func newMissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mission",
		Short: "Manage missions",
	}

	cmd.AddCommand(
		newMissionAddCmd(),
		newMissionListCmd(),
		newMissionProgressCmd(),
		newMissionOutcomeCmd("complete", engine.OutcomeCompleted),
		newMissionOutcomeCmd("fail", engine.OutcomeFailed),
		newMissionRmCmd(),
	)

	return cmd
}

func newMissionAddCmd() *cobra.Command {
	var ego string
	var desc string
	var difficulty string
	var total int
	var start string
	var due string
	var xp int
	var health int
	var energy int
	var failXP int
	var failHealth int
	var failEnergy int
	var rewardIDs []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a mission for one alter ego",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := engine.ParsePersona(ego)
			if err != nil {
				return err
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var refs []engine.RewardRef
			for _, id := range rewardIDs {
				refs = append(refs, engine.RewardRef{ID: strings.TrimSpace(id)})
			}

			rec, err := svc.CreateMission(ctx, engine.CreateMissionInput{
				Archetype:   p,
				Title:       args[0],
				Description: desc,
				Difficulty:  difficulty,
				Total:       total,
				StartDate:   start,
				DueDate:     due,
				OnComplete:  engine.Delta{XP: xp, Health: health, Energy: energy},
				OnFailure:   engine.Delta{XP: failXP, Health: failHealth, Energy: failEnergy},
				Rewards:     refs,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.IconMission,
				ui.Gold.Render(rec.Mission.Code),
				rec.Mission.Title,
				ui.Muted.Render("("+string(p)+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&ego, "ego", "e", "", "Alter ego (kei|mr-robot|tyler)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "medium", "Difficulty label")
	cmd.Flags().IntVarP(&total, "total", "t", 1, "Progress steps to finish")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&xp, "xp", 0, "XP granted on completion")
	cmd.Flags().IntVar(&health, "health", 0, "Health granted on completion")
	cmd.Flags().IntVar(&energy, "energy", 0, "Energy granted on completion")
	cmd.Flags().IntVar(&failXP, "fail-xp", 0, "XP change on failure (usually negative)")
	cmd.Flags().IntVar(&failHealth, "fail-health", 0, "Health change on failure")
	cmd.Flags().IntVar(&failEnergy, "fail-energy", 0, "Energy change on failure")
	cmd.Flags().StringSliceVar(&rewardIDs, "reward", nil, "Reward ids unlocked on completion")
	_ = cmd.MarkFlagRequired("ego")

	return cmd
}

func newMissionListCmd() *cobra.Command {
	var archived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active (or archived) missions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			recs, err := svc.ListMissions(ctx, archived)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no missions)"))
				return nil
			}
			for _, rec := range recs {
				m := rec.Mission
				due := ""
				if m.DueDate != "" {
					due = " " + ui.Muted.Render("due "+m.DueDate)
				}
				fmt.Fprintf(out, "%s %s %s [%d/%d] %s%s\n",
					ui.PersonaStyle(string(m.Archetype)).Render(m.Archetype.Info().Prefix),
					ui.Gold.Render(m.Code),
					m.Title,
					m.Progress.Current, m.Progress.Total,
					ui.StatusText(string(m.Status)),
					due)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&archived, "archived", "a", false, "Show the archive instead of the active set")

	return cmd
}

func newMissionProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress <code> <current>",
		Short: "Set a mission's progress counter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("progress must be an integer: %w", err)
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			key, err := findActiveMission(ctx, svc, args[0])
			if err != nil {
				return err
			}
			rec, err := svc.UpdateMissionProgress(ctx, key, cur)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s [%d/%d] %s\n",
				ui.Gold.Render(rec.Mission.Code), rec.Mission.Title,
				rec.Mission.Progress.Current, rec.Mission.Progress.Total,
				ui.StatusText(string(rec.Mission.Status)))
			return nil
		},
	}

	return cmd
}

func newMissionOutcomeCmd(use string, outcome engine.MissionOutcome) *cobra.Command {
	short := "Complete a mission and apply its rewards"
	if outcome == engine.OutcomeFailed {
		short = "Fail a mission and apply its failure costs"
	}

	cmd := &cobra.Command{
		Use:   use + " <code>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			key, err := findActiveMission(ctx, svc, args[0])
			if err != nil {
				return err
			}
			res, err := svc.ApplyMissionOutcome(ctx, key, outcome)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			icon := ui.IconDone
			if outcome == engine.OutcomeFailed {
				icon = ui.IconFail
			}
			fmt.Fprintf(out, "%s %s %s\n", icon, ui.Gold.Render(res.Mission.Code), res.Mission.Title)
			printDelta(out, res.DeltaApplied)
			for _, id := range res.RewardsUnlocked {
				fmt.Fprintf(out, "%s unlocked %s\n", ui.IconTrophy, ui.Gold.Render(id))
			}
			c := res.Character
			fmt.Fprintf(out, "%s is now level %d (%s) with %d XP\n",
				ui.PersonaStyle(string(res.Mission.Archetype)).Render(c.Name),
				c.Level, c.Title, c.XP.CurrentXP)
			return nil
		},
	}

	return cmd
}

func newMissionRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <code>",
		Short: "Delete an active mission without settling it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			key, err := findActiveMission(ctx, svc, args[0])
			if err != nil {
				return err
			}
			if err := svc.DeleteMission(ctx, key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("deleted "+key))
			return nil
		},
	}

	return cmd
}

// findActiveMission resolves a mission code like K01 to its store key.
func findActiveMission(ctx context.Context, svc *engine.Service, code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	recs, err := svc.ListMissions(ctx, false)
	if err != nil {
		return "", err
	}
	for _, rec := range recs {
		if rec.Mission.Code == code {
			return rec.Key, nil
		}
	}
	return "", fmt.Errorf("no active mission %s", code)
}

func printDelta(out io.Writer, d engine.Delta) {
	if d.IsZero() {
		return
	}
	parts := []string{}
	if d.XP != 0 {
		parts = append(parts, "XP "+ui.SignedDelta(d.XP))
	}
	if d.Health != 0 {
		parts = append(parts, ui.IconHeart+" "+ui.SignedDelta(d.Health))
	}
	if d.Energy != 0 {
		parts = append(parts, ui.IconBolt+" "+ui.SignedDelta(d.Energy))
	}
	for a, v := range d.Abilities {
		if v != 0 {
			parts = append(parts, a+" "+ui.SignedDelta(v))
		}
	}
	fmt.Fprintln(out, strings.Join(parts, "  "))
}
