package root

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"fightclub/internal/engine"
	"fightclub/internal/ui"
)

func newSynergyCmd() *cobra.Command {
	var recompute bool

	cmd := &cobra.Command{
		Use:   "synergy",
		Short: "Show the cross-ego synergy summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var syn *engine.Synergy
			if recompute {
				syn, err = svc.RecomputeSynergy(ctx)
				if err != nil {
					return err
				}
			} else {
				syn = svc.Synergy(ctx)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconFlame, "Synergy"))
			fmt.Fprintln(out, ui.LabelValue("Chapter", fmt.Sprintf("%s (level %d)", syn.Chapter, syn.Level)))
			if syn.Description != "" {
				fmt.Fprintln(out, ui.Muted.Render(syn.Description))
			}
			next := "at the top"
			if syn.XPToNext != nil {
				next = fmt.Sprintf("next chapter at %d", *syn.XPToNext)
			}
			fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%d (%s)", syn.TotalXP, next)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("Categories"))
			cats := make([]string, 0, len(syn.Categories))
			for c := range syn.Categories {
				cats = append(cats, c)
			}
			sort.Strings(cats)
			for _, c := range cats {
				fmt.Fprintf(out, "- %s: %.2f\n", c, syn.Categories[c])
			}
			fmt.Fprintln(out, ui.LabelValue("Total synergy", fmt.Sprintf("%.2f", syn.TotalSynergy)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("Missions"))
			for _, st := range []engine.MissionStatus{engine.MissionNotStarted, engine.MissionInProgress, engine.MissionCompleted, engine.MissionFailed} {
				if n := syn.Missions[st]; n > 0 {
					fmt.Fprintf(out, "- %s: %d\n", ui.StatusText(string(st)), n)
				}
			}
			fmt.Fprintf(out, "- %s %d %s / %d %s\n", ui.Key.Render("Rewards:"),
				syn.Rewards["unlocked"], ui.IconUnlock, syn.Rewards["locked"], ui.IconLock)
			fmt.Fprintln(out, "")

			dp := syn.DailyProgress
			fmt.Fprintln(out, ui.H2.Render("Daily progress"))
			fmt.Fprintf(out, "- %s %d (total %d)\n", ui.Key.Render("Check-in streak:"), dp.CheckinStreak, dp.TotalCheckins)
			if dp.LastCheckin != "" {
				fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Last check-in:"), dp.LastCheckin)
			}
			habits := make([]string, 0, len(dp.Habits))
			for h := range dp.Habits {
				habits = append(habits, h)
			}
			sort.Strings(habits)
			for _, h := range habits {
				st := dp.Habits[h]
				fmt.Fprintf(out, "- %s: streak %d (best %d, %d/%d)\n",
					h, st.Streak, st.BestStreak, st.TotalSuccess, st.TotalSuccess+st.TotalFailure)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&recompute, "recompute", false, "Rebuild the summary before printing it")

	return cmd
}
