package root

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fightclub/internal/engine"
	"fightclub/internal/ui"
)

func newCheckinCmd() *cobra.Command {
	var date string
	var done []string
	var missed []string
	var mood string
	var sleep float64

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record a day's habit results",
		Example: `  fc checkin --done workout,meditation --missed reading
  fc checkin --date 2026-08-30 --done workout --sleep 7.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(done) == 0 && len(missed) == 0 {
				return fmt.Errorf("nothing to record: pass --done and/or --missed")
			}

			habits := map[string]engine.HabitOutcome{}
			for _, h := range splitHabits(done) {
				habits[h] = engine.HabitSuccess
			}
			for _, h := range splitHabits(missed) {
				if _, dup := habits[h]; dup {
					return fmt.Errorf("habit %q is both done and missed", h)
				}
				habits[h] = engine.HabitFailed
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := svc.ProcessDailyCheckin(ctx, engine.Checkin{
				Date:       date,
				Mood:       mood,
				SleepHours: sleep,
				Habits:     habits,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCalendar, "Check-in "+summary.Date))
			if summary.PenaltyApplied {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" An overdue missed-checkin penalty was settled first."))
			}
			if summary.XPEarned > 0 {
				fmt.Fprintf(out, "%s %s XP to every alter ego\n", ui.IconSparkle, ui.SignedDelta(summary.XPEarned))
			} else {
				fmt.Fprintln(out, ui.Muted.Render("No XP earned today."))
			}
			for _, m := range summary.Milestones {
				fmt.Fprintf(out, "%s %s hit a %d-day streak (+%d XP)\n", ui.IconTrophy, m.Habit, m.Streak, m.XPBonus)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", time.Now().UTC().Format(engine.DateFormat), "Check-in date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&done, "done", nil, "Habits completed today")
	cmd.Flags().StringSliceVar(&missed, "missed", nil, "Habits missed today")
	cmd.Flags().StringVar(&mood, "mood", "", "Optional mood note")
	cmd.Flags().Float64Var(&sleep, "sleep", 0, "Optional hours slept")

	return cmd
}

func splitHabits(in []string) []string {
	var out []string
	for _, part := range in {
		h := strings.ToLower(strings.TrimSpace(part))
		if h != "" {
			out = append(out, h)
		}
	}
	return out
}
