package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fightclub/internal/engine"
	"fightclub/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var last int
	var ego string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the progression ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter engine.Persona
			if ego != "" {
				p, err := engine.ParsePersona(ego)
				if err != nil {
					return err
				}
				filter = p
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			entries := svc.History(ctx)
			if filter != "" {
				kept := entries[:0]
				for _, e := range entries {
					if e.Persona == filter {
						kept = append(kept, e)
					}
				}
				entries = kept
			}
			if last > 0 && len(entries) > last {
				entries = entries[len(entries)-last:]
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty ledger)"))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "History"))
			for _, e := range entries {
				subject := string(e.Event)
				switch e.Event {
				case engine.EventMissionCompleted, engine.EventMissionFailed:
					subject = e.Mission
				case engine.EventStreakMilestone:
					subject = fmt.Sprintf("%s streak %d", e.Habit, e.Streak)
				case engine.EventMissedCheckin:
					subject = fmt.Sprintf("missed %d days", e.DaysMissed)
				case engine.EventHabitReward:
					subject = "daily habits"
				}
				fmt.Fprintf(out, "%4d  %s  %s  %s  %s\n",
					e.Index,
					ui.Muted.Render(e.Date),
					ui.PersonaStyle(string(e.Persona)).Render(fmt.Sprintf("%-8s", e.Persona)),
					eventText(e.Event),
					subject)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&last, "last", "n", 0, "Only show the most recent N entries")
	cmd.Flags().StringVarP(&ego, "ego", "e", "", "Only show one alter ego's entries")

	return cmd
}

func eventText(e engine.EventType) string {
	switch e {
	case engine.EventMissionCompleted:
		return ui.Good.Render("completed")
	case engine.EventMissionFailed:
		return ui.Bad.Render("failed   ")
	case engine.EventHabitReward:
		return ui.Good.Render("habits   ")
	case engine.EventStreakMilestone:
		return ui.Gold.Render("milestone")
	case engine.EventMissedCheckin:
		return ui.Bad.Render("penalty  ")
	default:
		return ui.Muted.Render(string(e))
	}
}
