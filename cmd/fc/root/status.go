package root

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"fightclub/internal/engine"
	"fightclub/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [alter-ego]",
		Short: "Show alter-ego stats",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			personas := engine.AllPersonas()
			if len(args) == 1 {
				p, err := engine.ParsePersona(args[0])
				if err != nil {
					return err
				}
				personas = []engine.Persona{p}
			}

			for _, p := range personas {
				c, err := svc.Character(ctx, p)
				if err != nil {
					return err
				}
				printCharacter(cmd, p, c)
			}
			return nil
		},
	}

	return cmd
}

func printCharacter(cmd *cobra.Command, p engine.Persona, c *engine.Character) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, ui.Heading("", ui.PersonaStyle(string(p)).Render(c.Name)+" — "+c.Role))
	next := "max level"
	if c.XP.XPToNext != nil {
		next = fmt.Sprintf("next at %d", *c.XP.XPToNext)
	}
	fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d (%s)", c.Level, c.Title)))
	fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d (%s)", c.XP.CurrentXP, next)))
	fmt.Fprintf(out, "%s %s %d/%d   %s %d/%d\n",
		ui.IconHeart, ui.Key.Render("Health:"), c.Health.CurrentHealth, c.Health.MaxHealth,
		ui.Key.Render(ui.IconBolt+" Energy:"), c.Energy.CurrentEnergy, c.Energy.MaxEnergy)

	abilities := make([]string, 0, len(c.Abilities))
	for a := range c.Abilities {
		abilities = append(abilities, a)
	}
	sort.Strings(abilities)
	fmt.Fprintln(out, ui.H2.Render("Abilities"))
	for _, a := range abilities {
		fmt.Fprintf(out, "- %s: %d\n", a, c.Abilities[a])
	}
	fmt.Fprintln(out, "")
}
