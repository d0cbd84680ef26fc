package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fightclub/internal/engine"
	"fightclub/internal/ui"
)

func newSeedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the three alter egos and the default rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Seed(ctx, force); err != nil {
				return err
			}
			if _, err := svc.RecomputeSynergy(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Seeded"))
			for _, p := range engine.AllPersonas() {
				info := p.Info()
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s\n",
					ui.PersonaStyle(string(p)).Render(info.Name),
					ui.Muted.Render(info.Role))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing characters and rules")

	return cmd
}
