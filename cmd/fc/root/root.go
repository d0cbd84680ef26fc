package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fightclub/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "fc",
	Short:         "Fight Club — alter-ego progression tracker",
	Long:          "Fight Club is a local-first CLI/TUI that tracks three alter egos through missions, daily habit check-ins and a shared synergy ladder.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newSeedCmd(),
		newStatusCmd(),
		newSynergyCmd(),
		newCheckinCmd(),
		newMissionCmd(),
		newRewardsCmd(),
		newHistoryCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
