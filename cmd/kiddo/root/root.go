package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MookeeHugo/kiddo-habit-app/internal/ui"
)

const Version = "0.1.0"

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "kiddo",
	Short:         "KiddoHabit, a habit tracker for kids with points and levels",
	Long:          "KiddoHabit is a local-first habit tracker for children: daily tasks and todos, streaks, points, levels, achievements and parent-defined rewards.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default ~/.kiddohabit.yml)")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoCmd(),
		newUndoCmd(),
		newListCmd(),
		newRmCmd(),
		newStatusCmd(),
		newRewardCmd(),
		newResetCmd(),
		newHistoryCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
