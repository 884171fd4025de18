// arkdump prints player, tribe, dino, and structure tables extracted
// from an ASA save directory.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagDir     string
	flagVerbose bool
)

func main() {
	root := &cobra.Command{
		Use:           "arkdump",
		Short:         "Dump records from ARK: Survival Ascended save files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flagDir, "dir", "d", "",
		"SavedArks map directory (e.g. .../SavedArks/TheIsland_WP)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable debug logging")

	root.AddCommand(
		newPlayersCmd(),
		newTribesCmd(),
		newDinosCmd(),
		newStructuresCmd(),
		newClusterCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "arkdump:", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger honoring --verbose.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if flagVerbose {
		cfg = zap.NewDevelopmentConfig()
	}

	return cfg.Build()
}

// requireDir validates the --dir flag before a command runs.
func requireDir(cmd *cobra.Command, _ []string) error {
	if flagDir == "" {
		return fmt.Errorf("--dir is required")
	}

	return nil
}
