package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foodmap/foodmap/internal/config"
	"github.com/foodmap/foodmap/internal/localstore"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the local place snapshot",
	Long: `Reset deletes the persisted place snapshot. The next load fetches from
the remote table, or falls back to the embedded dataset. Configuration
is left untouched.`,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	store := localstore.New(config.NewResolver(stateDir).Dir())
	if err := store.Clear(); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}
	fmt.Println("Local snapshot cleared")
	return nil
}
