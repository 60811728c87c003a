package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// relocateCmd represents the relocate command
var relocateCmd = &cobra.Command{
	Use:   "relocate <id>",
	Short: "Re-geocode a place's address and update its coordinates",
	Long: `Relocate resolves the place's city and address through the geocoding
service and patches its coordinates, remote-first.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelocate,
}

func init() {
	rootCmd.AddCommand(relocateCmd)
}

func runRelocate(cmd *cobra.Command, args []string) error {
	fm, err := newClient()
	if err != nil {
		return err
	}
	fm.Load(cmd.Context())

	updated, err := fm.Relocate(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("relocating place: %w", err)
	}

	if jsonOutput() {
		return printJSON(updated)
	}
	coords, _ := updated.Coordinates()
	fmt.Printf("Relocated %s to %.6f,%.6f\n", updated.Name, coords.Lng, coords.Lat)
	return nil
}
