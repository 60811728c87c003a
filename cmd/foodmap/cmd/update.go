package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	foodmap "github.com/foodmap/foodmap"
	"github.com/foodmap/foodmap/pkg/places"
)

var (
	updateName     string
	updateCity     string
	updateCategory string
	updateAddress  string
	updateLng      string
	updateLat      string
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a place",
	Long: `Update patches a place in the remote table when one is configured and
mirrors the result into the local snapshot. Unset flags keep the current
values, including coordinates.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateName, "name", "", "new name")
	updateCmd.Flags().StringVar(&updateCity, "city", "", "new city")
	updateCmd.Flags().StringVar(&updateCategory, "category", "", "new category")
	updateCmd.Flags().StringVar(&updateAddress, "address", "", "new street address")
	updateCmd.Flags().StringVar(&updateLng, "lng", "", "new longitude")
	updateCmd.Flags().StringVar(&updateLat, "lat", "", "new latitude")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	fm, err := newClient()
	if err != nil {
		return err
	}
	fm.Load(cmd.Context())

	id := args[0]
	current, ok := fm.Find(id)
	if !ok {
		return fmt.Errorf("place %s not found", id)
	}

	patch := foodmap.UpdatePatch{
		Lng: current.Lng,
		Lat: current.Lat,
	}
	if cmd.Flags().Changed("name") {
		patch.Name = places.StringPtr(updateName)
	}
	if cmd.Flags().Changed("city") {
		patch.City = places.StringPtr(updateCity)
	}
	if cmd.Flags().Changed("category") {
		patch.Category = places.StringPtr(updateCategory)
	}
	if cmd.Flags().Changed("address") {
		patch.Address = places.StringPtr(updateAddress)
	}
	if cmd.Flags().Changed("lng") {
		if patch.Lng, err = parseCoordFlag("lng", updateLng); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("lat") {
		if patch.Lat, err = parseCoordFlag("lat", updateLat); err != nil {
			return err
		}
	}

	updated, err := fm.Update(cmd.Context(), id, patch)
	if err != nil {
		return fmt.Errorf("updating place: %w", err)
	}

	if jsonOutput() {
		return printJSON(updated)
	}
	fmt.Printf("Updated %s (%s)\n", updated.Name, updated.ID)
	return nil
}
