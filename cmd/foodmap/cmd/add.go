package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/foodmap/foodmap/pkg/places"
)

var (
	addCity     string
	addCategory string
	addAddress  string
	addLng      string
	addLat      string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a place",
	Long: `Add creates a place in the remote table when one is configured and
mirrors it into the local snapshot. Coordinates are optional; a place
without them can be relocated later via geocoding.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addCity, "city", "", "city the place is in")
	addCmd.Flags().StringVar(&addCategory, "category", "", "category label")
	addCmd.Flags().StringVar(&addAddress, "address", "", "street address")
	addCmd.Flags().StringVar(&addLng, "lng", "", "longitude")
	addCmd.Flags().StringVar(&addLat, "lat", "", "latitude")
}

func runAdd(cmd *cobra.Command, args []string) error {
	fm, err := newClient()
	if err != nil {
		return err
	}
	fm.Load(cmd.Context())

	place := places.Place{
		Name:     args[0],
		City:     addCity,
		Category: addCategory,
		Address:  addAddress,
	}
	if place.Lng, err = parseCoordFlag("lng", addLng); err != nil {
		return err
	}
	if place.Lat, err = parseCoordFlag("lat", addLat); err != nil {
		return err
	}

	created, err := fm.Create(cmd.Context(), place)
	if err != nil {
		return fmt.Errorf("creating place: %w", err)
	}

	if jsonOutput() {
		return printJSON(created)
	}
	fmt.Printf("Added %s (%s)\n", created.Name, created.ID)
	return nil
}

// parseCoordFlag parses an optional coordinate flag value.
func parseCoordFlag(name, value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return places.Float64(f), nil
}
