package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var geocodeCity string

// geocodeCmd represents the geocode command
var geocodeCmd = &cobra.Command{
	Use:   "geocode <address>",
	Short: "Resolve an address to coordinates",
	Args:  cobra.ExactArgs(1),
	RunE:  runGeocode,
}

func init() {
	rootCmd.AddCommand(geocodeCmd)
	geocodeCmd.Flags().StringVar(&geocodeCity, "city", "", "city to scope the search to")
}

func runGeocode(cmd *cobra.Command, args []string) error {
	fm, err := newClient()
	if err != nil {
		return err
	}

	coords, err := fm.Geocode(cmd.Context(), args[0], geocodeCity)
	if err != nil {
		return fmt.Errorf("geocoding: %w", err)
	}

	if jsonOutput() {
		return printJSON(coords)
	}
	fmt.Printf("%.6f,%.6f\n", coords.Lng, coords.Lat)
	return nil
}
