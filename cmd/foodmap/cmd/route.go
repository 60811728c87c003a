package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	foodmap "github.com/foodmap/foodmap"
)

var routeMode string

// routeCmd represents the route command
var routeCmd = &cobra.Command{
	Use:   "route <id>",
	Short: "Plan a route from the current position to a place",
	Long: `Route plans a driving or walking route to the place. The origin is the
current position resolved via IP location; the destination must have
coordinates.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)
	routeCmd.Flags().StringVar(&routeMode, "mode", "driving", "transport mode (driving|walking)")
}

func runRoute(cmd *cobra.Command, args []string) error {
	fm, err := newClient()
	if err != nil {
		return err
	}
	fm.Load(cmd.Context())

	result, err := fm.PlanRoute(cmd.Context(), args[0], foodmap.Mode(routeMode))
	if err != nil {
		return fmt.Errorf("planning route: %w", err)
	}

	path := result.Path()
	if jsonOutput() {
		return printJSON(map[string]any{
			"from": result.From,
			"to":   result.To,
			"mode": result.Mode,
			"path": path,
		})
	}

	fmt.Printf("Route (%s) from %.6f,%.6f to %.6f,%.6f\n",
		result.Mode, result.From.Lng, result.From.Lat, result.To.Lng, result.To.Lat)
	fmt.Printf("%d points\n", len(path))
	return nil
}
