package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	foodmap "github.com/foodmap/foodmap"
	"github.com/foodmap/foodmap/pkg/places"
)

var (
	listCity        string
	listCategory    string
	listQuery       string
	listForceRemote bool
	listFacets      bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List places from the reconciled directory",
	Long: `List loads the place directory and prints it.

By default a non-empty local snapshot is used without a network round
trip; --remote forces a fresh fetch from the configured Supabase table,
falling back to the embedded dataset when the remote store is
unreachable or unconfigured.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listCity, "city", "", "filter by exact city")
	listCmd.Flags().StringVar(&listCategory, "category", "", "filter by exact category")
	listCmd.Flags().StringVar(&listQuery, "query", "", "case-insensitive substring search")
	listCmd.Flags().BoolVar(&listForceRemote, "remote", false, "skip the local snapshot and query the remote table")
	listCmd.Flags().BoolVar(&listFacets, "facets", false, "print city and category facet counts")
}

func runList(cmd *cobra.Command, args []string) error {
	fm, err := newClient()
	if err != nil {
		return err
	}

	var loadOpts []foodmap.LoadOption
	if listForceRemote {
		loadOpts = append(loadOpts, foodmap.ForceRemote())
	}
	fm.Load(cmd.Context(), loadOpts...)

	items := fm.Filter(places.Selection{
		City:     listCity,
		Category: listCategory,
		Query:    listQuery,
	})

	if listFacets {
		return printFacets(fm.Places(), listCity)
	}

	if jsonOutput() {
		return printJSON(items)
	}

	if len(items) == 0 {
		fmt.Println("No places found")
		return nil
	}

	fmt.Printf("Found %d places (%s):\n\n", len(items), fm.Provenance())
	for _, p := range items {
		fmt.Printf("• %s  %s · %s\n", p.ID, p.Name, p.City)
		if p.Category != "" || p.Address != "" {
			fmt.Printf("  %s %s\n", p.Category, p.Address)
		}
		if coords, ok := p.Coordinates(); ok {
			fmt.Printf("  %.6f,%.6f\n", coords.Lng, coords.Lat)
		}
	}
	return nil
}

func printFacets(items []places.Place, city string) error {
	cities := places.CityFacets(items)
	categories := places.CategoryFacets(items, city)

	if jsonOutput() {
		return printJSON(map[string][]places.Facet{
			"cities":     cities,
			"categories": categories,
		})
	}

	fmt.Println("Cities:")
	for _, f := range cities {
		fmt.Printf("  %s (%d)\n", f.Label, f.Count)
	}
	fmt.Println("Categories:")
	for _, f := range categories {
		fmt.Printf("  %s (%d)\n", f.Label, f.Count)
	}
	return nil
}
