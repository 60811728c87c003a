package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	foodmap "github.com/foodmap/foodmap"
	"github.com/foodmap/foodmap/internal/amap"
)

var (
	navigateMode string
	navigateUA   string
)

// navigateCmd represents the navigate command
var navigateCmd = &cobra.Command{
	Use:   "navigate <id>",
	Short: "Produce a navigation hand-off link for a place",
	Long: `Navigate builds a deep link that opens the native map application on
the destination, selecting the URI family from the user-agent string:
iosamap:// on iOS, androidamap:// on Android, and the universal web
link everywhere else.`,
	Args: cobra.ExactArgs(1),
	RunE: runNavigate,
}

func init() {
	rootCmd.AddCommand(navigateCmd)
	navigateCmd.Flags().StringVar(&navigateMode, "mode", "driving", "transport mode (driving|walking)")
	navigateCmd.Flags().StringVar(&navigateUA, "user-agent", "", "user-agent string to classify")
}

func runNavigate(cmd *cobra.Command, args []string) error {
	fm, err := newClient()
	if err != nil {
		return err
	}
	fm.Load(cmd.Context())

	place, ok := fm.Find(args[0])
	if !ok {
		return fmt.Errorf("place %s not found", args[0])
	}

	platform := amap.DetectPlatform(navigateUA)
	uri, err := amap.HandoffURI(place, foodmap.Mode(navigateMode), platform)
	if err != nil {
		return fmt.Errorf("building hand-off link: %w", err)
	}

	if jsonOutput() {
		return printJSON(map[string]string{
			"platform": platform.String(),
			"uri":      uri,
		})
	}
	fmt.Println(uri)
	return nil
}
