package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
)

var exportFile string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the place directory to a spreadsheet",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFile, "file", "places.xlsx", "output file")
}

func runExport(cmd *cobra.Command, args []string) error {
	fm, err := newClient()
	if err != nil {
		return err
	}
	fm.Load(cmd.Context())
	items := fm.Places()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Places"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := []any{"ID", "Name", "City", "Category", "Address", "Lng", "Lat", "Updated At"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, p := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		row := []any{p.ID, p.Name, p.City, p.Category, p.Address, coordCell(p.Lng), coordCell(p.Lat), p.UpdatedAt}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(exportFile); err != nil {
		return fmt.Errorf("saving %s: %w", exportFile, err)
	}
	fmt.Printf("Exported %d places to %s\n", len(items), exportFile)
	return nil
}

// coordCell renders an optional coordinate as a cell value, blank when unset.
func coordCell(f *float64) any {
	if f == nil {
		return ""
	}
	return *f
}
