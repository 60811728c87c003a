package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a place",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	fm, err := newClient()
	if err != nil {
		return err
	}
	fm.Load(cmd.Context())

	id := args[0]
	if _, ok := fm.Find(id); !ok {
		return fmt.Errorf("place %s not found", id)
	}
	if err := fm.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("deleting place: %w", err)
	}

	fmt.Printf("Deleted %s\n", id)
	return nil
}
