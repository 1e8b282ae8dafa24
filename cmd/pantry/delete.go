package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a recipe",
	Long:  `Delete permanently removes a recipe. Its id is never reused.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRecipeID(args[0])
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		if err := store.Delete(cmd.Context(), id); err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s Recipe deleted successfully!\n", renderPass(iconPass))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
