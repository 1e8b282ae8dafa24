package main

import (
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a single recipe",
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

		recipe, err := store.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		if showJSON {
			return printJSON(cmd.OutOrStdout(), recipe)
		}
		printRecipe(cmd.OutOrStdout(), recipe)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
