package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/pantry/pkg/core"
)

var (
	listJSON     bool
	listCategory string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		var recipes []core.Recipe
		if listCategory != "" {
			recipes = store.ByCategory(cmd.Context(), listCategory)
		} else {
			recipes = store.Load(cmd.Context())
		}

		out := cmd.OutOrStdout()
		if listJSON {
			return printJSON(out, recipes)
		}

		if len(recipes) == 0 {
			fmt.Fprintln(out, "No recipes found. Add your first recipe!")
			return nil
		}
		printRecipeLines(out, recipes)
		fmt.Fprintf(out, "\nTotal recipes: %d\n", len(recipes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only list recipes of this category (exact match)")
}
