package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search recipes by name, ingredients or category",
	Long: `Search returns the recipes whose name, ingredients or category contain the
term, ignoring case. Several arguments are joined with spaces.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		term := strings.TrimSpace(strings.Join(args, " "))
		recipes := store.Search(cmd.Context(), term)

		out := cmd.OutOrStdout()
		if searchJSON {
			return printJSON(out, recipes)
		}

		printRecipeLines(out, recipes)
		if len(recipes) > 0 {
			fmt.Fprintln(out)
		}
		if term == "" {
			fmt.Fprintf(out, "Total recipes: %d\n", len(recipes))
		} else {
			fmt.Fprintf(out, "Showing %d recipe(s) matching '%s'\n", len(recipes), term)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
}
