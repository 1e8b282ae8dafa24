package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		st := store.Stats(cmd.Context())
		out := cmd.OutOrStdout()
		if statsJSON {
			return printJSON(out, st)
		}

		fmt.Fprintf(out, "Total Recipes: %d\n", st.Total)
		fmt.Fprintf(out, "Categories:    %d\n", st.Categories)

		if len(st.ByCategory) > 0 {
			names := make([]string, 0, len(st.ByCategory))
			for name := range st.ByCategory {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Fprintln(out)
			fmt.Fprintln(out, renderHeading("By category"))
			for _, name := range names {
				fmt.Fprintf(out, "  %-15s %d\n", name, st.ByCategory[name])
			}
		}

		if len(st.Recent) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderHeading("Recently added"))
			printRecipeLines(out, st.Recent)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output in JSON format")
}
