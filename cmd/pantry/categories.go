package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the recipe categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		for _, c := range store.Categories(cmd.Context()) {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
