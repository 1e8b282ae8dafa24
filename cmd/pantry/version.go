package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/pantry"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pantry",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pantry version %s\n", strings.TrimSpace(pantry.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
