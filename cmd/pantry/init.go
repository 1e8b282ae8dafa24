package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/pantry"
	"github.com/aretw0/pantry/internal/platform"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directory with empty recipes and default categories",
	Long: `Initialize creates the data directory and seeds recipes.json with an empty
list and categories.json with the default categories. Existing files are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings.ReadOnly {
			return fmt.Errorf("cannot initialize in read-only mode")
		}

		repo, err := pantry.Init(settings.DataDir, append(storeOptions(), pantry.WithAutoInit(true))...)
		if err != nil {
			return fmt.Errorf("initialize %s: %w", settings.DataDir, err)
		}
		if c, ok := repo.(platform.Closer); ok {
			defer c.Close()
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s Initialized recipe store in %s\n", renderPass(iconPass), settings.DataDir)
		if fb, ok := repo.(interface{ DataFiles() []string }); ok {
			for _, f := range fb.DataFiles() {
				fmt.Fprintf(out, "   %s%s\n", treeLast, renderMuted(f))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
