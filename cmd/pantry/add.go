package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/pantry/pkg/core"
)

var addDraft core.Draft

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new recipe",
	Long: `Add validates and stores a new recipe. All four fields are required.

Example:
  pantry add --name "Pasta" --category "Main Course" \
    --ingredients $'noodles\nsauce' --instructions $'boil\nmix'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := addDraft.Normalize()
		if err := core.Validate(draft); err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore(store)

		recipe, err := store.Add(cmd.Context(), draft)
		if err != nil {
			return fmt.Errorf("add recipe: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s Recipe added successfully! (id %d)\n", renderPass(iconPass), recipe.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	bindDraftFlags(addCmd, &addDraft)
}

// bindDraftFlags registers --name, --ingredients, --instructions and --category.
func bindDraftFlags(cmd *cobra.Command, d *core.Draft) {
	cmd.Flags().StringVar(&d.Name, "name", "", "recipe name (max 100 characters)")
	cmd.Flags().StringVar(&d.Ingredients, "ingredients", "", "ingredients, one per line (max 1000 characters)")
	cmd.Flags().StringVar(&d.Instructions, "instructions", "", "step-by-step instructions (max 2000 characters)")
	cmd.Flags().StringVar(&d.Category, "category", "", "recipe category")
}
