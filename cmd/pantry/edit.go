package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/pantry/pkg/core"
)

var editDraft core.Draft

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing recipe",
	Long: `Edit replaces the fields given as flags and keeps the others.
The result is validated like a new recipe and updated_at is stamped.`,
	Args: cobra.ExactArgs(1),
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

		ctx := cmd.Context()
		current, err := store.Get(ctx, id)
		if err != nil {
			return err
		}

		draft := current.Draft()
		flags := cmd.Flags()
		if flags.Changed("name") {
			draft.Name = editDraft.Name
		}
		if flags.Changed("ingredients") {
			draft.Ingredients = editDraft.Ingredients
		}
		if flags.Changed("instructions") {
			draft.Instructions = editDraft.Instructions
		}
		if flags.Changed("category") {
			draft.Category = editDraft.Category
		}

		draft = draft.Normalize()
		if err := core.Validate(draft); err != nil {
			return err
		}

		if _, err := store.Update(ctx, id, draft); err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s Recipe updated successfully!\n", renderPass(iconPass))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	bindDraftFlags(editCmd, &editDraft)
}
