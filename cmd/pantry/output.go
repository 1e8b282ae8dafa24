package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/pantry/pkg/core"
)

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// printRecipeLines prints one line per recipe: id, name and category.
func printRecipeLines(w io.Writer, recipes []core.Recipe) {
	for _, r := range recipes {
		fmt.Fprintf(w, "%4d  %s  %s\n", r.ID, r.Name, renderMuted("["+r.Category+"]"))
	}
}

func printRecipe(w io.Writer, r core.Recipe) {
	fmt.Fprintln(w, renderHeading(r.Name))
	fmt.Fprintf(w, "ID:       %d\n", r.ID)
	fmt.Fprintf(w, "Category: %s\n", r.Category)
	fmt.Fprintf(w, "Added:    %s\n", r.CreatedAt)
	if r.UpdatedAt != "" {
		fmt.Fprintf(w, "Updated:  %s\n", r.UpdatedAt)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, renderHeading("Ingredients"))
	for _, item := range r.IngredientList() {
		fmt.Fprintf(w, "  - %s\n", item)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, renderHeading("Instructions"))
	for _, line := range strings.Split(r.Instructions, "\n") {
		fmt.Fprintf(w, "  %s\n", strings.TrimRight(line, "\r"))
	}
}

// parseRecipeID parses a command-line id argument.
func parseRecipeID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid recipe id %q", arg)
	}
	return id, nil
}
