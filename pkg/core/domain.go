// Package core holds the recipe domain: the Recipe record, the Repository port
// and the Store that implements every load/save/query operation on top of it.
package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TimestampLayout is the layout used for created_at and updated_at.
const TimestampLayout = "2006-01-02 15:04:05"

// DefaultCategories is the category list used when no category file exists.
var DefaultCategories = []string{
	"Appetizer",
	"Main Course",
	"Dessert",
	"Beverage",
	"Snack",
}

// Recipe is the central entity of the domain.
// ID is unique inside a store and never reused after deletion.
type Recipe struct {
	ID           int    `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Ingredients  string `json:"ingredients" yaml:"ingredients"`
	Instructions string `json:"instructions" yaml:"instructions"`
	Category     string `json:"category" yaml:"category"`
	CreatedAt    string `json:"created_at" yaml:"created_at"`
	UpdatedAt    string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`

	// Extra holds JSON keys this version does not know about, written back on save.
	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// Draft carries the four mutable fields of a recipe.
// It is the input of Store.Add and Store.Update.
type Draft struct {
	Name         string
	Ingredients  string
	Instructions string
	Category     string
}

// Normalize returns a copy of the draft with surrounding whitespace removed.
func (d Draft) Normalize() Draft {
	return Draft{
		Name:         strings.TrimSpace(d.Name),
		Ingredients:  strings.TrimSpace(d.Ingredients),
		Instructions: strings.TrimSpace(d.Instructions),
		Category:     strings.TrimSpace(d.Category),
	}
}

// Draft returns the mutable fields of the recipe.
func (r Recipe) Draft() Draft {
	return Draft{
		Name:         r.Name,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Category:     r.Category,
	}
}

// IngredientList splits the free-text ingredients into trimmed, non-empty lines.
func (r Recipe) IngredientList() []string {
	var items []string
	for _, line := range strings.Split(r.Ingredients, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}
	return items
}

// EventType represents the type of change observed on the data files.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents an external change of a data file.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Path)
}
