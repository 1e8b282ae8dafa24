package core

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := Draft{
		Name:         "Pancakes",
		Ingredients:  "flour\nmilk\neggs",
		Instructions: "mix\nfry",
		Category:     "Dessert",
	}

	t.Run("Valid Draft", func(t *testing.T) {
		if err := Validate(valid); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("All Fields Missing", func(t *testing.T) {
		err := Validate(Draft{})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected *ValidationError, got %T", err)
		}
		want := []string{
			"Recipe name is required.",
			"Ingredients are required.",
			"Instructions are required.",
			"Category is required.",
		}
		if strings.Join(vErr.Problems, "|") != strings.Join(want, "|") {
			t.Errorf("unexpected problems: %q", vErr.Problems)
		}
	})

	t.Run("Zero Counts As Missing", func(t *testing.T) {
		err := Validate(Draft{Name: "0", Ingredients: "0", Instructions: "0", Category: "0"})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected *ValidationError, got %T", err)
		}
		if len(vErr.Problems) != 4 {
			t.Errorf("expected every field to be missing, got %q", vErr.Problems)
		}

		d := valid
		d.Name = "00"
		if err := Validate(d); err != nil {
			t.Errorf("expected %q to be accepted, got %v", d.Name, err)
		}
	})

	t.Run("Length Limits", func(t *testing.T) {
		d := valid
		d.Name = strings.Repeat("n", MaxNameLength+1)
		d.Ingredients = strings.Repeat("i", MaxIngredientsLength+1)
		d.Instructions = strings.Repeat("s", MaxInstructionsLength+1)

		var vErr *ValidationError
		if !errors.As(Validate(d), &vErr) {
			t.Fatal("expected validation error")
		}
		if len(vErr.Problems) != 3 {
			t.Fatalf("expected 3 problems, got %q", vErr.Problems)
		}
		if vErr.Problems[0] != "Recipe name must be less than 100 characters." {
			t.Errorf("unexpected first problem: %q", vErr.Problems[0])
		}
	})

	t.Run("Exact Limits Are Allowed", func(t *testing.T) {
		d := valid
		d.Name = strings.Repeat("n", MaxNameLength)
		d.Ingredients = strings.Repeat("i", MaxIngredientsLength)
		d.Instructions = strings.Repeat("s", MaxInstructionsLength)
		if err := Validate(d); err != nil {
			t.Errorf("expected no error at the limit, got %v", err)
		}
	})
}

func TestDraft_Normalize(t *testing.T) {
	d := Draft{Name: "  Soup \n", Ingredients: "\twater\n", Instructions: " boil ", Category: " Appetizer"}.Normalize()
	if d.Name != "Soup" || d.Ingredients != "water" || d.Instructions != "boil" || d.Category != "Appetizer" {
		t.Errorf("unexpected normalized draft: %+v", d)
	}

	if err := Validate(Draft{Name: "   "}.Normalize()); err == nil {
		t.Error("whitespace-only name should fail validation after Normalize")
	}
}

func TestRecipe_IngredientList(t *testing.T) {
	r := Recipe{Ingredients: "2 cups flour\n\n 1 cup sugar \r\n"}
	got := r.IngredientList()
	if len(got) != 2 || got[0] != "2 cups flour" || got[1] != "1 cup sugar" {
		t.Errorf("unexpected list: %q", got)
	}
}
