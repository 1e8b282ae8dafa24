package core

// Field limits, counted in bytes.
const (
	MaxNameLength         = 100
	MaxIngredientsLength  = 1000
	MaxInstructionsLength = 2000
)

// Validate checks a draft against the recipe form rules.
// It returns nil or a *ValidationError listing every problem in form order.
// Callers are expected to Normalize the draft first.
func Validate(d Draft) error {
	var problems []string

	if blank(d.Name) {
		problems = append(problems, "Recipe name is required.")
	}
	if blank(d.Ingredients) {
		problems = append(problems, "Ingredients are required.")
	}
	if blank(d.Instructions) {
		problems = append(problems, "Instructions are required.")
	}
	if blank(d.Category) {
		problems = append(problems, "Category is required.")
	}

	if len(d.Name) > MaxNameLength {
		problems = append(problems, "Recipe name must be less than 100 characters.")
	}
	if len(d.Ingredients) > MaxIngredientsLength {
		problems = append(problems, "Ingredients must be less than 1000 characters.")
	}
	if len(d.Instructions) > MaxInstructionsLength {
		problems = append(problems, "Instructions must be less than 2000 characters.")
	}

	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

// blank reports whether a submitted field counts as missing. A lone "0" is
// treated as empty, matching the form's historical behavior.
func blank(s string) bool {
	return s == "" || s == "0"
}
