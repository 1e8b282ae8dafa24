// Package export renders a recipe collection into portable formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/pantry/pkg/core"
)

// Format names an export format.
type Format string

const (
	CSV  Format = "csv"
	TXT  Format = "txt"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for unknown format names.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats lists every supported format.
func Formats() []Format {
	return []Format{CSV, TXT, JSON, YAML}
}

// ParseFormat resolves a format name, ignoring case. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case CSV, TXT, JSON, YAML:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// ContentType returns the MIME type used when serving the format over HTTP.
func (f Format) ContentType() string {
	switch f {
	case CSV:
		return "text/csv; charset=utf-8"
	case JSON:
		return "application/json"
	case YAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Filename returns the suggested download name.
func (f Format) Filename() string {
	return "recipes." + string(f)
}

// Write renders recipes to w in the given format.
func Write(w io.Writer, format Format, recipes []core.Recipe) error {
	if recipes == nil {
		recipes = []core.Recipe{}
	}
	switch format {
	case CSV:
		return writeCSV(w, recipes)
	case TXT:
		return writeText(w, recipes)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		return enc.Encode(recipes)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(recipes); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func writeCSV(w io.Writer, recipes []core.Recipe) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Category", "Ingredients", "Instructions"}); err != nil {
		return err
	}
	for _, r := range recipes {
		if err := cw.Write([]string{r.Name, r.Category, r.Ingredients, r.Instructions}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeText(w io.Writer, recipes []core.Recipe) error {
	var b strings.Builder
	b.WriteString("Recipe Collection Export\n")
	b.WriteString("========================\n")
	fmt.Fprintf(&b, "%d recipe(s)\n", len(recipes))

	for _, r := range recipes {
		fmt.Fprintf(&b, "\n#%d %s [%s]\n", r.ID, r.Name, r.Category)
		if r.CreatedAt != "" {
			fmt.Fprintf(&b, "Created: %s\n", r.CreatedAt)
		}
		if r.UpdatedAt != "" {
			fmt.Fprintf(&b, "Updated: %s\n", r.UpdatedAt)
		}
		b.WriteString("Ingredients:\n")
		for _, item := range r.IngredientList() {
			fmt.Fprintf(&b, "  - %s\n", item)
		}
		b.WriteString("Instructions:\n")
		for _, line := range strings.Split(strings.TrimSpace(r.Instructions), "\n") {
			fmt.Fprintf(&b, "  %s\n", strings.TrimRight(line, "\r"))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
