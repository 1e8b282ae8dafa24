package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/pantry/pkg/core"
	"gopkg.in/yaml.v3"
)

// Serializer defines how a data file of a given format is read and written.
type Serializer interface {
	DecodeRecipes(r io.Reader) ([]core.Recipe, error)
	EncodeRecipes(recipes []core.Recipe) ([]byte, error)
	DecodeCategories(r io.Reader) ([]string, error)
	EncodeCategories(categories []string) ([]byte, error)
}

// DefaultSerializers returns the serializers keyed by file extension.
func DefaultSerializers() map[string]Serializer {
	y := &YAMLSerializer{}
	return map[string]Serializer{
		".json": &JSONSerializer{Indent: "    "},
		".yaml": y,
		".yml":  y,
	}
}

// --- JSON Serializer ---

// JSONSerializer reads and writes pretty-printed JSON arrays.
type JSONSerializer struct {
	Indent string
}

func (s *JSONSerializer) DecodeRecipes(r io.Reader) ([]core.Recipe, error) {
	var recipes []core.Recipe
	if err := s.decode(r, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *JSONSerializer) EncodeRecipes(recipes []core.Recipe) ([]byte, error) {
	return s.encode(recipes)
}

func (s *JSONSerializer) DecodeCategories(r io.Reader) ([]string, error) {
	var categories []string
	if err := s.decode(r, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *JSONSerializer) EncodeCategories(categories []string) ([]byte, error) {
	return s.encode(categories)
}

func (s *JSONSerializer) decode(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func (s *JSONSerializer) encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", s.Indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- YAML Serializer ---

// YAMLSerializer reads and writes YAML sequences.
type YAMLSerializer struct{}

func (s *YAMLSerializer) DecodeRecipes(r io.Reader) ([]core.Recipe, error) {
	var recipes []core.Recipe
	if err := s.decode(r, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *YAMLSerializer) EncodeRecipes(recipes []core.Recipe) ([]byte, error) {
	return s.encode(recipes)
}

func (s *YAMLSerializer) DecodeCategories(r io.Reader) ([]string, error) {
	var categories []string
	if err := s.decode(r, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *YAMLSerializer) EncodeCategories(categories []string) ([]byte, error) {
	return s.encode(categories)
}

func (s *YAMLSerializer) decode(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid yaml: %w", err)
	}
	return nil
}

func (s *YAMLSerializer) encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
