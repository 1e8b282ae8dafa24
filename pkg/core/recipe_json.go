package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// recipeFields has the fields of Recipe without its JSON methods.
type recipeFields Recipe

var recipeKeys = []string{"id", "name", "ingredients", "instructions", "category", "created_at", "updated_at"}

// UnmarshalJSON decodes the known fields and keeps any other key in Extra.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var fields recipeFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for key := range all {
		if slices.ContainsFunc(recipeKeys, func(k string) bool { return strings.EqualFold(k, key) }) {
			delete(all, key)
		}
	}
	fields.Extra = nil
	if len(all) > 0 {
		fields.Extra = all
	}
	*r = Recipe(fields)
	return nil
}

// MarshalJSON encodes the known fields followed by the keys in Extra, sorted.
func (r Recipe) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(recipeFields(r)); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	if len(r.Extra) == 0 {
		return out, nil
	}

	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out = out[:len(out)-1]
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		if !json.Valid(r.Extra[k]) {
			return nil, fmt.Errorf("invalid value for %s", name)
		}
		out = append(out, ',')
		out = append(out, name...)
		out = append(out, ':')
		out = append(out, r.Extra[k]...)
	}
	return append(out, '}'), nil
}
