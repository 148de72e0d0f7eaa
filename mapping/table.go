/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapping

import (
	"fmt"
	"sort"
	"strings"

	"github.com/suparena/rifcsharvest/errors"
)

// Table maps a dotted path key such as "name.primary.given" to an output field name.
// A Table is read-only once built.
type Table struct {
	fields map[string]string
}

// NewTable builds a Table from an already flat map. The map is copied.
func NewTable(fields map[string]string) *Table {
	t := &Table{fields: make(map[string]string, len(fields))}
	for k, v := range fields {
		t.fields[k] = v
	}
	return t
}

// FromConfig flattens a nested configuration tree into a Table. Nested maps contribute their
// keys as path segments, so {"name": {"primary": {"given": "Given_Name"}}} and
// {"name.primary.given": "Given_Name"} describe the same entry. Leaves must be strings and a
// path may only be defined once.
func FromConfig(raw map[string]any) (*Table, error) {
	t := &Table{fields: make(map[string]string)}
	if err := t.flatten("", raw); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) flatten(prefix string, node map[string]any) error {
	for key, value := range node {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			if _, exists := t.fields[path]; exists {
				return errors.NewValidationError(path, "mapping key defined more than once")
			}
			t.fields[path] = v
		case map[string]any:
			if err := t.flatten(path, v); err != nil {
				return err
			}
		case map[any]any:
			converted := make(map[string]any, len(v))
			for k, inner := range v {
				converted[fmt.Sprint(k)] = inner
			}
			if err := t.flatten(path, converted); err != nil {
				return err
			}
		case nil:
			// an empty leaf maps nothing
		default:
			return errors.NewValidationError(path, fmt.Sprintf("unsupported mapping value of type %T", value))
		}
	}
	return nil
}

// Merge returns a Table holding the entries of all given tables. Defining the same path in
// two tables is an error.
func Merge(tables ...*Table) (*Table, error) {
	merged := &Table{fields: make(map[string]string)}
	for _, t := range tables {
		if t == nil {
			continue
		}
		for k, v := range t.fields {
			if _, exists := merged.fields[k]; exists {
				return nil, errors.NewValidationError(k, "mapping key defined more than once")
			}
			merged.fields[k] = v
		}
	}
	return merged, nil
}

// Lookup resolves path to an output field name. Paths that are unmapped or mapped to an
// empty name are reported as not found.
func (t *Table) Lookup(path string) (string, bool) {
	if t == nil {
		return "", false
	}
	field, ok := t.fields[path]
	if !ok || field == "" {
		return "", false
	}
	return field, true
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.fields)
}

// Keys returns all path keys in sorted order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.fields))
	for k := range t.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Path joins segments into a path key.
func Path(segments ...string) string {
	return strings.Join(segments, ".")
}
