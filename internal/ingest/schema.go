package ingest

import (
	"fmt"
	"strings"
)

// Kind is the type a CSV column is parsed into.
type Kind int

const (
	KindNumeric Kind = iota
	KindCategorical
)

// Field maps one semantic field onto a CSV column header.
type Field struct {
	// Name is the field name the analyses read.
	Name string

	// Column is the exact header expected in the source file.
	Column string

	Kind     Kind
	Required bool
}

// Schema declares the columns of one dataset. Files are matched by declared
// header, never by column position.
type Schema struct {
	Dataset string
	Fields  []Field
}

// binding ties a schema field to its column index in a concrete file.
type binding struct {
	field Field
	index int
}

// Resolve matches the schema against a header row. Every required column
// must be present; optional columns bind only when found. Column order in
// the file is irrelevant.
func (s Schema) Resolve(header []string) ([]binding, error) {
	byName := make(map[string]int, len(header))
	for i, col := range header {
		byName[cleanCell(col)] = i
	}

	var bindings []binding
	var missing []string
	for _, f := range s.Fields {
		idx, ok := byName[f.Column]
		if !ok {
			if f.Required {
				missing = append(missing, f.Column)
			}
			continue
		}
		bindings = append(bindings, binding{field: f, index: idx})
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: missing required columns %v", s.Dataset, missing)
	}
	return bindings, nil
}

// cleanCell strips the UTF-8 BOM, stray quotes and surrounding whitespace
// that Korean open-data exports tend to carry.
func cleanCell(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}
