// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

// Schema is a keyed collection of column schemas. Columns are addressed
// by name; insertion order is remembered so that iteration is
// deterministic, but it carries no meaning for correctness.
type Schema struct {
	names   []string
	columns map[string]ColumnSchema
}

// New creates an empty Schema.
func New() *Schema {
	return &Schema{columns: make(map[string]ColumnSchema)}
}

// AddColumn inserts or replaces the column under its name. A duplicate
// name overwrites the earlier entry without changing its position.
func (s *Schema) AddColumn(col ColumnSchema) {
	if _, exists := s.columns[col.Name]; !exists {
		s.names = append(s.names, col.Name)
	}
	s.columns[col.Name] = col
}

// Column returns the column schema stored under name.
func (s *Schema) Column(name string) (ColumnSchema, bool) {
	col, ok := s.columns[name]
	return col, ok
}

// ColumnNames returns the column names in insertion order.
func (s *Schema) ColumnNames() []string {
	return append([]string(nil), s.names...)
}

// Columns returns the column schemas in insertion order.
func (s *Schema) Columns() []ColumnSchema {
	cols := make([]ColumnSchema, 0, len(s.names))
	for _, name := range s.names {
		cols = append(cols, s.columns[name])
	}
	return cols
}

// RemoveColumn deletes the column under name, reporting whether it
// existed.
func (s *Schema) RemoveColumn(name string) bool {
	if _, ok := s.columns[name]; !ok {
		return false
	}
	delete(s.columns, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.names) }
