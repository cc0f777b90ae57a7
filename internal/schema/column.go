// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import "fmt"

// Reserved property keys interpreted by the schema converter rather than
// passed through as opaque metadata.
const (
	// PropertyDomain holds {min, max} numeric bounds for the column.
	PropertyDomain = "domain"
	// PropertyValueCount holds {min, max} element-count bounds for
	// list columns.
	PropertyValueCount = "value_count"
)

// ColumnSchema describes a single column: its name, semantic tags,
// logical dtype, free-form properties, and list/raggedness flags.
//
// ColumnSchema values are immutable snapshots by convention: construct
// them once and derive variants through the With* helpers, which return
// copies.
type ColumnSchema struct {
	Name       string
	Tags       []Tag
	DType      DType
	Properties map[string]any
	IsList     bool
	IsRagged   bool
}

// NewColumnSchema constructs a ColumnSchema and enforces the model
// invariant that a ragged column is always a list column.
func NewColumnSchema(name string, dtype DType, opts ...ColumnOption) (ColumnSchema, error) {
	col := ColumnSchema{
		Name:       name,
		DType:      dtype,
		Properties: make(map[string]any),
	}
	for _, opt := range opts {
		opt(&col)
	}
	if col.IsRagged && !col.IsList {
		return ColumnSchema{}, fmt.Errorf("column %q: a ragged column must also be a list column", name)
	}
	return col, nil
}

// ColumnOption customizes a ColumnSchema during construction.
type ColumnOption func(*ColumnSchema)

// WithTags appends tags to the column.
func WithTags(tags ...Tag) ColumnOption {
	return func(c *ColumnSchema) { c.Tags = append(c.Tags, tags...) }
}

// WithProperties merges the given properties into the column.
func WithProperties(props map[string]any) ColumnOption {
	return func(c *ColumnSchema) {
		for k, v := range props {
			c.Properties[k] = v
		}
	}
}

// WithList marks the column as list-valued.
func WithList() ColumnOption {
	return func(c *ColumnSchema) { c.IsList = true }
}

// WithRagged marks the column as a ragged list.
func WithRagged() ColumnOption {
	return func(c *ColumnSchema) {
		c.IsList = true
		c.IsRagged = true
	}
}

// HasTag reports whether the column carries the given tag. Well-known
// and free-form tags compare by string value, so an enum-valued tag and
// its raw string form are equivalent.
func (c ColumnSchema) HasTag(tag Tag) bool {
	for _, t := range c.Tags {
		if string(t) == string(tag) {
			return true
		}
	}
	return false
}

// Property returns the value stored under key, or nil if absent.
func (c ColumnSchema) Property(key string) any {
	return c.Properties[key]
}

// WithDomain returns a copy of the column with {min, max} bounds stored
// under the reserved "domain" property.
func (c ColumnSchema) WithDomain(min, max float64) ColumnSchema {
	out := c.clone()
	out.Properties[PropertyDomain] = map[string]any{"min": min, "max": max}
	return out
}

// WithValueCount returns a copy of the column with {min, max} stored
// under the reserved "value_count" property.
func (c ColumnSchema) WithValueCount(min, max int64) ColumnSchema {
	out := c.clone()
	out.Properties[PropertyValueCount] = map[string]any{"min": min, "max": max}
	return out
}

func (c ColumnSchema) clone() ColumnSchema {
	out := c
	out.Tags = append([]Tag(nil), c.Tags...)
	out.Properties = make(map[string]any, len(c.Properties))
	for k, v := range c.Properties {
		out.Properties[k] = v
	}
	return out
}
