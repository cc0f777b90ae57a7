// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package convert maps between the internal column-schema model and the
// wire schema, column-by-column. Both directions are pure functions:
// they read their input, allocate a fresh output, and never touch I/O,
// so they are safe to call concurrently on independent schemas.
package convert

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dacolabs/schemaio/internal/schema"
	"github.com/dacolabs/schemaio/internal/tfmd"
)

// FromSchema converts the internal schema to its wire form. Columns are
// emitted in the schema's insertion order. A column whose dtype cannot
// be classified aborts the conversion with an UnsupportedTypeError.
func FromSchema(s *schema.Schema) (*tfmd.Schema, error) {
	out := &tfmd.Schema{}
	for _, col := range s.Columns() {
		f, err := feature(col)
		if err != nil {
			return nil, err
		}
		out.Feature = append(out.Feature, f)
	}
	return out, nil
}

// ToSchema converts a wire schema back into the internal model. Features
// are keyed by name; a duplicate name overwrites the earlier entry. A
// feature with an ambiguous extension payload aborts the conversion with
// a MalformedExtensionError.
func ToSchema(ws *tfmd.Schema) (*schema.Schema, error) {
	out := schema.New()
	for _, f := range ws.Feature {
		col, err := column(f)
		if err != nil {
			return nil, err
		}
		out.AddColumn(col)
	}
	return out, nil
}

func feature(col schema.ColumnSchema) (*tfmd.Feature, error) {
	f := &tfmd.Feature{Name: col.Name}

	if err := setFeatureDomain(f, col); err != nil {
		return nil, err
	}

	if col.IsList {
		setFeatureShape(f, col)
	}

	extra, err := packExtraMetadata(col)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", col.Name, err)
	}
	f.Annotation = &tfmd.Annotation{
		Tag:           tagStrings(col),
		ExtraMetadata: []*tfmd.Any{extra},
	}

	return f, nil
}

// setFeatureDomain classifies the column's dtype and attaches the wire
// type plus the matching domain block when the column carries "domain"
// bounds. Recognized non-numeric dtypes get no wire type at all.
func setFeatureDomain(f *tfmd.Feature, col schema.ColumnSchema) error {
	switch col.DType.Family() {
	case schema.IntFamily:
		f.Type = tfmd.FeatureTypeInt
		if min, max, ok := domainBounds(col); ok {
			f.IntDomain = &tfmd.IntDomain{
				Name:          col.Name,
				Min:           int64(min),
				Max:           int64(max),
				IsCategorical: col.HasTag(schema.TagCategorical),
			}
		}
	case schema.FloatFamily:
		f.Type = tfmd.FeatureTypeFloat
		if min, max, ok := domainBounds(col); ok {
			f.FloatDomain = &tfmd.FloatDomain{
				Name: col.Name,
				Min:  float32(min),
				Max:  float32(max),
			}
		}
	case schema.NoFamily:
		// No typed wire domain; the feature stays untyped.
	default:
		return &UnsupportedTypeError{Column: col.Name, DType: col.DType}
	}
	return nil
}

// setFeatureShape encodes a list column's length bounds: an exact
// nonzero length becomes a fixed shape, a proper range becomes a value
// count, and anything else becomes the {0, 0} unknown sentinel.
func setFeatureShape(f *tfmd.Feature, col schema.ColumnSchema) {
	min, max := valueCountBounds(col)
	switch {
	case min != 0 && max != 0 && min == max:
		f.Shape = &tfmd.FixedShape{Dim: []*tfmd.FixedShapeDim{{Size: min}}}
	case min != 0 && max != 0 && min < max:
		f.ValueCount = &tfmd.ValueCount{Min: min, Max: max}
	default:
		f.ValueCount = &tfmd.ValueCount{Min: 0, Max: 0}
	}
}

func tagStrings(col schema.ColumnSchema) []string {
	tags := make([]string, len(col.Tags))
	for i, t := range col.Tags {
		tags[i] = string(t)
	}
	return tags
}

// packExtraMetadata bundles every property except the reserved "domain"
// key, along with the list flags, into a struct payload wrapped in a
// typed extension entry.
func packExtraMetadata(col schema.ColumnSchema) (*tfmd.Any, error) {
	props := make(map[string]any, len(col.Properties)+2)
	for k, v := range col.Properties {
		if k == schema.PropertyDomain {
			continue
		}
		props[k] = v
	}
	props["is_list"] = col.IsList
	props["is_ragged"] = col.IsRagged

	st, err := structpb.NewStruct(props)
	if err != nil {
		return nil, fmt.Errorf("packing properties: %w", err)
	}
	packed, err := anypb.New(st)
	if err != nil {
		return nil, fmt.Errorf("packing properties: %w", err)
	}
	return &tfmd.Any{TypeURL: packed.TypeUrl, Value: packed.Value}, nil
}

func column(f *tfmd.Feature) (schema.ColumnSchema, error) {
	props, err := unpackProperties(f)
	if err != nil {
		return schema.ColumnSchema{}, err
	}

	if min, max, ok := featureDomain(f); ok {
		props[schema.PropertyDomain] = map[string]any{"min": min, "max": max}
	}

	isList := popBool(props, "is_list")
	isRagged := popBool(props, "is_ragged")
	if isRagged && !isList {
		return schema.ColumnSchema{}, fmt.Errorf("feature %q: is_ragged requires is_list", f.Name)
	}

	var opts []schema.ColumnOption
	if len(props) > 0 {
		opts = append(opts, schema.WithProperties(props))
	}
	if isList {
		opts = append(opts, schema.WithList())
	}
	if isRagged {
		opts = append(opts, schema.WithRagged())
	}
	if f.Annotation != nil {
		tags := make([]schema.Tag, len(f.Annotation.Tag))
		for i, t := range f.Annotation.Tag {
			tags[i] = schema.Tag(t)
		}
		opts = append(opts, schema.WithTags(tags...))
	}

	return schema.NewColumnSchema(f.Name, columnDType(f.Type), opts...)
}

// columnDType restores a generic logical type from the wire type. The
// original bit-width is not preserved.
func columnDType(t tfmd.FeatureType) schema.DType {
	switch t {
	case tfmd.FeatureTypeInt:
		return schema.Int64
	case tfmd.FeatureTypeFloat:
		return schema.Float64
	default:
		return schema.DTypeUnknown
	}
}

// unpackProperties reads the feature's extension slot. The canonical
// form is a single entry typed as a well-known struct payload; a single
// untyped entry is accepted for compatibility and its raw value is
// parsed as the property mapping directly. More than one untyped entry
// is ambiguous and rejected.
func unpackProperties(f *tfmd.Feature) (map[string]any, error) {
	if f.Annotation == nil || len(f.Annotation.ExtraMetadata) == 0 {
		return map[string]any{}, nil
	}
	if len(f.Annotation.ExtraMetadata) > 1 {
		return nil, &MalformedExtensionError{Feature: f.Name, Entries: len(f.Annotation.ExtraMetadata)}
	}

	entry := f.Annotation.ExtraMetadata[0]
	st := &structpb.Struct{}
	if err := proto.Unmarshal(entry.Value, st); err != nil {
		return nil, fmt.Errorf("%s: decoding extra_metadata: %w", f.Name, err)
	}
	return st.AsMap(), nil
}

// featureDomain reconstructs {min, max} bounds from the domain block
// matching the feature's wire type.
func featureDomain(f *tfmd.Feature) (min, max float64, ok bool) {
	switch f.Type {
	case tfmd.FeatureTypeInt:
		if f.IntDomain != nil {
			return float64(f.IntDomain.Min), float64(f.IntDomain.Max), true
		}
	case tfmd.FeatureTypeFloat:
		if f.FloatDomain != nil {
			return float64(f.FloatDomain.Min), float64(f.FloatDomain.Max), true
		}
	}
	return 0, 0, false
}

// domainBounds reads the reserved "domain" property. Missing bounds
// default to zero; a missing or malformed property means no domain.
func domainBounds(col schema.ColumnSchema) (min, max float64, ok bool) {
	domain, isMap := col.Properties[schema.PropertyDomain].(map[string]any)
	if !isMap {
		return 0, 0, false
	}
	min, _ = asFloat64(domain["min"])
	max, _ = asFloat64(domain["max"])
	return min, max, true
}

// valueCountBounds reads min/max from the reserved "value_count"
// property. Absent bounds read as zero.
func valueCountBounds(col schema.ColumnSchema) (min, max int64) {
	vc, isMap := col.Properties[schema.PropertyValueCount].(map[string]any)
	if !isMap {
		return 0, 0
	}
	minF, _ := asFloat64(vc["min"])
	maxF, _ := asFloat64(vc["max"])
	return int64(minF), int64(maxF)
}

func popBool(props map[string]any, key string) bool {
	v, ok := props[key]
	if !ok {
		return false
	}
	delete(props, key)
	b, _ := v.(bool)
	return b
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
