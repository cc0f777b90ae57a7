// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dacolabs/schemaio/internal/schema"
	"github.com/dacolabs/schemaio/internal/tfmd"
)

func mustColumn(t *testing.T, name string, dtype schema.DType, opts ...schema.ColumnOption) schema.ColumnSchema {
	t.Helper()
	col, err := schema.NewColumnSchema(name, dtype, opts...)
	require.NoError(t, err)
	return col
}

func TestFromSchema_IntColumnWithDomain(t *testing.T) {
	col := mustColumn(t, "item_id", schema.Int32, schema.WithTags(schema.TagCategorical, schema.TagItemID))
	col = col.WithDomain(0, 9)

	s := schema.New()
	s.AddColumn(col)

	wire, err := FromSchema(s)
	require.NoError(t, err)
	require.Len(t, wire.Feature, 1)

	f := wire.Feature[0]
	assert.Equal(t, "item_id", f.Name)
	assert.Equal(t, tfmd.FeatureTypeInt, f.Type)
	require.NotNil(t, f.IntDomain)
	assert.Equal(t, "item_id", f.IntDomain.Name)
	assert.Equal(t, int64(0), f.IntDomain.Min)
	assert.Equal(t, int64(9), f.IntDomain.Max)
	assert.True(t, f.IntDomain.IsCategorical)
	assert.Nil(t, f.FloatDomain)
	assert.Equal(t, []string{"categorical", "item_id"}, f.Annotation.Tag)
}

func TestFromSchema_CategoricalFlag(t *testing.T) {
	tests := []struct {
		name            string
		tags            []schema.Tag
		wantCategorical bool
	}{
		{"enum tag", []schema.Tag{schema.TagCategorical}, true},
		{"raw string tag", []schema.Tag{schema.Tag("categorical")}, true},
		{"no categorical tag", []schema.Tag{schema.TagContinuous}, false},
		{"no tags", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := mustColumn(t, "col", schema.Int64, schema.WithTags(tt.tags...))
			col = col.WithDomain(0, 9)

			s := schema.New()
			s.AddColumn(col)

			wire, err := FromSchema(s)
			require.NoError(t, err)
			require.NotNil(t, wire.Feature[0].IntDomain)
			assert.Equal(t, tt.wantCategorical, wire.Feature[0].IntDomain.IsCategorical)
		})
	}
}

func TestFromSchema_FloatColumnWithDomain(t *testing.T) {
	col := mustColumn(t, "score", schema.Float32, schema.WithTags(schema.TagContinuous))
	col = col.WithDomain(0, 1)

	s := schema.New()
	s.AddColumn(col)

	wire, err := FromSchema(s)
	require.NoError(t, err)

	f := wire.Feature[0]
	assert.Equal(t, tfmd.FeatureTypeFloat, f.Type)
	require.NotNil(t, f.FloatDomain)
	assert.Equal(t, float32(0), f.FloatDomain.Min)
	assert.Equal(t, float32(1), f.FloatDomain.Max)
	assert.Nil(t, f.IntDomain)
}

func TestFromSchema_NoDomainProperty(t *testing.T) {
	col := mustColumn(t, "count", schema.Int64)

	s := schema.New()
	s.AddColumn(col)

	wire, err := FromSchema(s)
	require.NoError(t, err)

	f := wire.Feature[0]
	assert.Equal(t, tfmd.FeatureTypeInt, f.Type)
	assert.Nil(t, f.IntDomain)
}

func TestFromSchema_StringColumnIsUntyped(t *testing.T) {
	col := mustColumn(t, "note", schema.String)

	s := schema.New()
	s.AddColumn(col)

	wire, err := FromSchema(s)
	require.NoError(t, err)

	f := wire.Feature[0]
	assert.Equal(t, tfmd.FeatureTypeUnknown, f.Type)
	assert.Nil(t, f.IntDomain)
	assert.Nil(t, f.FloatDomain)
}

func TestFromSchema_UnsupportedDType(t *testing.T) {
	col := mustColumn(t, "mystery", schema.DTypeUnknown)

	s := schema.New()
	s.AddColumn(col)

	_, err := FromSchema(s)
	require.Error(t, err)

	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "mystery", unsupported.Column)
	assert.Contains(t, err.Error(), "mystery")
}

func TestFromSchema_ShapeTieBreak(t *testing.T) {
	tests := []struct {
		name           string
		min, max       int64
		withBounds     bool
		wantFixedShape int64 // 0 means no fixed shape
		wantValueCount *tfmd.ValueCount
	}{
		{"exact length", 5, 5, true, 5, nil},
		{"bounded range", 3, 7, true, 0, &tfmd.ValueCount{Min: 3, Max: 7}},
		{"zero bounds", 0, 0, true, 0, &tfmd.ValueCount{Min: 0, Max: 0}},
		{"missing bounds", 0, 0, false, 0, &tfmd.ValueCount{Min: 0, Max: 0}},
		{"inverted bounds", 7, 3, true, 0, &tfmd.ValueCount{Min: 0, Max: 0}},
		{"min only", 2, 0, true, 0, &tfmd.ValueCount{Min: 0, Max: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := mustColumn(t, "values", schema.Int64, schema.WithList())
			if tt.withBounds {
				col = col.WithValueCount(tt.min, tt.max)
			}

			s := schema.New()
			s.AddColumn(col)

			wire, err := FromSchema(s)
			require.NoError(t, err)

			f := wire.Feature[0]
			if tt.wantFixedShape != 0 {
				require.NotNil(t, f.Shape)
				require.Len(t, f.Shape.Dim, 1)
				assert.Equal(t, tt.wantFixedShape, f.Shape.Dim[0].Size)
				assert.Nil(t, f.ValueCount)
			} else {
				assert.Nil(t, f.Shape)
				require.NotNil(t, f.ValueCount)
				assert.Equal(t, tt.wantValueCount.Min, f.ValueCount.Min)
				assert.Equal(t, tt.wantValueCount.Max, f.ValueCount.Max)
			}
		})
	}
}

func TestFromSchema_NonListColumnHasNoShape(t *testing.T) {
	col := mustColumn(t, "scalar", schema.Int64)
	col = col.WithValueCount(5, 5)

	s := schema.New()
	s.AddColumn(col)

	wire, err := FromSchema(s)
	require.NoError(t, err)

	assert.Nil(t, wire.Feature[0].Shape)
	assert.Nil(t, wire.Feature[0].ValueCount)
}

func TestToSchema_ReconstructsDomain(t *testing.T) {
	wire := &tfmd.Schema{Feature: []*tfmd.Feature{
		{
			Name:      "item_id",
			Type:      tfmd.FeatureTypeInt,
			IntDomain: &tfmd.IntDomain{Name: "item_id", Min: 0, Max: 9, IsCategorical: true},
		},
	}}

	s, err := ToSchema(wire)
	require.NoError(t, err)

	col, ok := s.Column("item_id")
	require.True(t, ok)
	assert.Equal(t, schema.Int64, col.DType)

	domain, ok := col.Properties[schema.PropertyDomain].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 0, domain["min"])
	assert.EqualValues(t, 9, domain["max"])
}

func TestToSchema_DomainIgnoredWhenTypeMismatched(t *testing.T) {
	// An int_domain on a FLOAT feature does not match the type and is
	// dropped.
	wire := &tfmd.Schema{Feature: []*tfmd.Feature{
		{
			Name:      "score",
			Type:      tfmd.FeatureTypeFloat,
			IntDomain: &tfmd.IntDomain{Min: 0, Max: 9},
		},
	}}

	s, err := ToSchema(wire)
	require.NoError(t, err)

	col, _ := s.Column("score")
	assert.NotContains(t, col.Properties, schema.PropertyDomain)
}

func TestToSchema_GenericDTypes(t *testing.T) {
	wire := &tfmd.Schema{Feature: []*tfmd.Feature{
		{Name: "a", Type: tfmd.FeatureTypeInt},
		{Name: "b", Type: tfmd.FeatureTypeFloat},
		{Name: "c", Type: tfmd.FeatureTypeBytes},
	}}

	s, err := ToSchema(wire)
	require.NoError(t, err)

	a, _ := s.Column("a")
	b, _ := s.Column("b")
	c, _ := s.Column("c")
	assert.Equal(t, schema.Int64, a.DType)
	assert.Equal(t, schema.Float64, b.DType)
	assert.Equal(t, schema.DTypeUnknown, c.DType)
}

func TestToSchema_MalformedExtension(t *testing.T) {
	wire := &tfmd.Schema{Feature: []*tfmd.Feature{
		{
			Name: "broken",
			Type: tfmd.FeatureTypeInt,
			Annotation: &tfmd.Annotation{
				ExtraMetadata: []*tfmd.Any{
					{Value: []byte{}},
					{Value: []byte{}},
				},
			},
		},
	}}

	_, err := ToSchema(wire)
	require.Error(t, err)

	var malformed *MalformedExtensionError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "broken", malformed.Feature)
	assert.Equal(t, 2, malformed.Entries)
	assert.Contains(t, err.Error(), "exactly one entry")
}

func TestToSchema_LegacyUntypedExtension(t *testing.T) {
	st, err := structpb.NewStruct(map[string]any{
		"is_list":   false,
		"is_ragged": false,
		"origin":    "legacy",
	})
	require.NoError(t, err)
	raw, err := proto.Marshal(st)
	require.NoError(t, err)

	wire := &tfmd.Schema{Feature: []*tfmd.Feature{
		{
			Name: "old",
			Type: tfmd.FeatureTypeInt,
			Annotation: &tfmd.Annotation{
				ExtraMetadata: []*tfmd.Any{{Value: raw}}, // no type URL
			},
		},
	}}

	s, err := ToSchema(wire)
	require.NoError(t, err)

	col, _ := s.Column("old")
	assert.Equal(t, "legacy", col.Properties["origin"])
	assert.False(t, col.IsList)
}

func TestToSchema_EmptyAnnotation(t *testing.T) {
	wire := &tfmd.Schema{Feature: []*tfmd.Feature{
		{Name: "bare", Type: tfmd.FeatureTypeInt},
	}}

	s, err := ToSchema(wire)
	require.NoError(t, err)

	col, _ := s.Column("bare")
	assert.Empty(t, col.Tags)
	assert.False(t, col.IsList)
	assert.False(t, col.IsRagged)
}

func TestToSchema_DuplicateNamesLastWins(t *testing.T) {
	wire := &tfmd.Schema{Feature: []*tfmd.Feature{
		{Name: "col", Type: tfmd.FeatureTypeInt},
		{Name: "col", Type: tfmd.FeatureTypeFloat},
	}}

	s, err := ToSchema(wire)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	col, _ := s.Column("col")
	assert.Equal(t, schema.Float64, col.DType)
}

func TestToSchema_RaggedWithoutListRejected(t *testing.T) {
	st, err := structpb.NewStruct(map[string]any{
		"is_list":   false,
		"is_ragged": true,
	})
	require.NoError(t, err)
	packed, err := anypb.New(st)
	require.NoError(t, err)

	wire := &tfmd.Schema{Feature: []*tfmd.Feature{
		{
			Name: "bad",
			Type: tfmd.FeatureTypeInt,
			Annotation: &tfmd.Annotation{
				ExtraMetadata: []*tfmd.Any{{TypeURL: packed.TypeUrl, Value: packed.Value}},
			},
		},
	}}

	_, err = ToSchema(wire)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is_ragged requires is_list")
}

func TestRoundTrip_SupportedFields(t *testing.T) {
	intCol := mustColumn(t, "item_id", schema.Int32,
		schema.WithTags(schema.TagCategorical, schema.TagItemID),
		schema.WithRagged(),
		schema.WithProperties(map[string]any{"freq_threshold": 5.0}),
	)
	intCol = intCol.WithDomain(0, 9)

	floatCol := mustColumn(t, "score", schema.Float32, schema.WithTags(schema.TagContinuous))
	floatCol = floatCol.WithDomain(0, 1)

	plainCol := mustColumn(t, "age", schema.Int64)

	s := schema.New()
	s.AddColumn(intCol)
	s.AddColumn(floatCol)
	s.AddColumn(plainCol)

	wire, err := FromSchema(s)
	require.NoError(t, err)

	back, err := ToSchema(wire)
	require.NoError(t, err)
	require.Equal(t, 3, back.Len())

	item, ok := back.Column("item_id")
	require.True(t, ok)
	assert.Equal(t, []schema.Tag{"categorical", "item_id"}, item.Tags)
	assert.True(t, item.IsList)
	assert.True(t, item.IsRagged)
	assert.Equal(t, 5.0, item.Properties["freq_threshold"])
	domain := item.Properties[schema.PropertyDomain].(map[string]any)
	assert.EqualValues(t, 0, domain["min"])
	assert.EqualValues(t, 9, domain["max"])

	score, ok := back.Column("score")
	require.True(t, ok)
	assert.Equal(t, []schema.Tag{"continuous"}, score.Tags)
	assert.False(t, score.IsList)
	domain = score.Properties[schema.PropertyDomain].(map[string]any)
	assert.EqualValues(t, 0, domain["min"])
	assert.EqualValues(t, 1, domain["max"])

	age, ok := back.Column("age")
	require.True(t, ok)
	assert.Empty(t, age.Tags)
	assert.NotContains(t, age.Properties, schema.PropertyDomain)
}

func TestRoundTrip_ValueCountSurvivesAsProperty(t *testing.T) {
	// The shape encoding is one-way, but the raw value_count property
	// still round-trips through the extension payload.
	col := mustColumn(t, "values", schema.Int64, schema.WithList())
	col = col.WithValueCount(3, 7)

	s := schema.New()
	s.AddColumn(col)

	wire, err := FromSchema(s)
	require.NoError(t, err)
	require.NotNil(t, wire.Feature[0].ValueCount)

	back, err := ToSchema(wire)
	require.NoError(t, err)

	got, _ := back.Column("values")
	vc, ok := got.Properties[schema.PropertyValueCount].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 3, vc["min"])
	assert.EqualValues(t, 7, vc["max"])
}

func TestRoundTrip_EmptySchema(t *testing.T) {
	wire, err := FromSchema(schema.New())
	require.NoError(t, err)
	assert.Empty(t, wire.Feature)

	back, err := ToSchema(&tfmd.Schema{})
	require.NoError(t, err)
	assert.Equal(t, 0, back.Len())
}

func TestFromSchema_ExtensionPayloadIsWellKnownStruct(t *testing.T) {
	col := mustColumn(t, "col", schema.Int64, schema.WithList())

	s := schema.New()
	s.AddColumn(col)

	wire, err := FromSchema(s)
	require.NoError(t, err)

	ann := wire.Feature[0].Annotation
	require.NotNil(t, ann)
	require.Len(t, ann.ExtraMetadata, 1)

	entry := ann.ExtraMetadata[0]
	assert.Equal(t, tfmd.StructTypeName, entry.TypeName())

	var st structpb.Struct
	require.NoError(t, proto.Unmarshal(entry.Value, &st))
	props := st.AsMap()
	assert.Equal(t, true, props["is_list"])
	assert.Equal(t, false, props["is_ragged"])
}
