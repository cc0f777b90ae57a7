// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package tfmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText_Marshal(t *testing.T) {
	s := &Schema{Feature: []*Feature{
		{
			Name:      "item_id",
			Type:      FeatureTypeInt,
			IntDomain: &IntDomain{Name: "item_id", Max: 9, IsCategorical: true},
			Annotation: &Annotation{
				Tag: []string{"categorical"},
			},
		},
	}}

	want := `feature {
  name: "item_id"
  type: INT
  int_domain {
    name: "item_id"
    max: 9
    is_categorical: true
  }
  annotation {
    tag: "categorical"
  }
}
`
	assert.Equal(t, want, MarshalText(s))
}

func TestText_RoundTrip(t *testing.T) {
	s := sampleSchema(t)

	text := MarshalText(s)
	got, err := UnmarshalText(text)
	require.NoError(t, err)

	assert.Equal(t, s, got)
}

func TestText_ParseWithCommentsAndWhitespace(t *testing.T) {
	text := `
# generated schema
feature {
  name: "score"   # trailing comment
  type: FLOAT
  float_domain { min: 0.5 max: 1.5 }
}
`
	got, err := UnmarshalText(text)
	require.NoError(t, err)

	require.Len(t, got.Feature, 1)
	f := got.Feature[0]
	assert.Equal(t, "score", f.Name)
	assert.Equal(t, FeatureTypeFloat, f.Type)
	require.NotNil(t, f.FloatDomain)
	assert.Equal(t, float32(0.5), f.FloatDomain.Min)
	assert.Equal(t, float32(1.5), f.FloatDomain.Max)
}

func TestText_ParseNumericEnum(t *testing.T) {
	got, err := UnmarshalText(`feature { name: "a" type: 2 }`)
	require.NoError(t, err)
	assert.Equal(t, FeatureTypeInt, got.Feature[0].Type)
}

func TestText_ParseSkipsUnknownFields(t *testing.T) {
	text := `
feature {
  name: "col"
  lifecycle_stage: PRODUCTION
  presence {
    min_fraction: 1.0
  }
  type: INT
}
`
	got, err := UnmarshalText(text)
	require.NoError(t, err)

	require.Len(t, got.Feature, 1)
	assert.Equal(t, "col", got.Feature[0].Name)
	assert.Equal(t, FeatureTypeInt, got.Feature[0].Type)
}

func TestText_BytesEscaping(t *testing.T) {
	payload := []byte{0x00, 0x0a, 'h', 'i', '"', '\\', 0xff}
	s := &Schema{Feature: []*Feature{
		{
			Name: "col",
			Annotation: &Annotation{
				ExtraMetadata: []*Any{{TypeURL: "type.googleapis.com/google.protobuf.Struct", Value: payload}},
			},
		},
	}}

	got, err := UnmarshalText(MarshalText(s))
	require.NoError(t, err)

	require.Len(t, got.Feature, 1)
	require.Len(t, got.Feature[0].Annotation.ExtraMetadata, 1)
	assert.Equal(t, payload, got.Feature[0].Annotation.ExtraMetadata[0].Value)
}

func TestText_ParseAdjacentStringLiterals(t *testing.T) {
	got, err := UnmarshalText(`feature { name: "ab" "cd" }`)
	require.NoError(t, err)
	assert.Equal(t, "abcd", got.Feature[0].Name)
}

func TestText_EmptyValueCount(t *testing.T) {
	got, err := UnmarshalText("feature {\n  name: \"v\"\n  value_count {\n  }\n}\n")
	require.NoError(t, err)

	require.NotNil(t, got.Feature[0].ValueCount)
	assert.Equal(t, int64(0), got.Feature[0].ValueCount.Min)
}

func TestText_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unterminated message", `feature { name: "a"`},
		{"unterminated string", `feature { name: "a }`},
		{"missing value", `feature { name: }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalText(tt.text)
			assert.Error(t, err)
		})
	}
}
