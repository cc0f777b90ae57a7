// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package tfmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_Marshal(t *testing.T) {
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

	got, err := MarshalJSON(s)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"feature": [{
			"name": "item_id",
			"type": "INT",
			"intDomain": {"name": "item_id", "max": "9", "isCategorical": true},
			"annotation": {"tag": ["categorical"]}
		}]
	}`, string(got))
}

func TestJSON_RoundTrip(t *testing.T) {
	s := sampleSchema(t)

	data, err := MarshalJSON(s)
	require.NoError(t, err)

	got, err := UnmarshalJSON(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestJSON_StructPayloadInlined(t *testing.T) {
	s := sampleSchema(t)

	data, err := MarshalJSON(s)
	require.NoError(t, err)

	// The struct-typed extension payload is inlined as a JSON object,
	// not base64 bytes.
	assert.Contains(t, string(data), `"@type":"type.googleapis.com/google.protobuf.Struct"`)
	assert.Contains(t, string(data), `"is_list"`)
}

func TestJSON_AcceptsNumericInt64(t *testing.T) {
	got, err := UnmarshalJSON([]byte(`{
		"feature": [{
			"name": "item_id",
			"type": "INT",
			"intDomain": {"min": 1, "max": 9}
		}]
	}`))
	require.NoError(t, err)

	require.Len(t, got.Feature, 1)
	require.NotNil(t, got.Feature[0].IntDomain)
	assert.Equal(t, int64(1), got.Feature[0].IntDomain.Min)
	assert.Equal(t, int64(9), got.Feature[0].IntDomain.Max)
}

func TestJSON_UnknownPayloadAsBase64(t *testing.T) {
	s := &Schema{Feature: []*Feature{
		{
			Name: "col",
			Annotation: &Annotation{
				ExtraMetadata: []*Any{{TypeURL: "type.googleapis.com/acme.Custom", Value: []byte{1, 2, 3}}},
			},
		},
	}}

	data, err := MarshalJSON(s)
	require.NoError(t, err)

	got, err := UnmarshalJSON(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestJSON_InvalidType(t *testing.T) {
	_, err := UnmarshalJSON([]byte(`{"feature": [{"name": "a", "type": "COMPLEX"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown feature type")
}

func TestJSON_EmptySchema(t *testing.T) {
	data, err := MarshalJSON(&Schema{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	got, err := UnmarshalJSON([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, got.Feature)
}
