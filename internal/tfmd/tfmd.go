// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package tfmd models the schema-interchange format consumed by
// schema-aware tooling: an ordered sequence of typed features with
// optional numeric domains, shapes, and annotations. The messages mirror
// the conventional schema proto definition field-for-field, and the
// package provides binary, proto-text, and JSON codecs that are
// wire-compatible with it.
package tfmd

import "fmt"

// FeatureType is the physical type of a feature on the wire.
type FeatureType int32

const (
	FeatureTypeUnknown FeatureType = 0
	FeatureTypeBytes   FeatureType = 1
	FeatureTypeInt     FeatureType = 2
	FeatureTypeFloat   FeatureType = 3
	FeatureTypeStruct  FeatureType = 4
)

var featureTypeNames = map[FeatureType]string{
	FeatureTypeUnknown: "TYPE_UNKNOWN",
	FeatureTypeBytes:   "BYTES",
	FeatureTypeInt:     "INT",
	FeatureTypeFloat:   "FLOAT",
	FeatureTypeStruct:  "STRUCT",
}

// String returns the proto enum value name, e.g. "INT".
func (t FeatureType) String() string {
	if name, ok := featureTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FeatureType(%d)", int32(t))
}

// ParseFeatureType resolves a FeatureType from its enum value name.
func ParseFeatureType(name string) (FeatureType, error) {
	for t, n := range featureTypeNames {
		if n == name {
			return t, nil
		}
	}
	return FeatureTypeUnknown, fmt.Errorf("unknown feature type: %q", name)
}

// Schema is the top-level interchange message: an ordered sequence of
// features. Wire order is preserved by every codec.
type Schema struct {
	Feature []*Feature
}

// Feature describes a single column on the wire. Field numbers follow
// the conventional schema proto definition.
type Feature struct {
	Name        string       // field 1
	ValueCount  *ValueCount  // field 5
	Type        FeatureType  // field 6
	IntDomain   *IntDomain   // field 9
	FloatDomain *FloatDomain // field 10
	Annotation  *Annotation  // field 16
	Shape       *FixedShape  // field 23
}

// IntDomain bounds an integer feature.
type IntDomain struct {
	Name          string // field 1
	Min           int64  // field 3
	Max           int64  // field 4
	IsCategorical bool   // field 5
}

// FloatDomain bounds a floating-point feature.
type FloatDomain struct {
	Name string  // field 1
	Min  float32 // field 3
	Max  float32 // field 4
}

// FixedShape is a fully-known dimensionality for a feature's values.
type FixedShape struct {
	Dim []*FixedShapeDim // field 2
}

// FixedShapeDim is one axis of a FixedShape.
type FixedShapeDim struct {
	Size int64  // field 1
	Name string // field 2
}

// ValueCount bounds the number of values per example in a feature.
// A present-but-zero ValueCount is the conventional "unknown/unbounded"
// sentinel, not an error.
type ValueCount struct {
	Min int64 // field 1
	Max int64 // field 2
}

// Annotation carries application-level metadata for a feature: free-form
// tags, comments, and opaque typed extension payloads.
type Annotation struct {
	Tag           []string // field 1
	Comment       []string // field 2
	ExtraMetadata []*Any   // field 3
}

// Any is an opaque typed payload: a type URL naming the payload's
// message type plus its serialized bytes. It mirrors
// google.protobuf.Any on the wire.
type Any struct {
	TypeURL string // field 1
	Value   []byte // field 2
}
