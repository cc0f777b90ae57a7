// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package tfmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// StructTypeName is the fully-qualified message name of the well-known
// struct payload carried in extension slots.
const StructTypeName = "google.protobuf.Struct"

// TypeName returns the message name portion of the type URL (everything
// after the last '/').
func (a *Any) TypeName() string {
	if i := strings.LastIndexByte(a.TypeURL, '/'); i >= 0 {
		return a.TypeURL[i+1:]
	}
	return a.TypeURL
}

// MarshalJSON renders the schema using the proto JSON mapping: camelCase
// field names, 64-bit integers as strings, enums by name, and extension
// payloads of the well-known struct type inlined as JSON objects.
func MarshalJSON(s *Schema) ([]byte, error) {
	out := jsonSchema{}
	for _, f := range s.Feature {
		jf, err := featureToJSON(f)
		if err != nil {
			return nil, err
		}
		out.Feature = append(out.Feature, jf)
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses a schema from its proto JSON form. 64-bit
// integers are accepted both as numbers and as strings.
func UnmarshalJSON(data []byte) (*Schema, error) {
	var raw jsonSchema
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("schema json: %w", err)
	}

	s := &Schema{}
	for _, jf := range raw.Feature {
		f, err := featureFromJSON(jf)
		if err != nil {
			return nil, err
		}
		s.Feature = append(s.Feature, f)
	}
	return s, nil
}

type jsonSchema struct {
	Feature []jsonFeature `json:"feature,omitempty"`
}

type jsonFeature struct {
	Name        string           `json:"name,omitempty"`
	ValueCount  *jsonValueCount  `json:"valueCount,omitempty"`
	Type        string           `json:"type,omitempty"`
	IntDomain   *jsonIntDomain   `json:"intDomain,omitempty"`
	FloatDomain *jsonFloatDomain `json:"floatDomain,omitempty"`
	Annotation  *jsonAnnotation  `json:"annotation,omitempty"`
	Shape       *jsonShape       `json:"shape,omitempty"`
}

type jsonValueCount struct {
	Min jsonInt64 `json:"min,omitempty"`
	Max jsonInt64 `json:"max,omitempty"`
}

type jsonIntDomain struct {
	Name          string    `json:"name,omitempty"`
	Min           jsonInt64 `json:"min,omitempty"`
	Max           jsonInt64 `json:"max,omitempty"`
	IsCategorical bool      `json:"isCategorical,omitempty"`
}

type jsonFloatDomain struct {
	Name string  `json:"name,omitempty"`
	Min  float32 `json:"min,omitempty"`
	Max  float32 `json:"max,omitempty"`
}

type jsonAnnotation struct {
	Tag           []string  `json:"tag,omitempty"`
	Comment       []string  `json:"comment,omitempty"`
	ExtraMetadata []jsonAny `json:"extraMetadata,omitempty"`
}

type jsonAny struct {
	TypeURL string          `json:"@type,omitempty"`
	Value   json.RawMessage `json:"value,omitempty"`
}

type jsonShape struct {
	Dim []jsonShapeDim `json:"dim,omitempty"`
}

type jsonShapeDim struct {
	Size jsonInt64 `json:"size,omitempty"`
	Name string    `json:"name,omitempty"`
}

// jsonInt64 follows the proto JSON convention: emitted as a decimal
// string, accepted as either a string or a number.
type jsonInt64 int64

func (v jsonInt64) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatInt(int64(v), 10))), nil
}

func (v *jsonInt64) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		s = unquoted
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid int64 value %s: %w", string(data), err)
	}
	*v = jsonInt64(n)
	return nil
}

func featureToJSON(f *Feature) (jsonFeature, error) {
	jf := jsonFeature{Name: f.Name}
	if f.Type != FeatureTypeUnknown {
		jf.Type = f.Type.String()
	}
	if f.ValueCount != nil {
		jf.ValueCount = &jsonValueCount{Min: jsonInt64(f.ValueCount.Min), Max: jsonInt64(f.ValueCount.Max)}
	}
	if f.IntDomain != nil {
		jf.IntDomain = &jsonIntDomain{
			Name:          f.IntDomain.Name,
			Min:           jsonInt64(f.IntDomain.Min),
			Max:           jsonInt64(f.IntDomain.Max),
			IsCategorical: f.IntDomain.IsCategorical,
		}
	}
	if f.FloatDomain != nil {
		jf.FloatDomain = &jsonFloatDomain{Name: f.FloatDomain.Name, Min: f.FloatDomain.Min, Max: f.FloatDomain.Max}
	}
	if f.Annotation != nil {
		ja := &jsonAnnotation{Tag: f.Annotation.Tag, Comment: f.Annotation.Comment}
		for _, any := range f.Annotation.ExtraMetadata {
			entry, err := anyToJSON(any)
			if err != nil {
				return jsonFeature{}, fmt.Errorf("feature %q: %w", f.Name, err)
			}
			ja.ExtraMetadata = append(ja.ExtraMetadata, entry)
		}
		jf.Annotation = ja
	}
	if f.Shape != nil {
		js := &jsonShape{}
		for _, dim := range f.Shape.Dim {
			js.Dim = append(js.Dim, jsonShapeDim{Size: jsonInt64(dim.Size), Name: dim.Name})
		}
		jf.Shape = js
	}
	return jf, nil
}

func featureFromJSON(jf jsonFeature) (*Feature, error) {
	f := &Feature{Name: jf.Name}
	if jf.Type != "" {
		t, err := ParseFeatureType(jf.Type)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", jf.Name, err)
		}
		f.Type = t
	}
	if jf.ValueCount != nil {
		f.ValueCount = &ValueCount{Min: int64(jf.ValueCount.Min), Max: int64(jf.ValueCount.Max)}
	}
	if jf.IntDomain != nil {
		f.IntDomain = &IntDomain{
			Name:          jf.IntDomain.Name,
			Min:           int64(jf.IntDomain.Min),
			Max:           int64(jf.IntDomain.Max),
			IsCategorical: jf.IntDomain.IsCategorical,
		}
	}
	if jf.FloatDomain != nil {
		f.FloatDomain = &FloatDomain{Name: jf.FloatDomain.Name, Min: jf.FloatDomain.Min, Max: jf.FloatDomain.Max}
	}
	if jf.Annotation != nil {
		f.Annotation = &Annotation{Tag: jf.Annotation.Tag, Comment: jf.Annotation.Comment}
		for _, entry := range jf.Annotation.ExtraMetadata {
			any, err := anyFromJSON(entry)
			if err != nil {
				return nil, fmt.Errorf("feature %q: %w", jf.Name, err)
			}
			f.Annotation.ExtraMetadata = append(f.Annotation.ExtraMetadata, any)
		}
	}
	if jf.Shape != nil {
		f.Shape = &FixedShape{}
		for _, dim := range jf.Shape.Dim {
			f.Shape.Dim = append(f.Shape.Dim, &FixedShapeDim{Size: int64(dim.Size), Name: dim.Name})
		}
	}
	return f, nil
}

// anyToJSON follows the proto JSON convention for Any: a payload of the
// well-known struct type is inlined as a JSON object; anything else is
// carried as base64 bytes.
func anyToJSON(a *Any) (jsonAny, error) {
	out := jsonAny{TypeURL: a.TypeURL}
	if a.TypeName() == StructTypeName {
		var st structpb.Struct
		if err := proto.Unmarshal(a.Value, &st); err != nil {
			return jsonAny{}, fmt.Errorf("decoding struct payload: %w", err)
		}
		raw, err := protojson.Marshal(&st)
		if err != nil {
			return jsonAny{}, err
		}
		out.Value = raw
		return out, nil
	}
	raw, err := json.Marshal(a.Value)
	if err != nil {
		return jsonAny{}, err
	}
	out.Value = raw
	return out, nil
}

func anyFromJSON(entry jsonAny) (*Any, error) {
	a := &Any{TypeURL: entry.TypeURL}
	if len(entry.Value) == 0 {
		return a, nil
	}
	trimmed := bytes.TrimSpace(entry.Value)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var st structpb.Struct
		if err := protojson.Unmarshal(trimmed, &st); err != nil {
			return nil, fmt.Errorf("decoding struct payload: %w", err)
		}
		// Deterministic so re-encoding a payload is byte-stable.
		raw, err := proto.MarshalOptions{Deterministic: true}.Marshal(&st)
		if err != nil {
			return nil, err
		}
		a.Value = raw
		return a, nil
	}
	if err := json.Unmarshal(entry.Value, &a.Value); err != nil {
		return nil, fmt.Errorf("decoding bytes payload: %w", err)
	}
	return a, nil
}
