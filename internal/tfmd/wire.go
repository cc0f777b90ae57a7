// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package tfmd

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Marshal encodes the schema to the compact binary wire form. The output
// is byte-for-byte compatible with the conventional proto encoding:
// fields are written in field-number order and scalar fields at their
// zero value are omitted.
func Marshal(s *Schema) []byte {
	var b []byte
	for _, f := range s.Feature {
		b = appendMessage(b, 1, appendFeature(nil, f))
	}
	return b
}

// Unmarshal decodes a schema from its binary wire form. Fields this
// model does not carry are skipped.
func Unmarshal(data []byte) (*Schema, error) {
	s := &Schema{}
	err := eachField(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 && typ == protowire.BytesType {
			f, err := unmarshalFeature(v)
			if err != nil {
				return err
			}
			s.Feature = append(s.Feature, f)
			return nil
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return s, nil
}

func appendFeature(b []byte, f *Feature) []byte {
	b = appendString(b, 1, f.Name)
	if f.ValueCount != nil {
		b = appendMessage(b, 5, appendValueCount(nil, f.ValueCount))
	}
	if f.Type != FeatureTypeUnknown {
		b = protowire.AppendTag(b, 6, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(f.Type))
	}
	if f.IntDomain != nil {
		b = appendMessage(b, 9, appendIntDomain(nil, f.IntDomain))
	}
	if f.FloatDomain != nil {
		b = appendMessage(b, 10, appendFloatDomain(nil, f.FloatDomain))
	}
	if f.Annotation != nil {
		b = appendMessage(b, 16, appendAnnotation(nil, f.Annotation))
	}
	if f.Shape != nil {
		b = appendMessage(b, 23, appendFixedShape(nil, f.Shape))
	}
	return b
}

func unmarshalFeature(data []byte) (*Feature, error) {
	f := &Feature{}
	err := eachField(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch {
		case num == 1 && typ == protowire.BytesType:
			f.Name = string(v)
		case num == 5 && typ == protowire.BytesType:
			vc, err := unmarshalValueCount(v)
			if err != nil {
				return err
			}
			f.ValueCount = vc
		case num == 6 && typ == protowire.VarintType:
			f.Type = FeatureType(varintOf(v))
		case num == 9 && typ == protowire.BytesType:
			d, err := unmarshalIntDomain(v)
			if err != nil {
				return err
			}
			f.IntDomain = d
		case num == 10 && typ == protowire.BytesType:
			d, err := unmarshalFloatDomain(v)
			if err != nil {
				return err
			}
			f.FloatDomain = d
		case num == 16 && typ == protowire.BytesType:
			a, err := unmarshalAnnotation(v)
			if err != nil {
				return err
			}
			f.Annotation = a
		case num == 23 && typ == protowire.BytesType:
			sh, err := unmarshalFixedShape(v)
			if err != nil {
				return err
			}
			f.Shape = sh
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("feature %q: %w", f.Name, err)
	}
	return f, nil
}

func appendIntDomain(b []byte, d *IntDomain) []byte {
	b = appendString(b, 1, d.Name)
	b = appendInt64(b, 3, d.Min)
	b = appendInt64(b, 4, d.Max)
	if d.IsCategorical {
		b = protowire.AppendTag(b, 5, protowire.VarintType)
		b = protowire.AppendVarint(b, 1)
	}
	return b
}

func unmarshalIntDomain(data []byte) (*IntDomain, error) {
	d := &IntDomain{}
	err := eachField(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch {
		case num == 1 && typ == protowire.BytesType:
			d.Name = string(v)
		case num == 3 && typ == protowire.VarintType:
			d.Min = int64(varintOf(v))
		case num == 4 && typ == protowire.VarintType:
			d.Max = int64(varintOf(v))
		case num == 5 && typ == protowire.VarintType:
			d.IsCategorical = varintOf(v) != 0
		}
		return nil
	})
	return d, err
}

func appendFloatDomain(b []byte, d *FloatDomain) []byte {
	b = appendString(b, 1, d.Name)
	if d.Min != 0 {
		b = protowire.AppendTag(b, 3, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(d.Min))
	}
	if d.Max != 0 {
		b = protowire.AppendTag(b, 4, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(d.Max))
	}
	return b
}

func unmarshalFloatDomain(data []byte) (*FloatDomain, error) {
	d := &FloatDomain{}
	err := eachField(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch {
		case num == 1 && typ == protowire.BytesType:
			d.Name = string(v)
		case num == 3 && typ == protowire.Fixed32Type:
			d.Min = math.Float32frombits(uint32(varintOf(v)))
		case num == 4 && typ == protowire.Fixed32Type:
			d.Max = math.Float32frombits(uint32(varintOf(v)))
		}
		return nil
	})
	return d, err
}

func appendFixedShape(b []byte, s *FixedShape) []byte {
	for _, dim := range s.Dim {
		b = appendMessage(b, 2, appendFixedShapeDim(nil, dim))
	}
	return b
}

func unmarshalFixedShape(data []byte) (*FixedShape, error) {
	s := &FixedShape{}
	err := eachField(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 2 && typ == protowire.BytesType {
			dim, err := unmarshalFixedShapeDim(v)
			if err != nil {
				return err
			}
			s.Dim = append(s.Dim, dim)
		}
		return nil
	})
	return s, err
}

func appendFixedShapeDim(b []byte, d *FixedShapeDim) []byte {
	b = appendInt64(b, 1, d.Size)
	b = appendString(b, 2, d.Name)
	return b
}

func unmarshalFixedShapeDim(data []byte) (*FixedShapeDim, error) {
	d := &FixedShapeDim{}
	err := eachField(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch {
		case num == 1 && typ == protowire.VarintType:
			d.Size = int64(varintOf(v))
		case num == 2 && typ == protowire.BytesType:
			d.Name = string(v)
		}
		return nil
	})
	return d, err
}

func appendValueCount(b []byte, vc *ValueCount) []byte {
	b = appendInt64(b, 1, vc.Min)
	b = appendInt64(b, 2, vc.Max)
	return b
}

func unmarshalValueCount(data []byte) (*ValueCount, error) {
	vc := &ValueCount{}
	err := eachField(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch {
		case num == 1 && typ == protowire.VarintType:
			vc.Min = int64(varintOf(v))
		case num == 2 && typ == protowire.VarintType:
			vc.Max = int64(varintOf(v))
		}
		return nil
	})
	return vc, err
}

func appendAnnotation(b []byte, a *Annotation) []byte {
	for _, tag := range a.Tag {
		b = appendString(b, 1, tag)
	}
	for _, comment := range a.Comment {
		b = appendString(b, 2, comment)
	}
	for _, any := range a.ExtraMetadata {
		b = appendMessage(b, 3, appendAny(nil, any))
	}
	return b
}

func unmarshalAnnotation(data []byte) (*Annotation, error) {
	a := &Annotation{}
	err := eachField(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch {
		case num == 1 && typ == protowire.BytesType:
			a.Tag = append(a.Tag, string(v))
		case num == 2 && typ == protowire.BytesType:
			a.Comment = append(a.Comment, string(v))
		case num == 3 && typ == protowire.BytesType:
			any, err := unmarshalAny(v)
			if err != nil {
				return err
			}
			a.ExtraMetadata = append(a.ExtraMetadata, any)
		}
		return nil
	})
	return a, err
}

func appendAny(b []byte, a *Any) []byte {
	b = appendString(b, 1, a.TypeURL)
	if len(a.Value) > 0 {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, a.Value)
	}
	return b
}

func unmarshalAny(data []byte) (*Any, error) {
	a := &Any{}
	err := eachField(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch {
		case num == 1 && typ == protowire.BytesType:
			a.TypeURL = string(v)
		case num == 2 && typ == protowire.BytesType:
			a.Value = append([]byte(nil), v...)
		}
		return nil
	})
	return a, err
}

// eachField walks one message's fields, handing each field's raw value
// to fn. Varint and fixed values are passed re-encoded so fn can decode
// them with varintOf; length-delimited values are passed as-is.
func eachField(data []byte, fn func(num protowire.Number, typ protowire.Type, v []byte) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			if err := fn(num, typ, protowire.AppendVarint(nil, v)); err != nil {
				return err
			}
			data = data[n:]
		case protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			if err := fn(num, typ, protowire.AppendVarint(nil, uint64(v))); err != nil {
				return err
			}
			data = data[n:]
		case protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			if err := fn(num, typ, protowire.AppendVarint(nil, v)); err != nil {
				return err
			}
			data = data[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			if err := fn(num, typ, v); err != nil {
				return err
			}
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return protowire.ParseError(n)
			}
			data = data[n:]
		}
	}
	return nil
}

// varintOf decodes the varint re-encoded by eachField.
func varintOf(v []byte) uint64 {
	u, _ := protowire.ConsumeVarint(v)
	return u
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}
