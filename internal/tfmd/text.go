// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package tfmd

import (
	"fmt"
	"strconv"
	"strings"
)

// MarshalText renders the schema in proto-text form, the conventional
// human-readable interchange encoding (schema.pbtxt). Fields appear in
// field-number order; scalar fields at their zero value are omitted.
func MarshalText(s *Schema) string {
	var sb strings.Builder
	for _, f := range s.Feature {
		writeMessageField(&sb, 0, "feature", func(indent int) {
			writeFeatureText(&sb, indent, f)
		})
	}
	return sb.String()
}

// UnmarshalText parses a schema from its proto-text form. Unknown fields
// are skipped.
func UnmarshalText(text string) (*Schema, error) {
	p := &textParser{input: text}
	s := &Schema{}
	err := p.parseMessage(func(field string) error {
		if field == "feature" {
			f := &Feature{}
			if err := p.parseNested(func(inner string) error {
				return parseFeatureField(p, f, inner)
			}); err != nil {
				return err
			}
			s.Feature = append(s.Feature, f)
			return nil
		}
		return p.skipValue()
	})
	if err != nil {
		return nil, fmt.Errorf("proto text: %w", err)
	}
	return s, nil
}

func writeFeatureText(sb *strings.Builder, indent int, f *Feature) {
	writeStringField(sb, indent, "name", f.Name)
	if f.ValueCount != nil {
		writeMessageField(sb, indent, "value_count", func(in int) {
			writeIntField(sb, in, "min", f.ValueCount.Min)
			writeIntField(sb, in, "max", f.ValueCount.Max)
		})
	}
	if f.Type != FeatureTypeUnknown {
		writeScalar(sb, indent, "type", f.Type.String())
	}
	if f.IntDomain != nil {
		d := f.IntDomain
		writeMessageField(sb, indent, "int_domain", func(in int) {
			writeStringField(sb, in, "name", d.Name)
			writeIntField(sb, in, "min", d.Min)
			writeIntField(sb, in, "max", d.Max)
			if d.IsCategorical {
				writeScalar(sb, in, "is_categorical", "true")
			}
		})
	}
	if f.FloatDomain != nil {
		d := f.FloatDomain
		writeMessageField(sb, indent, "float_domain", func(in int) {
			writeStringField(sb, in, "name", d.Name)
			if d.Min != 0 {
				writeScalar(sb, in, "min", formatFloat(d.Min))
			}
			if d.Max != 0 {
				writeScalar(sb, in, "max", formatFloat(d.Max))
			}
		})
	}
	if f.Annotation != nil {
		a := f.Annotation
		writeMessageField(sb, indent, "annotation", func(in int) {
			for _, tag := range a.Tag {
				writeStringField(sb, in, "tag", tag)
			}
			for _, comment := range a.Comment {
				writeStringField(sb, in, "comment", comment)
			}
			for _, any := range a.ExtraMetadata {
				writeMessageField(sb, in, "extra_metadata", func(in2 int) {
					writeStringField(sb, in2, "type_url", any.TypeURL)
					if len(any.Value) > 0 {
						writeScalar(sb, in2, "value", quoteBytes(any.Value))
					}
				})
			}
		})
	}
	if f.Shape != nil {
		sh := f.Shape
		writeMessageField(sb, indent, "shape", func(in int) {
			for _, dim := range sh.Dim {
				writeMessageField(sb, in, "dim", func(in2 int) {
					writeIntField(sb, in2, "size", dim.Size)
					writeStringField(sb, in2, "name", dim.Name)
				})
			}
		})
	}
}

func parseFeatureField(p *textParser, f *Feature, field string) error {
	switch field {
	case "name":
		s, err := p.readString()
		f.Name = s
		return err
	case "type":
		ident, err := p.readScalarToken()
		if err != nil {
			return err
		}
		t, err := ParseFeatureType(ident)
		if err != nil {
			// Accept the numeric enum form too.
			n, numErr := strconv.ParseInt(ident, 10, 32)
			if numErr != nil {
				return err
			}
			t = FeatureType(n)
		}
		f.Type = t
		return nil
	case "value_count":
		vc := &ValueCount{}
		err := p.parseNested(func(inner string) error {
			switch inner {
			case "min":
				v, err := p.readInt()
				vc.Min = v
				return err
			case "max":
				v, err := p.readInt()
				vc.Max = v
				return err
			}
			return p.skipValue()
		})
		f.ValueCount = vc
		return err
	case "int_domain":
		d := &IntDomain{}
		err := p.parseNested(func(inner string) error {
			switch inner {
			case "name":
				v, err := p.readString()
				d.Name = v
				return err
			case "min":
				v, err := p.readInt()
				d.Min = v
				return err
			case "max":
				v, err := p.readInt()
				d.Max = v
				return err
			case "is_categorical":
				v, err := p.readBool()
				d.IsCategorical = v
				return err
			}
			return p.skipValue()
		})
		f.IntDomain = d
		return err
	case "float_domain":
		d := &FloatDomain{}
		err := p.parseNested(func(inner string) error {
			switch inner {
			case "name":
				v, err := p.readString()
				d.Name = v
				return err
			case "min":
				v, err := p.readFloat()
				d.Min = v
				return err
			case "max":
				v, err := p.readFloat()
				d.Max = v
				return err
			}
			return p.skipValue()
		})
		f.FloatDomain = d
		return err
	case "annotation":
		a := &Annotation{}
		err := p.parseNested(func(inner string) error {
			switch inner {
			case "tag":
				v, err := p.readString()
				a.Tag = append(a.Tag, v)
				return err
			case "comment":
				v, err := p.readString()
				a.Comment = append(a.Comment, v)
				return err
			case "extra_metadata":
				any := &Any{}
				err := p.parseNested(func(in2 string) error {
					switch in2 {
					case "type_url":
						v, err := p.readString()
						any.TypeURL = v
						return err
					case "value":
						v, err := p.readBytes()
						any.Value = v
						return err
					}
					return p.skipValue()
				})
				a.ExtraMetadata = append(a.ExtraMetadata, any)
				return err
			}
			return p.skipValue()
		})
		f.Annotation = a
		return err
	case "shape":
		sh := &FixedShape{}
		err := p.parseNested(func(inner string) error {
			if inner == "dim" {
				dim := &FixedShapeDim{}
				err := p.parseNested(func(in2 string) error {
					switch in2 {
					case "size":
						v, err := p.readInt()
						dim.Size = v
						return err
					case "name":
						v, err := p.readString()
						dim.Name = v
						return err
					}
					return p.skipValue()
				})
				sh.Dim = append(sh.Dim, dim)
				return err
			}
			return p.skipValue()
		})
		f.Shape = sh
		return err
	}
	return p.skipValue()
}

// --- writer helpers ---

func writeIndent(sb *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		sb.WriteString("  ")
	}
}

func writeScalar(sb *strings.Builder, indent int, field, value string) {
	writeIndent(sb, indent)
	sb.WriteString(field)
	sb.WriteString(": ")
	sb.WriteString(value)
	sb.WriteByte('\n')
}

func writeStringField(sb *strings.Builder, indent int, field, value string) {
	if value == "" {
		return
	}
	writeScalar(sb, indent, field, quoteBytes([]byte(value)))
}

func writeIntField(sb *strings.Builder, indent int, field string, value int64) {
	if value == 0 {
		return
	}
	writeScalar(sb, indent, field, strconv.FormatInt(value, 10))
}

func writeMessageField(sb *strings.Builder, indent int, field string, body func(indent int)) {
	writeIndent(sb, indent)
	sb.WriteString(field)
	sb.WriteString(" {\n")
	body(indent + 1)
	writeIndent(sb, indent)
	sb.WriteString("}\n")
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

// quoteBytes renders bytes as a proto-text string literal, escaping
// non-printable bytes in octal form.
func quoteBytes(b []byte) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range b {
		switch c {
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			if c < 0x20 || c >= 0x7f {
				sb.WriteString(fmt.Sprintf(`\%03o`, c))
			} else {
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// --- parser ---

type textParser struct {
	input string
	pos   int
}

// parseMessage reads "field: value" and "field { ... }" entries until the
// input (or the enclosing message) ends.
func (p *textParser) parseMessage(handle func(field string) error) error {
	for {
		p.skipSpace()
		if p.pos >= len(p.input) || p.peek() == '}' {
			return nil
		}
		field, err := p.readIdent()
		if err != nil {
			return err
		}
		p.skipSpace()
		if p.pos < len(p.input) && p.peek() == ':' {
			p.pos++
			p.skipSpace()
		}
		if err := handle(field); err != nil {
			return err
		}
	}
}

// parseNested consumes a braced message body.
func (p *textParser) parseNested(handle func(field string) error) error {
	p.skipSpace()
	if p.pos >= len(p.input) || p.peek() != '{' {
		return fmt.Errorf("offset %d: expected '{'", p.pos)
	}
	p.pos++
	if err := p.parseMessage(handle); err != nil {
		return err
	}
	p.skipSpace()
	if p.pos >= len(p.input) || p.peek() != '}' {
		return fmt.Errorf("offset %d: expected '}'", p.pos)
	}
	p.pos++
	return nil
}

func (p *textParser) peek() byte { return p.input[p.pos] }

func (p *textParser) skipSpace() {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '#' {
			for p.pos < len(p.input) && p.input[p.pos] != '\n' {
				p.pos++
			}
			continue
		}
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' && c != ',' {
			return
		}
		p.pos++
	}
}

func (p *textParser) readIdent() (string, error) {
	start := p.pos
	for p.pos < len(p.input) && isIdentByte(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("offset %d: expected identifier", p.pos)
	}
	return p.input[start:p.pos], nil
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '.' || c == '-' || c == '+' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// readScalarToken reads an unquoted scalar: a number, bool, or enum name.
func (p *textParser) readScalarToken() (string, error) {
	p.skipSpace()
	return p.readIdent()
}

func (p *textParser) readInt() (int64, error) {
	tok, err := p.readScalarToken()
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(tok, 10, 64)
}

func (p *textParser) readFloat() (float32, error) {
	tok, err := p.readScalarToken()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(tok, 32)
	return float32(f), err
}

func (p *textParser) readBool() (bool, error) {
	tok, err := p.readScalarToken()
	if err != nil {
		return false, err
	}
	switch tok {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("offset %d: invalid bool %q", p.pos, tok)
}

func (p *textParser) readString() (string, error) {
	b, err := p.readBytes()
	return string(b), err
}

// readBytes reads one or more adjacent quoted literals, concatenated per
// proto-text convention.
func (p *textParser) readBytes() ([]byte, error) {
	var out []byte
	first := true
	for {
		p.skipSpace()
		if p.pos >= len(p.input) || (p.peek() != '"' && p.peek() != '\'') {
			if first {
				return nil, fmt.Errorf("offset %d: expected string literal", p.pos)
			}
			return out, nil
		}
		chunk, err := p.readQuoted()
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
		first = false
	}
}

func (p *textParser) readQuoted() ([]byte, error) {
	quote := p.peek()
	p.pos++
	var out []byte
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == quote {
			p.pos++
			return out, nil
		}
		if c != '\\' {
			out = append(out, c)
			p.pos++
			continue
		}
		p.pos++
		if p.pos >= len(p.input) {
			break
		}
		e := p.input[p.pos]
		p.pos++
		switch e {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case '"', '\'', '\\', '/', '?':
			out = append(out, e)
		case 'a':
			out = append(out, '\a')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'v':
			out = append(out, '\v')
		case 'x', 'X':
			start := p.pos
			for p.pos < len(p.input) && p.pos-start < 2 && isHexByte(p.input[p.pos]) {
				p.pos++
			}
			if p.pos == start {
				return nil, fmt.Errorf("offset %d: invalid hex escape", p.pos)
			}
			v, err := strconv.ParseUint(p.input[start:p.pos], 16, 8)
			if err != nil {
				return nil, err
			}
			out = append(out, byte(v))
		default:
			if e >= '0' && e <= '7' {
				start := p.pos - 1
				for p.pos < len(p.input) && p.pos-start < 3 && p.input[p.pos] >= '0' && p.input[p.pos] <= '7' {
					p.pos++
				}
				v, err := strconv.ParseUint(p.input[start:p.pos], 8, 8)
				if err != nil {
					return nil, err
				}
				out = append(out, byte(v))
			} else {
				return nil, fmt.Errorf("offset %d: invalid escape \\%c", p.pos, e)
			}
		}
	}
	return nil, fmt.Errorf("offset %d: unterminated string literal", p.pos)
}

func isHexByte(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// skipValue consumes an unknown field's value: either a braced message
// or a single scalar token.
func (p *textParser) skipValue() error {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return nil
	}
	switch p.peek() {
	case '{':
		depth := 0
		for p.pos < len(p.input) {
			switch p.peek() {
			case '{':
				depth++
				p.pos++
			case '}':
				depth--
				p.pos++
				if depth == 0 {
					return nil
				}
			case '"', '\'':
				if _, err := p.readQuoted(); err != nil {
					return err
				}
			default:
				p.pos++
			}
		}
		return fmt.Errorf("offset %d: unterminated message", p.pos)
	case '"', '\'':
		_, err := p.readBytes()
		return err
	default:
		_, err := p.readIdent()
		return err
	}
}
