// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package schema defines the pipeline's internal column-schema model:
// named columns with logical dtypes, tags, free-form properties, and
// list/raggedness flags.
package schema

import "fmt"

// DType is the logical element type of a column. It is a closed
// enumeration; classification into a numeric family happens once, at the
// model boundary, rather than being inferred downstream.
type DType int

const (
	// DTypeUnknown is the zero value and classifies as no known family.
	DTypeUnknown DType = iota

	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64

	Float16
	Float32
	Float64

	String
	Bool
)

// Family groups dtypes by how they map onto the wire schema's typed
// domains.
type Family int

const (
	// UnsupportedFamily marks dtype values outside the closed enumeration.
	UnsupportedFamily Family = iota
	// IntFamily covers signed and unsigned integers, including
	// categorical-coded integers.
	IntFamily
	// FloatFamily covers floating-point dtypes.
	FloatFamily
	// NoFamily covers recognized dtypes with no typed wire domain
	// (strings, booleans). These carry no type on the wire.
	NoFamily
)

var dtypeNames = map[DType]string{
	DTypeUnknown: "unknown",
	Int8:         "int8",
	Int16:        "int16",
	Int32:        "int32",
	Int64:        "int64",
	UInt8:        "uint8",
	UInt16:       "uint16",
	UInt32:       "uint32",
	UInt64:       "uint64",
	Float16:      "float16",
	Float32:      "float32",
	Float64:      "float64",
	String:       "string",
	Bool:         "bool",
}

// String returns the lowercase dtype name, e.g. "int64".
func (d DType) String() string {
	if name, ok := dtypeNames[d]; ok {
		return name
	}
	return fmt.Sprintf("dtype(%d)", int(d))
}

// ParseDType resolves a dtype from its string name.
func ParseDType(name string) (DType, error) {
	for d, n := range dtypeNames {
		if n == name && d != DTypeUnknown {
			return d, nil
		}
	}
	return DTypeUnknown, fmt.Errorf("unknown dtype name: %q", name)
}

// Family classifies the dtype. DTypeUnknown and out-of-range values
// classify as UnsupportedFamily.
func (d DType) Family() Family {
	switch d {
	case Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64:
		return IntFamily
	case Float16, Float32, Float64:
		return FloatFamily
	case String, Bool:
		return NoFamily
	default:
		return UnsupportedFamily
	}
}

// DTypeNames returns the names of all valid dtypes, in a stable order.
func DTypeNames() []string {
	ordered := []DType{
		Int8, Int16, Int32, Int64,
		UInt8, UInt16, UInt32, UInt64,
		Float16, Float32, Float64,
		String, Bool,
	}
	names := make([]string, len(ordered))
	for i, d := range ordered {
		names[i] = d.String()
	}
	return names
}
