// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package convert

import (
	"fmt"

	"github.com/dacolabs/schemaio/internal/schema"
)

// UnsupportedTypeError reports a column whose dtype cannot be classified
// for wire conversion. The whole conversion is aborted; there is no
// partial-schema recovery.
type UnsupportedTypeError struct {
	Column string
	DType  schema.DType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("column %q: unsupported dtype %s", e.Column, e.DType)
}

// MalformedExtensionError reports a feature whose annotation carries
// more than one untyped extension entry, which makes the property
// payload ambiguous.
type MalformedExtensionError struct {
	Feature string
	Entries int
}

func (e *MalformedExtensionError) Error() string {
	return fmt.Sprintf("%s: extra_metadata should have exactly one entry, has %d", e.Feature, e.Entries)
}
