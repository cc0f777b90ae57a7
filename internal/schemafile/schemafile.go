// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package schemafile reads and writes wire schemas on disk in their
// proto-text, JSON, and binary encodings.
package schemafile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dacolabs/schemaio/internal/tfmd"
)

// DefaultFileName is the conventional name of the proto-text schema file
// inside a schema directory.
const DefaultFileName = "schema.pbtxt"

// InvalidDirectoryError reports a directory-level write whose target is
// not a directory.
type InvalidDirectoryError struct {
	Path string
}

func (e *InvalidDirectoryError) Error() string {
	return fmt.Sprintf("the path provided is not a valid directory: %s", e.Path)
}

// Codec encodes and decodes a wire schema in one on-disk format.
type Codec struct {
	name       string
	extensions []string
	marshal    func(*tfmd.Schema) ([]byte, error)
	unmarshal  func([]byte) (*tfmd.Schema, error)
}

var (
	// Text is the proto-text (.pbtxt) codec.
	Text = Codec{
		name:       "pbtxt",
		extensions: []string{".pbtxt", ".textproto", ".prototxt"},
		marshal: func(s *tfmd.Schema) ([]byte, error) {
			return []byte(tfmd.MarshalText(s)), nil
		},
		unmarshal: func(data []byte) (*tfmd.Schema, error) {
			return tfmd.UnmarshalText(string(data))
		},
	}
	// JSON is the proto-JSON codec.
	JSON = Codec{
		name:       "json",
		extensions: []string{".json"},
		marshal:    tfmd.MarshalJSON,
		unmarshal:  tfmd.UnmarshalJSON,
	}
	// Binary is the compact binary codec.
	Binary = Codec{
		name:       "binary",
		extensions: []string{".pb", ".bin"},
		marshal: func(s *tfmd.Schema) ([]byte, error) {
			return tfmd.Marshal(s), nil
		},
		unmarshal: tfmd.Unmarshal,
	}
)

// Name returns the codec's identifier, e.g. "pbtxt".
func (c Codec) Name() string { return c.name }

// Extension returns the codec's primary file extension.
func (c Codec) Extension() string { return c.extensions[0] }

// Codecs returns all codecs, in a stable order.
func Codecs() []Codec { return []Codec{Text, JSON, Binary} }

// ForName resolves a codec by its identifier.
func ForName(name string) (Codec, error) {
	for _, c := range Codecs() {
		if c.name == name {
			return c, nil
		}
	}
	return Codec{}, fmt.Errorf("unknown schema format: %s", name)
}

// ForPath resolves a codec from a file path's extension.
func ForPath(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, c := range Codecs() {
		for _, e := range c.extensions {
			if e == ext {
				return c, nil
			}
		}
	}
	return Codec{}, fmt.Errorf("cannot determine schema format from extension %q", ext)
}

// ReadFile decodes a wire schema from path using this codec.
func (c Codec) ReadFile(path string) (*tfmd.Schema, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is not a file: %s", path)
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	s, err := c.unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteFile encodes the schema to path using this codec.
func (c Codec) WriteFile(s *tfmd.Schema, path string) error {
	data, err := c.marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644) //nolint:gosec // schema files are not secrets
}

// ReadFile decodes a wire schema from path, picking the codec from the
// file extension.
func ReadFile(path string) (*tfmd.Schema, error) {
	c, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	return c.ReadFile(path)
}

// WriteFile encodes the schema to path, picking the codec from the file
// extension.
func WriteFile(s *tfmd.Schema, path string) error {
	c, err := ForPath(path)
	if err != nil {
		return err
	}
	return c.WriteFile(s, path)
}

// ReadTextDir decodes the proto-text schema stored in dir under
// filename; an empty filename means DefaultFileName.
func ReadTextDir(dir, filename string) (*tfmd.Schema, error) {
	if filename == "" {
		filename = DefaultFileName
	}
	return Text.ReadFile(filepath.Join(dir, filename))
}

// WriteTextDir encodes the schema in proto-text form into dir under
// filename; an empty filename means DefaultFileName. The target must be
// an existing directory.
func WriteTextDir(s *tfmd.Schema, dir, filename string) error {
	if filename == "" {
		filename = DefaultFileName
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return &InvalidDirectoryError{Path: dir}
	}
	return Text.WriteFile(s, filepath.Join(dir, filename))
}
