// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dacolabs/schemaio/internal/config"
	"github.com/dacolabs/schemaio/internal/convert"
	"github.com/dacolabs/schemaio/internal/schema"
	"github.com/dacolabs/schemaio/internal/schemafile"
)

var (
	// ErrNotInitialized indicates no schemaio.yaml was found in the current directory.
	ErrNotInitialized = errors.New("not in a schemaio project (schemaio.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSchemaNotFound indicates no schema file exists in the configured directory.
	ErrSchemaNotFound = errors.New("schema file not found")

	// ErrInvalidSchema indicates the schema file exists but couldn't be parsed.
	ErrInvalidSchema = errors.New("invalid schema")
)

// ConfigFileName is the name of the schemaio configuration file.
const ConfigFileName = "schemaio.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved project configuration and the loaded schema
// in both representations.
type Context struct {
	// Config is the parsed project configuration.
	Config *config.Config

	// SchemaPath is the path of the schema file that was loaded.
	SchemaPath string

	// Codec is the codec that decoded SchemaPath.
	Codec schemafile.Codec

	// Columns is the internal column-schema view of the loaded schema.
	Columns *schema.Schema
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the schemaio Context stored in it.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(cwd, ConfigFileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return nil, ErrNotInitialized
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}

	schemaDir := cfg.Path
	if !filepath.IsAbs(schemaDir) {
		schemaDir = filepath.Join(cwd, schemaDir)
	}

	schemaPath, codec := findSchemaFile(schemaDir)
	if schemaPath == "" {
		return nil, fmt.Errorf("%w: no schema.pbtxt, schema.json, or schema.pb in %s", ErrSchemaNotFound, schemaDir)
	}

	wire, err := codec.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	columns, err := convert.ToSchema(wire)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	sessCtx := &Context{
		Config:     cfg,
		SchemaPath: schemaPath,
		Codec:      codec,
		Columns:    columns,
	}

	return context.WithValue(ctx, contextKey{}, sessCtx), nil
}

// SaveSchema converts the internal schema back to its wire form and
// writes it to the path it was loaded from.
func (c *Context) SaveSchema() error {
	wire, err := convert.FromSchema(c.Columns)
	if err != nil {
		return err
	}
	return c.Codec.WriteFile(wire, c.SchemaPath)
}

// findSchemaFile looks for a schema file in the given directory, trying
// each codec's conventional filename.
func findSchemaFile(dir string) (string, schemafile.Codec) {
	for _, codec := range schemafile.Codecs() {
		path := filepath.Join(dir, "schema"+codec.Extension())
		if _, err := os.Stat(path); err == nil {
			return path, codec
		}
	}
	return "", schemafile.Codec{}
}

// From extracts the schemaio Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if sessCtx, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sessCtx
	}
	return nil
}
