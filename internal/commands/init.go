// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dacolabs/schemaio/internal/config"
	"github.com/dacolabs/schemaio/internal/prompts"
	"github.com/dacolabs/schemaio/internal/schemafile"
	"github.com/dacolabs/schemaio/internal/session"
	"github.com/dacolabs/schemaio/internal/tfmd"
)

type initOptions struct {
	path   string
	format string
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a schemaio project in the current directory",
		Long: `Initialize a schemaio project: write schemaio.yaml and an empty
schema file in the configured schema directory.`,
		Example: `  # Initialize with defaults (schema.pbtxt in the current directory)
  schemaio init

  # Keep the schema under a subdirectory, encoded as JSON
  schemaio init --path schemas --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.path, "path", "p", ".", "Schema directory, relative to schemaio.yaml")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "pbtxt", "Schema encoding (pbtxt, json, binary)")

	return cmd
}

func runInit(opts *initOptions) error {
	if _, err := os.Stat(session.ConfigFileName); err == nil {
		return fmt.Errorf("%s already exists", session.ConfigFileName)
	}

	codec, err := schemafile.ForName(opts.format)
	if err != nil {
		return err
	}

	cfg := config.Default()
	cfg.Path = opts.path
	cfg.Format = opts.format
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(opts.path, 0o750); err != nil {
		return fmt.Errorf("failed to create schema directory: %w", err)
	}

	schemaPath := filepath.Join(opts.path, "schema"+codec.Extension())
	if _, err := os.Stat(schemaPath); os.IsNotExist(err) {
		if err := codec.WriteFile(&tfmd.Schema{}, schemaPath); err != nil {
			return fmt.Errorf("failed to write schema file: %w", err)
		}
	}

	if err := cfg.Save(session.ConfigFileName); err != nil {
		return fmt.Errorf("failed to write %s: %w", session.ConfigFileName, err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Config", Value: session.ConfigFileName},
		{Label: "Schema", Value: schemaPath},
		{Label: "Format", Value: codec.Name()},
	}, "Project initialized.")

	return nil
}
