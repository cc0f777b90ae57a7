// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dacolabs/schemaio/internal/prompts"
	"github.com/dacolabs/schemaio/internal/schemafile"
	"github.com/dacolabs/schemaio/internal/session"
)

type convertOptions struct {
	to     string
	output string
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	formats := make([]string, 0, len(schemafile.Codecs()))
	for _, c := range schemafile.Codecs() {
		formats = append(formats, c.Name())
	}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Re-encode the project schema in another format",
		Long: fmt.Sprintf(`Re-encode the project schema in another interchange format.

Available formats: %s`, strings.Join(formats, ", ")),
		Example: `  # Convert the project schema to JSON next to the original
  schemaio convert --to json

  # Convert to binary at an explicit path
  schemaio convert --to binary -o out/schema.pb`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runConvert(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.to, "to", "", fmt.Sprintf("Target format (%s)", strings.Join(formats, ", ")))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output path (default: schema file with the target extension)")

	if err := cmd.MarkFlagRequired("to"); err != nil {
		panic(err)
	}

	return cmd
}

func runConvert(ctx *session.Context, opts *convertOptions) error {
	target, err := schemafile.ForName(opts.to)
	if err != nil {
		return err
	}

	wire, err := ctx.Codec.ReadFile(ctx.SchemaPath)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		base := strings.TrimSuffix(ctx.SchemaPath, filepath.Ext(ctx.SchemaPath))
		output = base + target.Extension()
	}

	if err := target.WriteFile(wire, output); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Source", Value: ctx.SchemaPath},
		{Label: "Output", Value: output},
		{Label: "Format", Value: target.Name()},
	}, "Schema converted.")

	return nil
}
