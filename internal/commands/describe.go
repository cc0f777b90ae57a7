// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dacolabs/schemaio/internal/prompts"
	"github.com/dacolabs/schemaio/internal/session"
)

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show a summary of the project schema",
		Long: `Show a summary of the loaded schema: where it lives, how it is
encoded, and its columns.`,
		Example: `  # Describe the project schema
  schemaio describe`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runDescribe(ctx)
		},
	}
	return cmd
}

func runDescribe(ctx *session.Context) error {
	prompts.PrintResult([]prompts.ResultField{
		{Label: "Schema", Value: ctx.SchemaPath},
		{Label: "Format", Value: ctx.Codec.Name()},
		{Label: "Columns", Value: strconv.Itoa(ctx.Columns.Len())},
	}, "")

	return renderColumns(ctx.Columns)
}
