// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dacolabs/schemaio/internal/prompts"
	"github.com/dacolabs/schemaio/internal/session"
)

func newColumnsRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a column from the schema",
		Args:  cobra.ExactArgs(1),
		Example: `  # Remove the "item_id" column
  schemaio columns remove item_id`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runColumnsRemove(ctx, args[0])
		},
	}
	return cmd
}

func runColumnsRemove(ctx *session.Context, name string) error {
	if !ctx.Columns.RemoveColumn(name) {
		return fmt.Errorf("column %q not found", name)
	}
	if err := ctx.SaveSchema(); err != nil {
		return fmt.Errorf("failed to save schema: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Column", Value: name},
	}, fmt.Sprintf("Column %q removed.", name))

	return nil
}
