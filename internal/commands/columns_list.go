// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dacolabs/schemaio/internal/schema"
	"github.com/dacolabs/schemaio/internal/session"
)

func newColumnsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all columns in the schema",
		Example: `  # List columns
  schemaio columns list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return renderColumns(ctx.Columns)
		},
	}
}

func renderColumns(s *schema.Schema) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Name", "DType", "Tags", "List", "Ragged", "Domain"})

	for _, col := range s.Columns() {
		tags := make([]string, len(col.Tags))
		for i, tag := range col.Tags {
			tags[i] = string(tag)
		}

		domain := ""
		if d, ok := col.Properties[schema.PropertyDomain].(map[string]any); ok {
			domain = fmt.Sprintf("[%v, %v]", d["min"], d["max"])
		}

		t.AppendRow(table.Row{
			col.Name,
			col.DType.String(),
			strings.Join(tags, ", "),
			col.IsList,
			col.IsRagged,
			domain,
		})
	}

	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}
