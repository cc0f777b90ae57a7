// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dacolabs/schemaio/internal/prompts"
	"github.com/dacolabs/schemaio/internal/schema"
	"github.com/dacolabs/schemaio/internal/session"
)

type columnsAddOptions struct {
	name      string
	dtype     string
	tags      string
	isList    bool
	isRagged  bool
	domainMin float64
	domainMax float64
}

func newColumnsAddCmd() *cobra.Command {
	opts := &columnsAddOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new column to the schema",
		Long:  `Add a new column to the schema, interactively or via flags.`,
		Example: `  # Interactive mode
  schemaio columns add

  # Non-interactive
  schemaio columns add -n item_id -t int32 --tags categorical,item_id --min 0 --max 100000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runColumnsAdd(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Column name")
	cmd.Flags().StringVarP(&opts.dtype, "dtype", "t", "", "Logical dtype (e.g. int64, float32, string)")
	cmd.Flags().StringVar(&opts.tags, "tags", "", "Tags, comma-separated")
	cmd.Flags().BoolVar(&opts.isList, "list", false, "Mark the column as list-valued")
	cmd.Flags().BoolVar(&opts.isRagged, "ragged", false, "Mark the column as a ragged list (implies --list)")
	cmd.Flags().Float64Var(&opts.domainMin, "min", 0, "Domain lower bound")
	cmd.Flags().Float64Var(&opts.domainMax, "max", 0, "Domain upper bound")

	return cmd
}

func runColumnsAdd(cmd *cobra.Command, ctx *session.Context, opts *columnsAddOptions) error {
	var col schema.ColumnSchema
	var err error

	if cmd.Flags().Changed("name") {
		col, err = columnFromFlags(cmd, ctx, opts)
	} else {
		col, err = prompts.RunColumnForm(ctx.Columns)
	}
	if err != nil {
		return err
	}

	ctx.Columns.AddColumn(col)
	if err := ctx.SaveSchema(); err != nil {
		return fmt.Errorf("failed to save schema: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Column", Value: col.Name},
		{Label: "DType", Value: col.DType.String()},
		{Label: "List", Value: strconv.FormatBool(col.IsList)},
	}, fmt.Sprintf("Column %q added.", col.Name))

	return nil
}

func columnFromFlags(cmd *cobra.Command, ctx *session.Context, opts *columnsAddOptions) (schema.ColumnSchema, error) {
	if _, exists := ctx.Columns.Column(opts.name); exists {
		return schema.ColumnSchema{}, fmt.Errorf("column %q already exists", opts.name)
	}

	dtype, err := schema.ParseDType(opts.dtype)
	if err != nil {
		return schema.ColumnSchema{}, err
	}

	var colOpts []schema.ColumnOption
	if opts.tags != "" {
		var tags []schema.Tag
		for _, t := range strings.Split(opts.tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, schema.Tag(t))
			}
		}
		colOpts = append(colOpts, schema.WithTags(tags...))
	}
	if opts.isRagged {
		colOpts = append(colOpts, schema.WithRagged())
	} else if opts.isList {
		colOpts = append(colOpts, schema.WithList())
	}

	col, err := schema.NewColumnSchema(opts.name, dtype, colOpts...)
	if err != nil {
		return schema.ColumnSchema{}, err
	}

	if cmd.Flags().Changed("min") || cmd.Flags().Changed("max") {
		col = col.WithDomain(opts.domainMin, opts.domainMax)
	}

	return col, nil
}
