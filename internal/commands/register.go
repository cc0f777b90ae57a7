// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/dacolabs/schemaio/internal/session"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "schemaio",
		Short: "Manage and translate tabular column schemas",
		Long: `schemaio manages a tabular dataset's column schema and translates it
between the internal column-schema model and the interchange wire format
(proto-text, JSON, or binary).`,
	}

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newVersionCmd())
	registerColumnsCmd(rootCmd)

	return rootCmd
}

func registerColumnsCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "columns",
		Short:             "Manage schema columns",
		PersistentPreRunE: session.PreRunLoad,
	}

	cmd.AddCommand(newColumnsListCmd())
	cmd.AddCommand(newColumnsAddCmd())
	cmd.AddCommand(newColumnsRemoveCmd())

	parent.AddCommand(cmd)
}
