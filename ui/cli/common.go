// Copyright (c) 2026 Leasemaster Team
// Leasemaster - vehicle leasing management system
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toeirei/leasemaster/internal/i18n"
	"github.com/toeirei/leasemaster/internal/model"
	"github.com/toeirei/leasemaster/internal/ui"
)

// idArg parses the positional row id of update, delete and show commands.
func idArg(args []string) (int64, error) {
	return model.ParseID("id", args[0])
}

// changedString returns the flag value when the operator set it.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// changedParsed parses a flag value when the operator set it.
func changedParsed[T any](cmd *cobra.Command, name, field string, parse func(field, raw string) (T, error)) (*T, error) {
	raw := changedString(cmd, name)
	if raw == nil {
		return nil, nil
	}
	v, err := parse(field, *raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func printAdded(cmd *cobra.Command, entity string, id int64) {
	fmt.Fprintln(cmd.OutOrStdout(), i18n.T("result.added", i18n.T("entity."+entity), id))
}

func printChanged(cmd *cobra.Command, key, entity string, id int64, ok bool) error {
	if err := ui.NotFound(ok, entity, id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), i18n.T(key, i18n.T("entity."+entity), id))
	return nil
}

func printUpdated(cmd *cobra.Command, entity string, id int64, ok bool) error {
	return printChanged(cmd, "result.updated", entity, id, ok)
}

func printDeleted(cmd *cobra.Command, entity string, id int64, ok bool) error {
	return printChanged(cmd, "result.deleted", entity, id, ok)
}

// requireFlags marks flags as required and panics on an unknown name.
func requireFlags(cmd *cobra.Command, names ...string) {
	for _, n := range names {
		if err := cmd.MarkFlagRequired(n); err != nil {
			panic(err)
		}
	}
}
