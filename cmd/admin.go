// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/spf13/cobra"

	"helpdesk/cli/internal/backend"
	"helpdesk/cli/internal/guard"
	"helpdesk/cli/internal/queries"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Open the department overview (heads of department and deans)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return openArea(cmd.Context(), guard.Admin)
	},
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show total, pending and resolved query counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		qs, ok, err := loadAdminQueries(cmd)
		if !ok || err != nil {
			return err
		}
		renderStats(queries.Summarize(qs))
		return nil
	},
}

var adminQueriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List every department query",
	RunE: func(cmd *cobra.Command, args []string) error {
		qs, ok, err := loadAdminQueries(cmd)
		if !ok || err != nil {
			return err
		}
		renderQueries("All queries", qs)
		return nil
	},
}

func loadAdminQueries(cmd *cobra.Command) ([]backend.Query, bool, error) {
	ok, err := requireArea(cmd.Context(), guard.Admin)
	if !ok || err != nil {
		return nil, false, err
	}
	var qs []backend.Query
	err = withSpinner("Loading department queries", func() error {
		var err error
		qs, err = app.queries.School(cmd.Context())
		return err
	})
	if err != nil {
		return nil, false, fail("loading department queries", err)
	}
	return qs, true, nil
}

func init() {
	adminCmd.AddCommand(adminStatsCmd, adminQueriesCmd)
	rootCmd.AddCommand(adminCmd)
}
