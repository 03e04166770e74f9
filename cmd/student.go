// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"helpdesk/cli/internal/backend"
	"helpdesk/cli/internal/guard"
	"helpdesk/cli/internal/terminal"
)

var (
	askSubject string
	askContent string
)

var studentCmd = &cobra.Command{
	Use:   "student",
	Short: "Open the student area: your queries and their answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return openArea(cmd.Context(), guard.Student)
	},
}

var studentQueriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List the queries you have asked",
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := requireArea(cmd.Context(), guard.Student)
		if !ok || err != nil {
			return err
		}
		var qs []backend.Query
		err = withSpinner("Loading your queries", func() error {
			var err error
			qs, err = app.queries.Mine(cmd.Context())
			return err
		})
		if err != nil {
			return fail("loading your queries", err)
		}
		renderQueries("My queries", qs)
		return nil
	},
}

var studentAskCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a new query",
	Long: `Submit a new query to your department. Subject and content are prompted
for when not given as flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := requireArea(cmd.Context(), guard.Student)
		if !ok || err != nil {
			return err
		}

		if askSubject == "" && terminal.IsInteractive() {
			if askSubject, err = terminal.ReadLine(os.Stdin, "Subject: "); err != nil {
				return err
			}
		}
		if askContent == "" && terminal.IsInteractive() {
			if askContent, err = terminal.ReadLine(os.Stdin, "Question: "); err != nil {
				return err
			}
		}

		var q *backend.Query
		err = withSpinner("Submitting your query", func() error {
			var err error
			q, err = app.queries.Ask(cmd.Context(), askSubject, askContent)
			return err
		})
		if err != nil {
			return fail("submitting your query", err)
		}
		pterm.Success.Printf("Query submitted (id %s)\n", q.ID)
		return nil
	},
}

func init() {
	studentAskCmd.Flags().StringVarP(&askSubject, "subject", "s", "", "Query subject")
	studentAskCmd.Flags().StringVarP(&askContent, "content", "c", "", "Query text")
	studentCmd.AddCommand(studentQueriesCmd, studentAskCmd)
	rootCmd.AddCommand(studentCmd)
}
