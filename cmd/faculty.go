package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"helpdesk/cli/internal/backend"
	"helpdesk/cli/internal/guard"
	"helpdesk/cli/internal/queries"
	"helpdesk/cli/internal/terminal"
)

var (
	answerText   string
	answerAuthor string
	listAll      bool
)

var facultyCmd = &cobra.Command{
	Use:   "faculty",
	Short: "Open the faculty area: pending and answered department queries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return openArea(cmd.Context(), guard.Faculty)
	},
}

var facultyQueriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List department queries waiting for an answer",
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := requireArea(cmd.Context(), guard.Faculty)
		if !ok || err != nil {
			return err
		}
		var qs []backend.Query
		err = withSpinner("Loading department queries", func() error {
			var err error
			qs, err = app.queries.School(cmd.Context())
			return err
		})
		if err != nil {
			return fail("loading department queries", err)
		}
		if listAll {
			renderQueries("Department queries", qs)
			return nil
		}
		pending, _ := queries.Split(qs)
		renderQueries("Pending", pending)
		return nil
	},
}

var facultyAnswerCmd = &cobra.Command{
	Use:   "answer <id>",
	Short: "Answer a department query",
	Long: `Answer the query with the given id. The answer is prompted for when not given
as a flag. --name sets the name shown to the student and defaults to the
signed-in identity.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := requireArea(cmd.Context(), guard.Faculty)
		if !ok || err != nil {
			return err
		}

		if answerText == "" && terminal.IsInteractive() {
			if answerText, err = terminal.ReadLine(os.Stdin, "Answer: "); err != nil {
				return err
			}
		}

		var q *backend.Query
		err = withSpinner("Sending your answer", func() error {
			var err error
			q, err = app.queries.Answer(cmd.Context(), backend.QueryID(args[0]), answerText, answerAuthor)
			return err
		})
		if err != nil {
			return fail("answering the query", err)
		}
		pterm.Success.Printf("Query %s answered as %s\n", q.ID, q.FacultyName)
		return nil
	},
}

func init() {
	facultyQueriesCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include answered queries")
	facultyAnswerCmd.Flags().StringVar(&answerText, "answer", "", "Answer text")
	facultyAnswerCmd.Flags().StringVar(&answerAuthor, "name", "", "Name shown with the answer (default: signed-in identity)")
	facultyCmd.AddCommand(facultyQueriesCmd, facultyAnswerCmd)
	rootCmd.AddCommand(facultyCmd)
}
