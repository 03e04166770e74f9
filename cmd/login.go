// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"helpdesk/cli/internal/auth"
	"helpdesk/cli/internal/guard"
	"helpdesk/cli/internal/role"
	"helpdesk/cli/internal/terminal"
)

var (
	loginEmail    string
	loginPassword string
	loginUsername string
)

// loginCmd signs in with email and password and stores the issued credential
// in the OS keychain.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"signin"},
	Short:   "Sign in with your email and password",
	Long: `The login command exchanges your email and password for a credential and stores
it in the OS keychain. Missing values are prompted for; the password is read
without echo.

If a valid session already exists, nothing is sent.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if sess := app.store.Session(); sess != nil {
			pterm.Printf("Already signed in as %s (%s)\n", sess.Identity(), sess.Role)
			pterm.Println("   Run 'helpdesk logout' first to switch accounts.")
			return nil
		}

		var err error
		if loginEmail == "" {
			if !terminal.IsInteractive() {
				return fmt.Errorf("--email is required: %w", terminal.ErrNotInteractive)
			}
			if loginEmail, err = terminal.ReadLine(os.Stdin, "Email: "); err != nil {
				return err
			}
		}
		if loginPassword == "" {
			const prompt = "Password: "
			if loginPassword, err = terminal.ReadSecret(prompt); err != nil {
				return fmt.Errorf("--password is required: %w", err)
			}
			terminal.ClearPreviousLines(len(prompt))
		}

		var extra map[string]any
		if loginUsername != "" {
			extra = map[string]any{"username": loginUsername}
		}

		var sess *auth.Session
		err = withSpinner("Signing in", func() error {
			var err error
			sess, err = app.store.Login(cmd.Context(), strings.TrimSpace(loginEmail), loginPassword, extra)
			return err
		})
		if err != nil {
			return fail("signing in", err)
		}
		showLoginGreeting(sess)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginUsername, "username", "", "Username sent instead of the email")
	rootCmd.AddCommand(loginCmd)
}

// showLoginGreeting displays who signed in and where their landing area is.
func showLoginGreeting(sess *auth.Session) {
	pterm.Success.Printf("Signed in as %s\n", sess.Identity())
	landing := guard.Landing(sess.Role)
	if sess.Role == role.Unknown || landing == guard.Login {
		pterm.Warning.Println("Your account has no recognized role; no area is available to it.")
		return
	}
	pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprintf("→ Role:    %s", sess.Role))
	pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprintf("→ Open your %s area with: helpdesk %s", landing.Title(), landing.Title()))
}
