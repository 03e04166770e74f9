// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"helpdesk/cli/internal/auth"
	"helpdesk/cli/internal/terminal"
)

var profile auth.Profile

var registerCmd = &cobra.Command{
	Use:     "register",
	Aliases: []string{"signup"},
	Short:   "Create a helpdesk account",
	Long: `Create an account. The username defaults to the part of the email before '@'
and the role to STUDENT. Registration does not sign you in; run 'helpdesk login'
afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if terminal.IsInteractive() {
			if profile.Name == "" {
				if profile.Name, err = terminal.ReadLine(os.Stdin, "Full name: "); err != nil {
					return err
				}
			}
			if profile.Email == "" {
				if profile.Email, err = terminal.ReadLine(os.Stdin, "Email: "); err != nil {
					return err
				}
			}
			if profile.Password == "" {
				if profile.Password, err = terminal.ReadSecret("Password: "); err != nil {
					return err
				}
				if profile.ConfirmPassword, err = terminal.ReadSecret("Confirm password: "); err != nil {
					return err
				}
			}
		}

		err = withSpinner("Creating your account", func() error {
			return app.store.Register(cmd.Context(), profile)
		})
		if err != nil {
			return fail("registering", err)
		}
		pterm.Success.Println("Registration successful! Please sign in.")
		pterm.Println(fmt.Sprintf("   Run 'helpdesk login --email %s'", profile.Email))
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&profile.Name, "name", "", "Full name")
	registerCmd.Flags().StringVarP(&profile.Email, "email", "e", "", "Email")
	registerCmd.Flags().StringVar(&profile.Username, "username", "", "Username (default: email local part)")
	registerCmd.Flags().StringVarP(&profile.Password, "password", "p", "", "Password (prompted when omitted)")
	registerCmd.Flags().StringVar(&profile.Role, "role", "STUDENT", "STUDENT, FACULTY, HOD or DEAN")
	rootCmd.AddCommand(registerCmd)
}
