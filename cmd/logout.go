// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// logoutCmd clears the stored credential and the session. Running it while
// signed out is harmless.
var logoutCmd = &cobra.Command{
	Use:     "logout",
	Aliases: []string{"signout"},
	Short:   "Remove the saved credential",
	Long: `The logout command removes the credential from the OS keychain. The helpdesk
service keeps no client session, so nothing is sent over the network.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		wasSignedIn := app.store.Session() != nil
		if err := app.store.Logout(); err != nil {
			return fail("signing out", err)
		}
		if wasSignedIn {
			pterm.Success.Println("Logged out")
		} else {
			pterm.Println("No saved credential; nothing to do.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
