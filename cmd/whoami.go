package cmd

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"helpdesk/cli/internal/credential"
	"helpdesk/cli/internal/guard"
)

// whoamiCmd shows the current session as decoded from the stored credential.
// It never calls the network.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Long: `The whoami command displays the identity and role carried by the stored
credential, how long it stays valid, and the area your role lands on.

Expired or unreadable credentials are removed when the CLI starts, so a missing
session here means you need to sign in again.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		sess := app.store.Session()
		if sess == nil {
			pterm.Println("🔒 You're not logged in yet!")
			pterm.Println("   Run 'helpdesk login' to get started.")
			return nil
		}

		data := pterm.TableData{
			{"Account", sess.Identity()},
			{"Role", sess.Role.String()},
			{"Area", guard.Landing(sess.Role).String()},
		}
		if left, ok := credential.Lifetime(sess.Claims, time.Now()); ok {
			data = append(data, []string{"Expires in", left.Round(time.Minute).String()})
		} else {
			data = append(data, []string{"Expires in", "never"})
		}
		if sess.Claims.Email != "" && sess.Claims.Email != sess.Identity() {
			data = append(data, []string{"Email", sess.Claims.Email})
		}
		return pterm.DefaultTable.WithData(data).Render()
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
