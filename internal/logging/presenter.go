// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	apperr "helpdesk/cli/internal/errors"
)

// PresentError formats an error for user display with masking.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
}

// FormatFailure renders a failure from the session layer or the backend in a
// user-friendly way. The action names what the user was doing, e.g. "logging in".
func FormatFailure(action string, err error) string {
	var b strings.Builder

	msg := Mask(apperr.MessageOf(err))
	switch apperr.KindOf(err) {
	case apperr.Unauthorized:
		b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Not authorized"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("The helpdesk service rejected the request while %s.\n", action))
		b.WriteString("Your session has been cleared. This usually means:\n")
		b.WriteString("  • Your session expired\n")
		b.WriteString("  • Your account cannot access this area\n")
		b.WriteString("\n")
		b.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Please run 'helpdesk login' and try again"))

	case apperr.NoCredentialIssued:
		b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Login incomplete"))
		b.WriteString("\n\n")
		b.WriteString("The server accepted the login but did not issue a token\n")
		b.WriteString("in the response body or the Authorization header.\n")
		b.WriteString("\n")
		b.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Check that base_url points at the helpdesk API"))

	case apperr.MalformedCredential, apperr.ExpiredCredential:
		b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Unusable credential"))
		b.WriteString("\n\n")
		b.WriteString(msg)
		b.WriteString("\n\n")
		b.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Please run 'helpdesk login' again"))

	case apperr.InvalidInput:
		b.WriteString(pterm.NewStyle(pterm.FgYellow, pterm.Bold).Sprint("Invalid input"))
		b.WriteString("\n\n")
		b.WriteString(msg)

	default:
		b.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprintf("Failed %s", action))
		b.WriteString("\n\n")
		if msg == "" {
			msg = "The request failed."
		}
		b.WriteString(msg)
	}

	b.WriteString("\n")
	return b.String()
}

// PresentFailure displays a formatted failure.
func PresentFailure(action string, err error) {
	pterm.Println()
	pterm.Println(FormatFailure(action, err))
}
