// Package main is the entry point for the helpdesk CLI application.
package main

import (
	"helpdesk/cli/cmd"
)

// main is the entry point for the helpdesk CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
