// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the helpdesk client.
// It implements sign-in, registration and the student, faculty and admin areas
// using the Cobra CLI framework. Every area command passes the route guard
// before it runs; output is rendered with pterm.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"helpdesk/cli/internal/config"
	"helpdesk/cli/internal/guard"
	"helpdesk/cli/internal/logging"
)

// annotationNoSession marks commands that run without credential storage or a session.
const annotationNoSession = "helpdesk/no-session"

var (
	verbose   bool
	configDir string

	// app is set by the root PersistentPreRunE for session-aware commands.
	app *application
	// loader is set for every command.
	loader *config.Loader
)

// rootCmd represents the base command when called without any subcommands.
// It opens the landing area of the signed-in user.
var rootCmd = &cobra.Command{
	Use:   "helpdesk",
	Short: "Helpdesk client for students, faculty and department heads",
	Long: `helpdesk signs you in to the helpdesk service and opens the area that matches
your role: students ask questions, faculty answer them, and heads of department
and deans see department-wide statistics.

Run without a subcommand to open your landing area.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return openArea(cmd.Context(), guard.Home)
	},
}

// setup loads configuration and, unless the command opts out, builds the
// application and restores the session.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	loader, err = config.NewLoader(configDir)
	if err != nil {
		return err
	}
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	log := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if !needsSession(cmd) {
		return nil
	}

	app, err = newApplication(cfg, log)
	if err != nil {
		return err
	}
	return app.store.Bootstrap(cmd.Context())
}

// needsSession reports whether cmd works on the session. Help, completion and
// commands annotated with annotationNoSession (or under one) do not.
func needsSession(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoSession] == "true" {
			return false
		}
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	if app != nil {
		app.close()
	}
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, logging.Mask(err.Error()))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Directory holding config.yaml (default: XDG config dir)")
}
