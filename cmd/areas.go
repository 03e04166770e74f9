// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"

	"helpdesk/cli/internal/backend"
	"helpdesk/cli/internal/guard"
	"helpdesk/cli/internal/queries"
)

// enter asks the guard about area and publishes any redirect on the navigator.
// It returns the area that should actually be shown.
func enter(ctx context.Context, area guard.Area) (guard.Area, error) {
	d := guard.Decide(app.store.State(), area)
	if d.Outcome == guard.Wait {
		if err := app.store.Bootstrap(ctx); err != nil {
			return "", err
		}
		d = guard.Decide(app.store.State(), area)
	}

	switch d.Outcome {
	case guard.RedirectLogin:
		reason := ""
		if area != guard.Home {
			reason = fmt.Sprintf("sign in to open the %s area", area.Title())
		}
		app.nav.RedirectToLogin(reason)
	case guard.RedirectLanding:
		reason := ""
		if area != guard.Home {
			reason = fmt.Sprintf("the %s area is not available to %s", area.Title(), app.store.Session().Role)
		}
		app.nav.Navigate(d.Target, reason)
	}
	app.log.Debug("guard decision", map[string]interface{}{
		"area":    area.String(),
		"outcome": d.Outcome.String(),
		"target":  d.Target.String(),
	})
	return d.Target, nil
}

// openArea passes area through the guard and renders whatever it lands on.
func openArea(ctx context.Context, area guard.Area) error {
	target, err := enter(ctx, area)
	if err != nil {
		return err
	}
	return renderArea(ctx, target)
}

// requireArea reports whether area may be used as is. When the guard redirects,
// the redirect target is rendered instead and false is returned.
func requireArea(ctx context.Context, area guard.Area) (bool, error) {
	target, err := enter(ctx, area)
	if err != nil {
		return false, err
	}
	if target == area {
		return true, nil
	}
	return false, renderArea(ctx, target)
}

func renderArea(ctx context.Context, area guard.Area) error {
	switch area {
	case guard.Student:
		return studentDashboard(ctx)
	case guard.Faculty:
		return facultyDashboard(ctx)
	case guard.Admin:
		return adminDashboard(ctx)
	case guard.Register:
		pterm.Println("Run 'helpdesk register' to create an account.")
		return nil
	default:
		// Login: the navigator has already told the user what to do.
		return errReported
	}
}

func header(title, subtitle string) {
	pterm.Println()
	pterm.Println(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(title))
	if subtitle != "" {
		pterm.Println(pterm.Gray(subtitle))
	}
	pterm.Println()
}

func studentDashboard(ctx context.Context) error {
	var qs []backend.Query
	err := withSpinner("Loading your queries", func() error {
		var err error
		qs, err = app.queries.Mine(ctx)
		return err
	})
	if err != nil {
		return fail("loading your queries", err)
	}
	header("My Queries", "Signed in as "+app.store.Session().Identity())
	pending, answered := queries.Split(qs)
	renderQueries("Waiting for an answer", pending)
	renderQueries("Answered", answered)
	pterm.Println(pterm.Gray("Ask a new question with: helpdesk student ask --subject ... --content ..."))
	return nil
}

func facultyDashboard(ctx context.Context) error {
	var qs []backend.Query
	err := withSpinner("Loading department queries", func() error {
		var err error
		qs, err = app.queries.School(ctx)
		return err
	})
	if err != nil {
		return fail("loading department queries", err)
	}
	header("Faculty Dashboard", "Signed in as "+app.store.Session().Identity())
	pending, answered := queries.Split(qs)
	renderQueries("Pending", pending)
	renderQueries("Answered", answered)
	pterm.Println(pterm.Gray("Answer a query with: helpdesk faculty answer <id> --answer ..."))
	return nil
}

func adminDashboard(ctx context.Context) error {
	var qs []backend.Query
	err := withSpinner("Loading department overview", func() error {
		var err error
		qs, err = app.queries.School(ctx)
		return err
	})
	if err != nil {
		return fail("loading the department overview", err)
	}
	header("Department Overview", "Head of Department / Dean")
	renderStats(queries.Summarize(qs))
	renderQueries("All queries", qs)
	return nil
}

func renderStats(s queries.Stats) {
	panels := pterm.Panels{{
		{Data: statBox("Total queries", s.Total, pterm.FgLightBlue)},
		{Data: statBox("Pending actions", s.Pending, pterm.FgYellow)},
		{Data: statBox("Resolved queries", s.Answered, pterm.FgGreen)},
	}}
	_ = pterm.DefaultPanel.WithPanels(panels).WithPadding(4).Render()
	pterm.Println()
}

func statBox(label string, n int, color pterm.Color) string {
	return pterm.DefaultBox.WithPadding(1).Sprint(
		pterm.NewStyle(color, pterm.Bold).Sprint(n) + "\n" + pterm.Gray(label),
	)
}
