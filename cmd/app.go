// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"unicode"

	"github.com/pterm/pterm"

	"helpdesk/cli/internal/auth"
	"helpdesk/cli/internal/backend"
	"helpdesk/cli/internal/config"
	"helpdesk/cli/internal/guard"
	"helpdesk/cli/internal/keychain"
	"helpdesk/cli/internal/logging"
	"helpdesk/cli/internal/queries"
)

// application holds the dependencies shared by every command for one run.
type application struct {
	cfg     config.Config
	log     *logging.Logger
	keys    *keychain.Manager
	client  *backend.HTTP
	store   *auth.Store
	nav     *guard.Navigator
	queries *queries.Service

	unsubscribe func()
}

// newApplication wires storage, the authenticated client, the session store and
// the navigator. The client's rejection hook feeds the store, which publishes
// redirects on the navigator.
func newApplication(cfg config.Config, log *logging.Logger) (*application, error) {
	keys, err := keychain.Open(cfg.Keyring)
	if err != nil {
		return nil, fmt.Errorf("open credential storage: %w", err)
	}

	a := &application{cfg: cfg, log: log, keys: keys, nav: guard.NewNavigator()}
	a.client = backend.New(cfg.BaseURL, cfg.Endpoints,
		backend.WithCredentials(keys),
		backend.WithRejectionHandler(a.onRejected),
		backend.WithTimeout(cfg.Timeout),
		backend.WithLogger(log),
	)
	a.store = auth.NewStore(keys, a.client,
		auth.WithLogger(log),
		auth.WithRedirector(a.nav),
	)
	a.queries = queries.NewService(a.client, a.store)
	a.unsubscribe = a.nav.Subscribe(printNavigation)
	return a, nil
}

func (a *application) onRejected(ctx context.Context, status int) {
	a.store.HandleRejection(ctx, status)
}

// close detaches the navigation printer and disposes of the session store.
func (a *application) close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	_ = a.store.Close()
}

// printNavigation renders navigation events published by the session layer
// and the guard.
func printNavigation(ev guard.Event) {
	switch ev.To {
	case guard.Login:
		msg := "You are not signed in."
		if ev.Reason != "" {
			msg = capitalize(ev.Reason) + "."
		}
		pterm.Warning.Println(msg)
		pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprint("→ Run 'helpdesk login' to continue"))
	default:
		line := fmt.Sprintf("→ Opening the %s area", ev.To.Title())
		if ev.Reason != "" {
			line += " (" + ev.Reason + ")"
		}
		pterm.Println(pterm.NewStyle(pterm.FgLightCyan).Sprint(line))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return string(unicode.ToUpper(r[0])) + string(r[1:])
}
