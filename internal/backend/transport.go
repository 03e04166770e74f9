// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"helpdesk/cli/internal/logging"
)

// CredentialSource provides the persisted credential attached to outgoing requests.
// An empty credential means the request is sent without authorization.
type CredentialSource interface {
	LoadCredential() (string, error)
}

// RejectionFunc is invoked for every 401 or 403 response, before the response is
// handed back to the caller.
type RejectionFunc func(ctx context.Context, status int)

// HeaderRequestID carries a per-request id used to correlate client and server logs.
const HeaderRequestID = "X-Request-ID"

// authTransport decorates a RoundTripper with the credential behavior shared by
// every call: attach the bearer credential on the way out, report authorization
// failures on the way in.
type authTransport struct {
	next     http.RoundTripper
	creds    CredentialSource
	onReject RejectionFunc
	log      *logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if r.Header.Get(HeaderRequestID) == "" {
		r.Header.Set(HeaderRequestID, uuid.NewString())
	}

	if t.creds != nil {
		token, err := t.creds.LoadCredential()
		switch {
		case err != nil:
			t.log.Warn("could not read persisted credential; sending request without it", map[string]interface{}{
				"error": err.Error(),
			})
		case token != "":
			r.Header.Set("Authorization", "Bearer "+token)
		}
	}

	fields := map[string]interface{}{
		"method":     r.Method,
		"path":       r.URL.Path,
		"request_id": r.Header.Get(HeaderRequestID),
	}
	resp, err := t.next.RoundTrip(r)
	if err != nil {
		t.log.Debug("request failed", fields)
		return nil, err
	}
	fields["status"] = resp.StatusCode
	t.log.Debug("request completed", fields)

	if isRejection(resp.StatusCode) && t.onReject != nil {
		t.log.Info("authorization rejected by backend", fields)
		t.onReject(r.Context(), resp.StatusCode)
	}
	return resp, nil
}

func isRejection(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
