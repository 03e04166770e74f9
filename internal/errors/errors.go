// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure the session layer and the authenticated client can produce carries
// a machine-readable Kind, a human-friendly message and, optionally, the wrapped
// cause. Callers branch on the Kind with errors.Is or KindOf rather than on text.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// MalformedCredential indicates a stored or received token that cannot be decoded.
	MalformedCredential Kind = "malformed_credential"
	// ExpiredCredential indicates a decodable token that is past its expiry.
	ExpiredCredential Kind = "expired_credential"
	// NoCredentialIssued indicates a successful login response without a usable token.
	NoCredentialIssued Kind = "no_credential_issued"
	// Unauthorized indicates a 401 or 403 from the backing service.
	Unauthorized Kind = "unauthorized"
	// RequestFailed covers any other network or server-side validation failure.
	RequestFailed Kind = "request_failed"
	// InvalidInput indicates input rejected locally before any request was sent.
	InvalidInput Kind = "invalid_input"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	// Status is the HTTP status that produced the error, zero when none.
	Status int
	Err    error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

// Is reports whether target is an *E of the same Kind, so sentinel values such as
// New(Unauthorized, "") match any error of that kind.
func (e *E) Is(target error) bool {
	t, ok := target.(*E)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// WithStatus returns a copy of e carrying the given HTTP status.
func (e *E) WithStatus(status int) *E {
	c := *e
	c.Status = status
	return &c
}

// KindOf returns the Kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// MessageOf returns the human-friendly message of the first *E in err's chain,
// falling back to err.Error().
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var e *E
	if stderrors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
