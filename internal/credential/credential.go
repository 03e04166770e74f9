// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package credential decodes the bearer token issued by the helpdesk identity
// service into claims. Decoding is local and never verifies the signature: the
// backing service is the authority on trust, the client only needs the identity,
// the role fields and the expiry.
package credential

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperr "helpdesk/cli/internal/errors"
	"helpdesk/cli/internal/role"
)

// ErrMalformed is returned when a token cannot be decoded.
var ErrMalformed = apperr.New(apperr.MalformedCredential, "credential is not a well-formed token")

// Claims is the decoded payload of a credential.
type Claims struct {
	Subject string
	Email   string
	// ExpiresAt is zero when the token carries no exp claim.
	ExpiresAt time.Time
	IssuedAt  time.Time
	Role      role.Claim
	// Raw holds every decoded claim.
	Raw map[string]any
}

// Identity returns the subject, falling back to the email claim.
func (c Claims) Identity() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.Email
}

// Decode parses a token without verifying its signature.
func Decode(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrMalformed
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	tok, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	// The claims are already decoded when only the alg header is missing or unknown.
	if err != nil && !(errors.Is(err, jwt.ErrTokenUnverifiable) && tok != nil) {
		return Claims{}, apperr.Wrap(apperr.MalformedCredential, "credential is not a well-formed token", err)
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrMalformed
	}

	c := Claims{Raw: map[string]any(mc), Role: role.Decode(mc)}
	c.Subject, _ = mc.GetSubject()
	if email, ok := mc["email"].(string); ok {
		c.Email = email
	}

	exp, err := mc.GetExpirationTime()
	if err != nil {
		return Claims{}, apperr.Wrap(apperr.MalformedCredential, "credential has an invalid exp claim", err)
	}
	if exp != nil {
		c.ExpiresAt = exp.Time
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}
	return c, nil
}

// IsExpired reports whether the claims are expired at now. Expiry is exclusive:
// a token whose expiry equals now is already expired. Tokens without exp never expire.
func IsExpired(c Claims, now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(c.ExpiresAt)
}

// Lifetime returns how long the claims remain valid at now, zero when expired.
// The second result is false for tokens without an expiry.
func Lifetime(c Claims, now time.Time) (time.Duration, bool) {
	if c.ExpiresAt.IsZero() {
		return 0, false
	}
	if IsExpired(c, now) {
		return 0, true
	}
	return c.ExpiresAt.Sub(now), true
}
