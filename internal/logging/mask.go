// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides diagnostic logging, secret masking and the
// user-facing presentation of failures.
//
// Diagnostics go through a zerolog-backed Logger written to stderr; anything
// shown to the user goes through pterm. Bearer credentials, passwords and
// JWT-shaped strings are masked before they reach either.
package logging

import (
	"regexp"
)

var (
	rePassword = regexp.MustCompile(`(?i)("?password"?\s*[=:]\s*"?)([^\s;,"]+)`)
	reToken    = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._~+/=-]+)`)
	reJWT      = regexp.MustCompile(`eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*`)
	reAPIKey   = regexp.MustCompile(`(?i)(apikey=|api_key=)([^\s;]+)`)
)

// Mask replaces sensitive values in the input string with "***".
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reJWT.ReplaceAllString(out, "***")
	out = reAPIKey.ReplaceAllString(out, "$1***")
	return out
}
