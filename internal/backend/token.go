// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"net/http"
	"strings"
)

// ParseBearerToken extracts token from a value like "Bearer <token>" case-insensitively.
// Returns the token string without the "Bearer " prefix, or empty string if invalid format.
func ParseBearerToken(value string) string {
	v := strings.TrimSpace(value)
	if len(v) < 7 || !strings.EqualFold(v[:6], "bearer") {
		return ""
	}
	// "Bearer" must be followed by whitespace, not glued to the token
	if v[6] != ' ' && v[6] != '\t' {
		return ""
	}
	return strings.TrimSpace(v[6:])
}

// BearerFromHeader returns the bearer token carried by the Authorization header.
// Header lookup is case-insensitive; every Authorization value is tried in order.
func BearerFromHeader(h http.Header) string {
	for k, vals := range h {
		if !strings.EqualFold(k, "authorization") {
			continue
		}
		for _, v := range vals {
			if t := ParseBearerToken(v); t != "" {
				return t
			}
		}
	}
	return ""
}
