// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"bytes"
	"encoding/json"
	"strings"

	"helpdesk/cli/internal/backend"
)

// Extractor finds a credential in a login response. It returns "" when the
// response does not carry one in the place it looks.
type Extractor struct {
	Name    string
	Extract func(resp *backend.LoginResponse) string
}

// bodyFields are the JSON keys checked, in order, for a credential.
var bodyFields = []string{"token", "jwt", "accessToken", "access_token"}

// minRawTokenLen is the length a plain-text body must exceed to count as a credential.
const minRawTokenLen = 20

// DefaultExtractors returns the lookup order used by Login: JSON body fields,
// then a raw string body, then the Authorization response header.
func DefaultExtractors() []Extractor {
	return []Extractor{
		{Name: "body", Extract: fromBodyFields},
		{Name: "raw body", Extract: fromRawBody},
		{Name: "header", Extract: fromHeader},
	}
}

// ExtractCredential runs extractors in order; the first non-empty result wins.
// It returns the credential and the name of the extractor that found it.
func ExtractCredential(resp *backend.LoginResponse, extractors []Extractor) (string, string) {
	if resp == nil {
		return "", ""
	}
	for _, ex := range extractors {
		if token := strings.TrimSpace(ex.Extract(resp)); token != "" {
			return token, ex.Name
		}
	}
	return "", ""
}

func fromBodyFields(resp *backend.LoginResponse) string {
	var payload map[string]any
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return ""
	}
	for _, key := range bodyFields {
		if v, ok := payload[key].(string); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// fromRawBody accepts a body that is a bare string: either a JSON string
// literal or unquoted text.
func fromRawBody(resp *backend.LoginResponse) string {
	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 {
		return ""
	}
	var s string
	switch body[0] {
	case '"':
		if err := json.Unmarshal(body, &s); err != nil {
			return ""
		}
	case '{', '[':
		return ""
	default:
		s = string(body)
	}
	if len(s) <= minRawTokenLen || strings.ContainsAny(s, " \t\r\n") {
		return ""
	}
	return s
}

func fromHeader(resp *backend.LoginResponse) string {
	return backend.BearerFromHeader(resp.Header)
}
