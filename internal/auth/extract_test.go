// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"helpdesk/cli/internal/backend"
)

func TestExtractCredential(t *testing.T) {
	long := strings.Repeat("x", 21)
	cases := []struct {
		name   string
		body   string
		header string
		want   string
		source string
	}{
		{"accessToken field", `{"accessToken":"abc","message":"ok"}`, "", "abc", "body"},
		{"token before jwt", `{"jwt":"second","token":"first"}`, "", "first", "body"},
		{"snake case", `{"access_token":"snake"}`, "", "snake", "body"},
		{"body wins over header", `{"token":"body"}`, "Bearer head", "body", "body"},
		{"header only", `{"message":"ok"}`, "Bearer xyz123", "xyz123", "header"},
		{"raw string body", long, "", long, "raw body"},
		{"quoted string body", `"` + long + `"`, "", long, "raw body"},
		{"short raw body", "Login successful", "", "", ""},
		{"non-bearer header", `{}`, "Basic abc", "", ""},
		{"empty field falls through", `{"token":""}`, "Bearer h", "h", "header"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := &backend.LoginResponse{Status: http.StatusOK, Header: http.Header{}, Body: []byte(tc.body)}
			if tc.header != "" {
				resp.Header.Set("Authorization", tc.header)
			}
			got, source := ExtractCredential(resp, DefaultExtractors())
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.source, source)
		})
	}
}

func TestExtractCredential_CustomOrder(t *testing.T) {
	resp := &backend.LoginResponse{Header: http.Header{"Authorization": {"Bearer head"}}, Body: []byte(`{"token":"body"}`)}
	extractors := DefaultExtractors()
	reversed := []Extractor{extractors[2], extractors[0]}
	got, source := ExtractCredential(resp, reversed)
	assert.Equal(t, "head", got)
	assert.Equal(t, "header", source)
}
