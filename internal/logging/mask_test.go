// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"testing"
)

func TestMask(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Bearer header",
			input:    "Authorization: Bearer xyz123",
			expected: "Authorization: Bearer ***",
		},
		{
			name:     "Password parameter",
			input:    "password=secret123",
			expected: "password=***",
		},
		{
			name:     "Password in JSON payload",
			input:    `{"email":"a@b.com","password":"hunter2"}`,
			expected: `{"email":"a@b.com","password":"***"}`,
		},
		{
			name:     "Token",
			input:    "token=abc123xyz",
			expected: "token=***",
		},
		{
			name:     "Bare JWT",
			input:    "stored eyJhbGciOiJub25lIn0.eyJzdWIiOiJhIn0. in keyring",
			expected: "stored *** in keyring",
		},
		{
			name:     "API Key",
			input:    "apikey=sk_test_123456",
			expected: "apikey=***",
		},
		{
			name:     "Nothing to mask",
			input:    "GET /api/queries/student 200",
			expected: "GET /api/queries/student 200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Mask(tt.input)
			if result != tt.expected {
				t.Errorf("Mask() = %v, want %v", result, tt.expected)
			}
		})
	}
}
