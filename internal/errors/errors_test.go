// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestE_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *E
		expected string
	}{
		{
			name:     "without cause",
			err:      New(NoCredentialIssued, "no token in response"),
			expected: "no_credential_issued: no token in response",
		},
		{
			name:     "with cause",
			err:      Wrap(RequestFailed, "login failed", io.ErrUnexpectedEOF),
			expected: "request_failed: login failed: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestE_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("fetch queries: %w", New(Unauthorized, "session expired").WithStatus(401))

	assert.True(t, stderrors.Is(err, New(Unauthorized, "")))
	assert.False(t, stderrors.Is(err, New(RequestFailed, "")))
	assert.Equal(t, Unauthorized, KindOf(err))
}

func TestE_Unwrap(t *testing.T) {
	err := Wrap(RequestFailed, "network", io.EOF)
	assert.ErrorIs(t, err, io.EOF)
}

func TestKindOf_Plain(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(io.EOF))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "", MessageOf(nil))
	assert.Equal(t, "Email already exists", MessageOf(New(RequestFailed, "Email already exists")))
	assert.Equal(t, "EOF", MessageOf(io.EOF))
}
