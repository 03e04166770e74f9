// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "helpdesk/cli/internal/errors"
)

type sample struct {
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"notblank,max=10"`
	Role    string `validate:"oneof=A B"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(sample{Email: "a@b.co", Subject: "hi", Role: "A"}))

	err := Struct(sample{Email: "nope", Subject: "   ", Role: "C"})
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
	msg := apperr.MessageOf(err)
	assert.Contains(t, msg, "email must be a valid email address")
	assert.Contains(t, msg, "subject is required")
	assert.Contains(t, msg, "role must be one of: A B")
}
