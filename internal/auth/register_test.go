// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "helpdesk/cli/internal/errors"
	"helpdesk/cli/internal/keychain"
)

func TestRegister_Defaults(t *testing.T) {
	api := &fakeAPI{}
	s := NewStore(keychain.NewMemory(), api, WithClock(clock))

	err := s.Register(context.Background(), Profile{Name: "Ana", Email: "ana.k@uni.edu", Password: "secret"})
	require.NoError(t, err)
	require.Len(t, api.registered, 1)
	assert.Equal(t, "ana.k", api.registered[0].Username)
	assert.Equal(t, "STUDENT", api.registered[0].Role)
	assert.Nil(t, s.Session(), "register never signs in")
}

func TestRegister_NormalizesRole(t *testing.T) {
	api := &fakeAPI{}
	s := NewStore(keychain.NewMemory(), api, WithClock(clock))

	require.NoError(t, s.Register(context.Background(), Profile{
		Name: "Dr. Ray", Email: "ray@uni.edu", Username: "ray", Password: "pw", Role: "role_dean",
	}))
	assert.Equal(t, "DEAN", api.registered[0].Role)
	assert.Equal(t, "ray", api.registered[0].Username)
}

func TestRegister_InvalidInput(t *testing.T) {
	api := &fakeAPI{}
	s := NewStore(keychain.NewMemory(), api, WithClock(clock))

	err := s.Register(context.Background(), Profile{Name: " ", Email: "nope", Password: "pw", Role: "ADMIN"})
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
	assert.Empty(t, api.registered, "nothing sent")
}

func TestRegister_ConfirmPasswordMismatch(t *testing.T) {
	api := &fakeAPI{}
	s := NewStore(keychain.NewMemory(), api, WithClock(clock))

	err := s.Register(context.Background(), Profile{
		Name: "Ana", Email: "ana@uni.edu", Password: "one", ConfirmPassword: "two",
	})
	require.Error(t, err)
	assert.Contains(t, apperr.MessageOf(err), "must match password")
	assert.Empty(t, api.registered)
}
