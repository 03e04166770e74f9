// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"strings"

	"helpdesk/cli/internal/backend"
	"helpdesk/cli/internal/role"
	"helpdesk/cli/internal/validation"
)

// Profile is the data collected to create an account. ConfirmPassword, when
// set, must repeat Password; it is never sent.
type Profile struct {
	Name            string `json:"name" validate:"notblank"`
	Email           string `json:"email" validate:"required,email"`
	Username        string `json:"username"`
	Password        string `json:"password" validate:"notblank"`
	ConfirmPassword string `json:"-" validate:"omitempty,eqfield=Password"`
	Role            string `json:"role" validate:"omitempty,oneof=STUDENT FACULTY HOD DEAN"`
}

// normalized fills defaults: the username falls back to the email's local part
// and the role to STUDENT.
func (p Profile) normalized() Profile {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Username = strings.TrimSpace(p.Username)
	if p.Username == "" {
		if at := strings.Index(p.Email, "@"); at > 0 {
			p.Username = p.Email[:at]
		}
	}
	if p.Role == "" {
		p.Role = string(role.Student)
	} else if r := role.Parse(p.Role); r != role.Unknown {
		p.Role = string(r)
	}
	return p
}

// Register creates an account. It never signs the user in.
func (s *Store) Register(ctx context.Context, p Profile) error {
	p = p.normalized()
	if err := validation.Struct(p); err != nil {
		return err
	}
	return s.api.Register(ctx, backend.RegisterRequest{
		Name:     p.Name,
		Email:    p.Email,
		Username: p.Username,
		Password: p.Password,
		Role:     p.Role,
	})
}
