// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package guard decides which areas of the client a session may open.
//
// Decide is pure: given an authorization snapshot and a target area it returns
// what to do, without side effects. Landing is the single mapping from a
// canonical role to its home area and is used both for "/" and for sending a
// signed-in user away from an area they may not open.
package guard

import (
	"fmt"
	"slices"
	"strings"

	"helpdesk/cli/internal/auth"
	"helpdesk/cli/internal/role"
)

// Area is a navigable part of the client, named by its path.
type Area string

const (
	Login    Area = "/login"
	Register Area = "/register"
	Home     Area = "/"
	Student  Area = "/student"
	Faculty  Area = "/faculty"
	Admin    Area = "/admin"
)

// Public reports whether the area is open without a session.
func (a Area) Public() bool {
	return a == Login || a == Register
}

func (a Area) String() string { return string(a) }

// Title is the human name of the area.
func (a Area) Title() string {
	switch a {
	case Home:
		return "home"
	default:
		return strings.TrimPrefix(string(a), "/")
	}
}

// allowed lists the roles permitted in each protected area. Home is absent:
// it only redirects.
var allowed = map[Area][]role.Canonical{
	Student: {role.Student},
	Faculty: {role.Faculty},
	Admin:   {role.HOD, role.Dean},
}

// Areas returns every known area.
func Areas() []Area {
	return []Area{Login, Register, Home, Student, Faculty, Admin}
}

// ParseArea maps a path or bare name ("admin", "/admin") to an Area.
func ParseArea(s string) (Area, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "home" {
		return Home, nil
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	a := Area(s)
	if slices.Contains(Areas(), a) {
		return a, nil
	}
	return "", fmt.Errorf("unknown area %q", s)
}

// Landing returns the home area of a role. UNKNOWN lands on the login area.
func Landing(r role.Canonical) Area {
	switch r {
	case role.Student:
		return Student
	case role.Faculty:
		return Faculty
	case role.HOD, role.Dean:
		return Admin
	default:
		return Login
	}
}

// Allows reports whether r may open a protected area.
func Allows(a Area, r role.Canonical) bool {
	return slices.Contains(allowed[a], r)
}

// Outcome is the kind of Decision.
type Outcome int

const (
	// Render shows the requested area.
	Render Outcome = iota
	// Wait holds off while the session is still being restored.
	Wait
	// RedirectLogin sends an anonymous user to the login area.
	RedirectLogin
	// RedirectLanding sends a signed-in user to their landing area.
	RedirectLanding
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case Wait:
		return "wait"
	case RedirectLogin:
		return "redirect-login"
	case RedirectLanding:
		return "redirect-landing"
	default:
		return "unknown"
	}
}

// Decision is the guard's verdict. Target is the area to show: the requested
// one for Render, otherwise the redirect destination.
type Decision struct {
	Outcome Outcome
	Target  Area
}

// Decide returns what to do when st asks for area.
func Decide(st auth.State, area Area) Decision {
	if st.Initializing {
		return Decision{Outcome: Wait, Target: area}
	}
	if area.Public() {
		return Decision{Outcome: Render, Target: area}
	}
	if st.Session == nil {
		return Decision{Outcome: RedirectLogin, Target: Login}
	}

	landing := Landing(st.Session.Role)
	if area == Home {
		if landing == Login {
			return Decision{Outcome: RedirectLogin, Target: Login}
		}
		return Decision{Outcome: RedirectLanding, Target: landing}
	}
	if Allows(area, st.Session.Role) {
		return Decision{Outcome: Render, Target: area}
	}
	if landing == Login {
		return Decision{Outcome: RedirectLogin, Target: Login}
	}
	return Decision{Outcome: RedirectLanding, Target: landing}
}
