// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package role maps the role-bearing fields of decoded credential claims to one
// canonical role.
//
// Identity services disagree on where the role lives: a single "role" string, a
// "roles" list, or a Spring-style "authorities" list of objects. Decode picks the
// first populated shape and Resolve normalizes its value. Resolution never fails;
// anything unrecognized becomes Unknown so the route guard can still decide.
package role

import "strings"

// Canonical is a normalized role used for every authorization decision.
type Canonical string

const (
	Student Canonical = "STUDENT"
	Faculty Canonical = "FACULTY"
	HOD     Canonical = "HOD"
	Dean    Canonical = "DEAN"
	Unknown Canonical = "UNKNOWN"
)

// Known returns the recognized roles in display order.
func Known() []Canonical {
	return []Canonical{Student, Faculty, HOD, Dean}
}

func (c Canonical) String() string { return string(c) }

// Shape identifies which claim field carried the role.
type Shape int

const (
	ShapeUnrecognized Shape = iota
	ShapeSingle
	ShapeList
	ShapeAuthorities
)

func (s Shape) String() string {
	switch s {
	case ShapeSingle:
		return "role"
	case ShapeList:
		return "roles"
	case ShapeAuthorities:
		return "authorities"
	default:
		return "unrecognized"
	}
}

// Claim is the role information extracted from a claims payload.
// Value is the raw, not yet normalized role string; it is empty for ShapeUnrecognized.
type Claim struct {
	Shape Shape
	Value string
}

// Claim field names as issued by the identity service.
const (
	fieldRole        = "role"
	fieldRoles       = "roles"
	fieldAuthorities = "authorities"
	fieldAuthority   = "authority"
)

// Decode inspects a loosely shaped claims map. Order matters: a direct role
// string wins over a role list, which wins over an authority list.
func Decode(raw map[string]any) Claim {
	if v, ok := raw[fieldRole].(string); ok && v != "" {
		return Claim{Shape: ShapeSingle, Value: v}
	}
	if list, ok := raw[fieldRoles].([]any); ok && len(list) > 0 {
		if v, ok := list[0].(string); ok && v != "" {
			return Claim{Shape: ShapeList, Value: v}
		}
	}
	if list, ok := raw[fieldRoles].([]string); ok && len(list) > 0 && list[0] != "" {
		return Claim{Shape: ShapeList, Value: list[0]}
	}
	if list, ok := raw[fieldAuthorities].([]any); ok && len(list) > 0 {
		switch first := list[0].(type) {
		case map[string]any:
			if v, ok := first[fieldAuthority].(string); ok && v != "" {
				return Claim{Shape: ShapeAuthorities, Value: v}
			}
		case string:
			if first != "" {
				return Claim{Shape: ShapeAuthorities, Value: first}
			}
		}
	}
	return Claim{Shape: ShapeUnrecognized}
}

// Resolve returns the canonical role for a decoded claim.
func Resolve(c Claim) Canonical {
	switch c.Shape {
	case ShapeSingle, ShapeList, ShapeAuthorities:
		return Parse(c.Value)
	default:
		return Unknown
	}
}

// Parse normalizes a raw role string: uppercase, drop a ROLE_ prefix, trim.
func Parse(s string) Canonical {
	v := strings.TrimSpace(strings.ToUpper(s))
	v = strings.TrimSpace(strings.TrimPrefix(v, "ROLE_"))
	switch Canonical(v) {
	case Student, Faculty, HOD, Dean:
		return Canonical(v)
	default:
		return Unknown
	}
}
