// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend is the single network surface of the helpdesk CLI.
//
// Every request goes through one *http.Client whose transport attaches the
// persisted credential and reacts globally to authorization failures before the
// caller sees the response. Endpoint methods then classify the response into the
// error kinds of internal/errors so callers can still handle the failure locally.
package backend

import "context"

// API defines backend operations the CLI depends on.
// Implementations may call real HTTP endpoints or provide fakes for tests.
type API interface {
	// Login posts credentials and returns the raw response so the caller can
	// look for the issued token in the body or the headers.
	Login(ctx context.Context, payload map[string]any) (*LoginResponse, error)
	// Register creates an account. It never establishes a session.
	Register(ctx context.Context, req RegisterRequest) error
	// StudentQueries lists the queries asked by the current user.
	StudentQueries(ctx context.Context) ([]Query, error)
	// SchoolQueries lists the queries of the current user's department.
	SchoolQueries(ctx context.Context) ([]Query, error)
	// AskQuery submits a new query and returns the created record.
	AskQuery(ctx context.Context, req AskRequest) (*Query, error)
	// AnswerQuery answers the query with the given id and returns the updated record.
	AnswerQuery(ctx context.Context, id QueryID, answer, facultyName string) (*Query, error)
}
