// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package queries implements the ticket operations behind the student,
// faculty and admin dashboards on top of the authenticated backend client.
package queries

import (
	"context"
	"sort"
	"strings"

	"helpdesk/cli/internal/auth"
	"helpdesk/cli/internal/backend"
	apperr "helpdesk/cli/internal/errors"
	"helpdesk/cli/internal/validation"
)

// API is the subset of the backend used for tickets.
type API interface {
	StudentQueries(ctx context.Context) ([]backend.Query, error)
	SchoolQueries(ctx context.Context) ([]backend.Query, error)
	AskQuery(ctx context.Context, req backend.AskRequest) (*backend.Query, error)
	AnswerQuery(ctx context.Context, id backend.QueryID, answer, facultyName string) (*backend.Query, error)
}

// SessionSource yields the current session, or nil.
type SessionSource interface {
	Session() *auth.Session
}

// Service validates input and forwards ticket operations to the backend.
type Service struct {
	api      API
	sessions SessionSource
}

// NewService creates a Service.
func NewService(api API, sessions SessionSource) *Service {
	return &Service{api: api, sessions: sessions}
}

type askInput struct {
	Subject string `json:"subject" validate:"notblank,max=200"`
	Content string `json:"content" validate:"notblank"`
}

type answerInput struct {
	ID     string `json:"id" validate:"notblank"`
	Answer string `json:"answer" validate:"notblank"`
}

// Mine lists the current user's own queries, newest first.
func (s *Service) Mine(ctx context.Context) ([]backend.Query, error) {
	qs, err := s.api.StudentQueries(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(qs), nil
}

// School lists the queries of the current user's department, newest first.
func (s *Service) School(ctx context.Context) ([]backend.Query, error) {
	qs, err := s.api.SchoolQueries(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(qs), nil
}

// Ask submits a new query.
func (s *Service) Ask(ctx context.Context, subject, content string) (*backend.Query, error) {
	in := askInput{Subject: strings.TrimSpace(subject), Content: strings.TrimSpace(content)}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.api.AskQuery(ctx, backend.AskRequest{Subject: in.Subject, Content: in.Content})
}

// Answer answers query id. An empty facultyName defaults to the identity of
// the current session.
func (s *Service) Answer(ctx context.Context, id backend.QueryID, answer, facultyName string) (*backend.Query, error) {
	in := answerInput{ID: strings.TrimSpace(string(id)), Answer: strings.TrimSpace(answer)}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(facultyName)
	if name == "" && s.sessions != nil {
		if sess := s.sessions.Session(); sess != nil {
			name = sess.Identity()
		}
	}
	if name == "" {
		return nil, apperr.New(apperr.InvalidInput, "facultyName is required")
	}
	return s.api.AnswerQuery(ctx, backend.QueryID(in.ID), in.Answer, name)
}

// Split separates unanswered from answered queries, keeping their order.
func Split(qs []backend.Query) (pending, answered []backend.Query) {
	for _, q := range qs {
		if q.Answered() {
			answered = append(answered, q)
		} else {
			pending = append(pending, q)
		}
	}
	return pending, answered
}

// Stats counts queries by status.
type Stats struct {
	Total    int
	Pending  int
	Answered int
}

// Summarize counts qs.
func Summarize(qs []backend.Query) Stats {
	pending, answered := Split(qs)
	return Stats{Total: len(qs), Pending: len(pending), Answered: len(answered)}
}

// newestFirst orders by creation time, newest first. Records without a time
// keep their relative order after the dated ones.
func newestFirst(qs []backend.Query) []backend.Query {
	out := append([]backend.Query(nil), qs...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CreatedAt.Time, out[j].CreatedAt.Time
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.After(b)
	})
	return out
}
