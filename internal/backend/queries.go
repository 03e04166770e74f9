// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// QueryID identifies a query. The backend may send it as a JSON number or string.
type QueryID string

// UnmarshalJSON accepts both numeric and string ids.
func (id *QueryID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = QueryID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("query id: %w", err)
	}
	*id = QueryID(n.String())
	return nil
}

// Timestamp is a creation time as sent by the backend: RFC 3339, a zone-less
// local date-time, or epoch milliseconds. Unparseable values decode to zero.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if b[0] != '"' {
		ms, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			t.Time = time.Time{}
			return nil
		}
		t.Time = time.UnixMilli(ms)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

// Query is the ticket record as returned by the backend.
type Query struct {
	ID          QueryID   `json:"id"`
	Subject     string    `json:"subject"`
	Content     string    `json:"content"`
	Answer      *string   `json:"answer"`
	FacultyName string    `json:"facultyName"`
	CreatedAt   Timestamp `json:"createdAt"`
}

// Answered reports whether the query carries an answer.
func (q Query) Answered() bool {
	return q.Answer != nil && strings.TrimSpace(*q.Answer) != ""
}

// AskRequest is the payload for a new query.
type AskRequest struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// StudentQueries calls GET {endpoints.StudentQueries}.
func (h *HTTP) StudentQueries(ctx context.Context) ([]Query, error) {
	var out []Query
	if err := h.sendJSON(ctx, http.MethodGet, h.endpoints.StudentQueries, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SchoolQueries calls GET {endpoints.SchoolQueries}.
func (h *HTTP) SchoolQueries(ctx context.Context) ([]Query, error) {
	var out []Query
	if err := h.sendJSON(ctx, http.MethodGet, h.endpoints.SchoolQueries, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AskQuery calls POST {endpoints.Ask}.
func (h *HTTP) AskQuery(ctx context.Context, req AskRequest) (*Query, error) {
	var out Query
	if err := h.sendJSON(ctx, http.MethodPost, h.endpoints.Ask, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnswerQuery calls PUT {endpoints.Answer}/{id}?answer=...&facultyName=...
func (h *HTTP) AnswerQuery(ctx context.Context, id QueryID, answer, facultyName string) (*Query, error) {
	path := strings.TrimRight(h.endpoints.Answer, "/") + "/" + url.PathEscape(string(id))
	q := url.Values{}
	q.Set("answer", answer)
	q.Set("facultyName", facultyName)

	var out Query
	if err := h.sendJSON(ctx, http.MethodPut, path, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
