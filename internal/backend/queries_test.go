// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_DecodesMixedShapes(t *testing.T) {
	body := `[
		{"id": 7, "subject": "Fees", "content": "When?", "answer": null, "createdAt": "2024-03-01T10:15:00"},
		{"id": "q-9", "subject": "Exam", "content": "Room?", "answer": "B12", "facultyName": "Dr. Ray", "createdAt": 1709288100000},
		{"id": 8, "subject": "Blank", "content": "x", "answer": "  ", "createdAt": "not a date"}
	]`
	var qs []Query
	require.NoError(t, json.Unmarshal([]byte(body), &qs))
	require.Len(t, qs, 3)

	assert.Equal(t, QueryID("7"), qs[0].ID)
	assert.False(t, qs[0].Answered())
	assert.Equal(t, 2024, qs[0].CreatedAt.Year())

	assert.Equal(t, QueryID("q-9"), qs[1].ID)
	assert.True(t, qs[1].Answered())
	assert.Equal(t, time.UnixMilli(1709288100000), qs[1].CreatedAt.Time)

	assert.False(t, qs[2].Answered(), "whitespace answer is not an answer")
	assert.True(t, qs[2].CreatedAt.IsZero())
}

func TestAskQuery(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/queries/ask", r.URL.Path)
		var req AskRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, AskRequest{Subject: "Fees", Content: "When?"}, req)
		_, _ = io.WriteString(w, `{"id":1,"subject":"Fees","content":"When?"}`)
	})

	q, err := c.AskQuery(context.Background(), AskRequest{Subject: "Fees", Content: "When?"})
	require.NoError(t, err)
	assert.Equal(t, QueryID("1"), q.ID)
}

func TestAnswerQuery_UsesQueryString(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/queries/answer/42", r.URL.Path)
		assert.Equal(t, "Room B & C", r.URL.Query().Get("answer"))
		assert.Equal(t, "Dr. Ray", r.URL.Query().Get("facultyName"))
		_, _ = io.WriteString(w, `{"id":42,"answer":"Room B & C","facultyName":"Dr. Ray"}`)
	})

	q, err := c.AnswerQuery(context.Background(), "42", "Room B & C", "Dr. Ray")
	require.NoError(t, err)
	assert.True(t, q.Answered())
	assert.Equal(t, "Dr. Ray", q.FacultyName)
}

func TestSchoolQueries_EmptyBody(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	qs, err := c.SchoolQueries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, qs)
}
