// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package queries

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/cli/internal/auth"
	"helpdesk/cli/internal/backend"
	"helpdesk/cli/internal/credential"
	apperr "helpdesk/cli/internal/errors"
)

type fakeAPI struct {
	list     []backend.Query
	asked    []backend.AskRequest
	answered []string
}

func (f *fakeAPI) StudentQueries(context.Context) ([]backend.Query, error) { return f.list, nil }
func (f *fakeAPI) SchoolQueries(context.Context) ([]backend.Query, error)  { return f.list, nil }

func (f *fakeAPI) AskQuery(_ context.Context, req backend.AskRequest) (*backend.Query, error) {
	f.asked = append(f.asked, req)
	return &backend.Query{ID: "1", Subject: req.Subject, Content: req.Content}, nil
}

func (f *fakeAPI) AnswerQuery(_ context.Context, id backend.QueryID, answer, facultyName string) (*backend.Query, error) {
	f.answered = append(f.answered, string(id)+"|"+answer+"|"+facultyName)
	return &backend.Query{ID: id, Answer: &answer, FacultyName: facultyName}, nil
}

type session struct{ s *auth.Session }

func (s session) Session() *auth.Session { return s.s }

func strptr(s string) *string { return &s }

func at(day int) backend.Timestamp {
	return backend.Timestamp{Time: time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC)}
}

func TestAsk_Validates(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, nil)

	_, err := svc.Ask(context.Background(), "  ", "content")
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
	_, err = svc.Ask(context.Background(), "Fees", "")
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
	assert.Empty(t, api.asked)

	q, err := svc.Ask(context.Background(), " Fees ", " When is the deadline? ")
	require.NoError(t, err)
	assert.Equal(t, "Fees", q.Subject)
	assert.Equal(t, []backend.AskRequest{{Subject: "Fees", Content: "When is the deadline?"}}, api.asked)
}

func TestAnswer_DefaultsFacultyName(t *testing.T) {
	api := &fakeAPI{}
	sess := &auth.Session{Claims: credential.Claims{Subject: "ray@uni.edu"}}
	svc := NewService(api, session{sess})

	_, err := svc.Answer(context.Background(), "42", "Room B12", "")
	require.NoError(t, err)
	_, err = svc.Answer(context.Background(), "43", "Yes", "Dr. Ray")
	require.NoError(t, err)

	assert.Equal(t, []string{"42|Room B12|ray@uni.edu", "43|Yes|Dr. Ray"}, api.answered)
}

func TestAnswer_Validates(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, session{})

	_, err := svc.Answer(context.Background(), "42", " ", "Dr. Ray")
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
	_, err = svc.Answer(context.Background(), "", "ok", "Dr. Ray")
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
	_, err = svc.Answer(context.Background(), "42", "ok", "")
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err), "no session and no name")
	assert.Empty(t, api.answered)
}

func TestSplitAndSummarize(t *testing.T) {
	qs := []backend.Query{
		{ID: "1"},
		{ID: "2", Answer: strptr("done")},
		{ID: "3", Answer: strptr("")},
		{ID: "4", Answer: strptr("yes")},
	}
	pending, answered := Split(qs)
	assert.Equal(t, []backend.QueryID{"1", "3"}, ids(pending))
	assert.Equal(t, []backend.QueryID{"2", "4"}, ids(answered))
	assert.Equal(t, Stats{Total: 4, Pending: 2, Answered: 2}, Summarize(qs))
	assert.Equal(t, Stats{}, Summarize(nil))
}

func TestMine_NewestFirst(t *testing.T) {
	api := &fakeAPI{list: []backend.Query{
		{ID: "old", CreatedAt: at(1)},
		{ID: "undated"},
		{ID: "new", CreatedAt: at(9)},
	}}
	qs, err := NewService(api, nil).Mine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []backend.QueryID{"new", "old", "undated"}, ids(qs))
	assert.Equal(t, backend.QueryID("old"), api.list[0].ID, "input not reordered")
}

func ids(qs []backend.Query) []backend.QueryID {
	out := make([]backend.QueryID, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}
