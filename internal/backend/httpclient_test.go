// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/cli/internal/config"
	apperr "helpdesk/cli/internal/errors"
)

type staticCreds struct {
	token string
	err   error
}

func (s staticCreds) LoadCredential() (string, error) { return s.token, s.err }

type rejections struct {
	mu       sync.Mutex
	statuses []int
}

func (r *rejections) record(_ context.Context, status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
}

func (r *rejections) all() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.statuses...)
}

func newClient(t *testing.T, h http.HandlerFunc, opts ...Option) *HTTP {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, config.DefaultEndpoints(), opts...)
}

func TestTransport_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotID string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotID = r.Header.Get(HeaderRequestID)
		_, _ = io.WriteString(w, "[]")
	}, WithCredentials(staticCreds{token: "tok-1"}))

	_, err := c.StudentQueries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Len(t, gotID, 36)
}

func TestTransport_NoCredentialNoHeader(t *testing.T) {
	var gotAuth []string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Values("Authorization")
		_, _ = io.WriteString(w, "[]")
	}, WithCredentials(staticCreds{}))

	_, err := c.StudentQueries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestTransport_StorageErrorSendsUnauthenticated(t *testing.T) {
	var gotAuth string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, "[]")
	}, WithCredentials(staticCreds{err: errors.New("locked")}))

	_, err := c.SchoolQueries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestTransport_RejectionRunsBeforeCallerSeesError(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		rec := &rejections{}
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `{"message":"token expired"}`)
		}, WithCredentials(staticCreds{token: "tok"}), WithRejectionHandler(rec.record))

		_, err := c.StudentQueries(context.Background())
		require.Error(t, err)
		assert.Equal(t, []int{status}, rec.all(), "handler runs once per rejected response")
		assert.True(t, errors.Is(err, apperr.New(apperr.Unauthorized, "")))
		assert.Equal(t, "token expired", apperr.MessageOf(err))

		var e *apperr.E
		require.True(t, errors.As(err, &e))
		assert.Equal(t, status, e.Status)
	}
}

func TestTransport_OtherFailuresDoNotReject(t *testing.T) {
	rec := &rejections{}
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"database down"}`)
	}, WithRejectionHandler(rec.record))

	_, err := c.StudentQueries(context.Background())
	require.Error(t, err)
	assert.Empty(t, rec.all())
	assert.Equal(t, apperr.RequestFailed, apperr.KindOf(err))
	assert.Equal(t, "database down", apperr.MessageOf(err))
}

func TestClassify_GenericMessage(t *testing.T) {
	err := classify(http.StatusBadGateway, []byte("<html>bad gateway</html>"))
	assert.Equal(t, apperr.RequestFailed, apperr.KindOf(err))
	assert.Contains(t, apperr.MessageOf(err), "502")
}

func TestSend_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, config.DefaultEndpoints())
	_, err := c.StudentQueries(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperr.RequestFailed, apperr.KindOf(err))
}

func TestLogin_ReturnsRawResponse(t *testing.T) {
	var got map[string]any
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Authorization", "Bearer xyz123")
		_, _ = io.WriteString(w, `{"ok":true}`)
	})

	resp, err := c.Login(context.Background(), map[string]any{"email": "a@b.c", "password": "pw"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", got["email"])
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "xyz123", BearerFromHeader(resp.Header))
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestRegister_PostsProfile(t *testing.T) {
	var got RegisterRequest
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "User registered")
	})

	err := c.Register(context.Background(), RegisterRequest{
		Name: "Ana", Email: " ana@uni.edu ", Username: "ana", Password: "secret", Role: "STUDENT",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@uni.edu", got.Email)
	assert.Equal(t, "STUDENT", got.Role)
}

func TestRegister_SurfacesServerMessage(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"Email already in use"}`)
	})
	err := c.Register(context.Background(), RegisterRequest{Email: "a@b.c"})
	require.Error(t, err)
	assert.Equal(t, "Email already in use", apperr.MessageOf(err))
}
