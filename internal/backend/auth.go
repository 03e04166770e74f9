package backend

import (
	"context"
	"net/http"
	"strings"
)

// LoginResponse is the raw login response. The issued credential may live in
// the body or in the headers, so interpretation is left to the caller.
type LoginResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// RegisterRequest is the account creation payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login calls POST {endpoints.Login} with the given payload.
// A non-2xx response is returned as an error; the body is not inspected for a token.
func (h *HTTP) Login(ctx context.Context, payload map[string]any) (*LoginResponse, error) {
	resp, err := h.send(ctx, http.MethodPost, h.endpoints.Login, nil, payload)
	if err != nil {
		return nil, err
	}
	h.log.Debug("login response received", map[string]interface{}{
		"status":       resp.Status,
		"content_type": resp.Header.Get("Content-Type"),
		"body_bytes":   len(resp.Body),
	})
	return &LoginResponse{Status: resp.Status, Header: resp.Header, Body: resp.Body}, nil
}

// Register calls POST {endpoints.Register}. The response body is ignored.
func (h *HTTP) Register(ctx context.Context, req RegisterRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	_, err := h.send(ctx, http.MethodPost, h.endpoints.Register, nil, req)
	return err
}
