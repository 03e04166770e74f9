package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"helpdesk/cli/internal/config"
	apperr "helpdesk/cli/internal/errors"
	"helpdesk/cli/internal/logging"
)

// HTTP implements API over the helpdesk REST endpoints.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "http://localhost:8080")
	baseURL string
	// endpoints contains the URL paths for the API endpoints
	endpoints config.Endpoints
	// client sends every request through the credential transport
	client *http.Client
	log    *logging.Logger
}

var _ API = (*HTTP)(nil)

// Option configures the HTTP client.
type Option func(*options)

type options struct {
	creds     CredentialSource
	onReject  RejectionFunc
	timeout   time.Duration
	transport http.RoundTripper
	log       *logging.Logger
}

// WithCredentials sets where the outgoing bearer credential is read from.
func WithCredentials(src CredentialSource) Option {
	return func(o *options) { o.creds = src }
}

// WithRejectionHandler sets the global reaction to 401 and 403 responses.
func WithRejectionHandler(fn RejectionFunc) Option {
	return func(o *options) { o.onReject = fn }
}

// WithTimeout sets the per-request timeout (default 15s).
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTransport replaces the underlying RoundTripper (default http.DefaultTransport).
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// New creates the authenticated client for baseURL.
func New(baseURL string, endpoints config.Endpoints, opts ...Option) *HTTP {
	o := options{timeout: 15 * time.Second, transport: http.DefaultTransport, log: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.WithComponent("backend")
	return &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		client: &http.Client{
			Timeout: o.timeout,
			Transport: &authTransport{
				next:     o.transport,
				creds:    o.creds,
				onReject: o.onReject,
				log:      log,
			},
		},
		log: log,
	}
}

// response is a fully read HTTP response.
type response struct {
	Status int
	Header http.Header
	Body   []byte
}

// send executes a request and reads the whole body. Non-2xx responses are
// returned together with a classified error.
func (h *HTTP) send(ctx context.Context, method, path string, query url.Values, body any) (*response, error) {
	u := h.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, apperr.Wrap(apperr.RequestFailed, "could not encode request", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, apperr.Wrap(apperr.RequestFailed, "could not build request", err)
	}
	req.Header.Set("Accept", "application/json, */*")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.RequestFailed, "could not reach the helpdesk service", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.RequestFailed, "could not read response", err)
	}

	out := &response{Status: resp.StatusCode, Header: resp.Header, Body: b}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, classify(resp.StatusCode, b)
	}
	return out, nil
}

// sendJSON executes a request and decodes a 2xx JSON body into out.
func (h *HTTP) sendJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := h.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return apperr.Wrap(apperr.RequestFailed, "unexpected response from the helpdesk service", err)
	}
	return nil
}

// classify maps a non-2xx status to an error kind, preferring the server's message.
func classify(status int, body []byte) error {
	msg := serverMessage(body)
	if isRejection(status) {
		if msg == "" {
			msg = fmt.Sprintf("not authorized (%d %s)", status, http.StatusText(status))
		}
		return apperr.New(apperr.Unauthorized, msg).WithStatus(status)
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed (%d %s)", status, http.StatusText(status))
	}
	return apperr.New(apperr.RequestFailed, msg).WithStatus(status)
}

// serverMessage extracts a human-readable message from an error body.
func serverMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error", "detail"} {
		if v, ok := payload[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
