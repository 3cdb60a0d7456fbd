// Package api is the single HTTP surface toward the storefront backend: the
// route table plus one client instance whose request and response paths attach
// the bearer credential, log sanitized traffic, and normalize every failure
// into an *apierr.Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/shared/apierr"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/shared/sanitize"
	"github.com/silverthorneholdings1-cloud/Silverthorne-Holdings-Front/internal/store"
)

// Envelope is the backend's uniform response shape.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
	Code    string          `json:"code,omitempty"`

	// Login and verification responses carry these at the top level.
	Token string          `json:"token,omitempty"`
	Type  string          `json:"type,omitempty"`
	User  json.RawMessage `json:"user,omitempty"`

	// Raw is the undecoded body, kept for endpoints that answer with a bare
	// object instead of the envelope.
	Raw []byte `json:"-"`
}

type Client struct {
	http  *http.Client
	creds store.CredentialStore
	log   *slog.Logger
}

func NewClient(creds store.CredentialStore, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		http:  &http.Client{Timeout: timeout},
		creds: creds,
		log:   log,
	}
}

// Option mutates an outgoing request before dispatch.
type Option func(*http.Request)

// WithNoCache marks product listings that must not be served stale.
func WithNoCache() Option {
	return func(req *http.Request) {
		req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		req.Header.Set("Pragma", "no-cache")
		req.Header.Set("Expires", "0")
	}
}

// WithContentType overrides the default JSON content type (multipart uploads).
func WithContentType(ct string) Option {
	return func(req *http.Request) { req.Header.Set("Content-Type", ct) }
}

func (c *Client) Get(ctx context.Context, url string, opts ...Option) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, url, nil, opts...)
}

func (c *Client) Post(ctx context.Context, url string, body any, opts ...Option) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, url, body, opts...)
}

func (c *Client) Put(ctx context.Context, url string, body any, opts ...Option) (*Envelope, error) {
	return c.do(ctx, http.MethodPut, url, body, opts...)
}

func (c *Client) Patch(ctx context.Context, url string, body any, opts ...Option) (*Envelope, error) {
	return c.do(ctx, http.MethodPatch, url, body, opts...)
}

func (c *Client) Delete(ctx context.Context, url string, opts ...Option) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, url, nil, opts...)
}

// PostRaw sends a pre-encoded body (multipart form uploads go through here).
func (c *Client) PostRaw(ctx context.Context, url, contentType string, body io.Reader) (*Envelope, error) {
	return c.doReader(ctx, http.MethodPost, url, contentType, body)
}

func (c *Client) PutRaw(ctx context.Context, url, contentType string, body io.Reader) (*Envelope, error) {
	return c.doReader(ctx, http.MethodPut, url, contentType, body)
}

func (c *Client) do(ctx context.Context, method, url string, body any, opts ...Option) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, apierr.Wrap(err)
		}
		reader = bytes.NewReader(b)
	}
	return c.doReader(ctx, method, url, "application/json", reader, opts...)
}

func (c *Client) doReader(ctx context.Context, method, url, contentType string, body io.Reader, opts ...Option) (*Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, apierr.Wrap(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	// Request interceptor: credential + request id + sanitized log.
	if tok, ok := c.creds.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	for _, opt := range opts {
		opt(req)
	}

	c.log.Debug("api_request",
		slog.String("request_id", reqID),
		slog.String("method", method),
		slog.String("url", sanitize.URL(url)),
	)

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api_network_error",
			slog.String("request_id", reqID),
			slog.String("url", sanitize.URL(url)),
			slog.String("error", err.Error()),
		)
		return nil, apierr.Wrap(err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apierr.Wrap(err)
	}

	var env Envelope
	if len(raw) > 0 {
		// A non-JSON body on an error status still normalizes below.
		_ = json.Unmarshal(raw, &env)
	}
	env.Raw = raw

	c.log.Debug("api_response",
		slog.String("request_id", reqID),
		slog.String("url", sanitize.URL(url)),
		slog.Int("status", res.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	if res.StatusCode >= 400 {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		ae := apierr.New(msg, res.StatusCode, env.Code)
		c.log.Warn("api_error",
			slog.String("request_id", reqID),
			slog.String("url", sanitize.URL(url)),
			slog.Int("status", res.StatusCode),
			slog.String("code", env.Code),
		)
		return nil, ae
	}

	return &env, nil
}
