// Package api wraps every call to the Basaaj REST backend: it injects the
// bearer token when one is persisted, unwraps the uniform response envelope,
// and on a 401 clears the stored credential pair before propagating the
// error. It never retries and never redirects; that belongs to callers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// TokenStore is the durable credential storage the adapter consults on every
// request. Implemented by store.Store; tests substitute an in-memory one.
type TokenStore interface {
	Token() string
	SetTokens(access, refresh string) error
	ClearTokens() error
}

// envelope is the backend's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type Client struct {
	base    string
	httpc   *http.Client
	tokens  TokenStore
	limiter *rate.Limiter
}

// New creates a client for the backend at base. The limiter keeps bursts of
// type-ahead discovery queries polite without queuing interactive calls.
func New(base string, tokens TokenStore, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base:    strings.TrimRight(base, "/"),
		httpc:   &http.Client{Timeout: timeout},
		tokens:  tokens,
		limiter: rate.NewLimiter(rate.Limit(20), 40),
	}
}

// HasToken reports whether a persisted access token exists.
func (c *Client) HasToken() bool { return c.tokens.Token() != "" }

// Token returns the persisted access token, or "".
func (c *Client) Token() string { return c.tokens.Token() }

// SetTokens persists a token pair after successful verification.
func (c *Client) SetTokens(access, refresh string) error {
	return c.tokens.SetTokens(access, refresh)
}

// ClearTokens drops the persisted pair, returning to anonymous.
func (c *Client) ClearTokens() error { return c.tokens.ClearTokens() }

// Get issues a GET and decodes the envelope's data field into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error(), cause: err}
	}
	return c.do(req, out)
}

// Post issues a JSON POST. body may be nil; out may be nil when the caller
// only cares about success.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindTransport, Message: err.Error(), cause: err}
		}
		buf = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, buf)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error(), cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// Delete issues a DELETE, ignoring any envelope data.
func (c *Client) Delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.base+path, nil)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error(), cause: err}
	}
	return c.do(req, nil)
}

// FilePart is one binary attachment of a multipart POST.
type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// PostMultipart issues a multipart/form-data POST with plain string fields
// and binary file parts, used by onboarding and deal-media uploads.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, files []FilePart, out any) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return &Error{Kind: KindTransport, Message: err.Error(), cause: err}
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return &Error{Kind: KindTransport, Message: err.Error(), cause: err}
		}
		if _, err := part.Write(f.Data); err != nil {
			return &Error{Kind: KindTransport, Message: err.Error(), cause: err}
		}
	}
	if err := w.Close(); err != nil {
		return &Error{Kind: KindTransport, Message: err.Error(), cause: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, &body)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error(), cause: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return &Error{Kind: KindTransport, Message: err.Error(), cause: err}
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error(), cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Kind: KindTransport, Message: err.Error(), cause: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Invalidate before the caller can react, so every subsequent
		// request is correctly anonymous.
		if clearErr := c.tokens.ClearTokens(); clearErr != nil {
			slog.Warn("Failed to clear tokens after 401", "error", clearErr)
		}
		return &Error{Status: resp.StatusCode, Kind: KindAuth, Message: messageFrom(raw, "authorization required")}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Status:  resp.StatusCode,
			Kind:    KindTransport,
			Message: messageFrom(raw, fmt.Sprintf("request failed with status %d", resp.StatusCode)),
		}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &Error{Status: resp.StatusCode, Kind: KindBusiness, Message: "malformed response from server", cause: err}
	}
	if !env.Success {
		return &Error{Status: resp.StatusCode, Kind: KindBusiness, Message: envelopeMessage(env)}
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &Error{Status: resp.StatusCode, Kind: KindBusiness, Message: "malformed response from server", cause: err}
		}
	}
	return nil
}

// messageFrom digs the backend's message out of an error body when the body
// still follows the envelope shape, falling back otherwise.
func messageFrom(raw []byte, fallback string) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if msg := envelopeMessage(env); msg != "request failed" {
			return msg
		}
	}
	return fallback
}

func envelopeMessage(env envelope) string {
	if env.Message != "" {
		return env.Message
	}
	if env.Error != "" {
		return env.Error
	}
	return "request failed"
}
