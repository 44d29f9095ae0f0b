package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/parcelshield/shieldkit/core"
	"go.uber.org/zap"
)

// Reply is one completed HTTP exchange. Non-2xx responses come back as
// replies, not errors: callers distinguish "request succeeded but
// domain-rejected" from "request could not be sent", which surfaces as
// a *core.NetworkError instead.
type Reply struct {
	Status int
	Body   []byte
	// Message is the decoded server "message" field, when present.
	Message string
}

func (r *Reply) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Decode unmarshals the response body.
func (r *Reply) Decode(out any) error {
	return json.Unmarshal(r.Body, out)
}

// MessageOr returns the server message, or fallback when the body
// carried none.
func (r *Reply) MessageOr(fallback string) string {
	if r.Message != "" {
		return r.Message
	}
	return fallback
}

// DomainError builds the error value for a non-2xx reply.
func (r *Reply) DomainError(fallback string) *core.DomainError {
	return &core.DomainError{Status: r.Status, Message: r.MessageOr(fallback)}
}

// FormFile is the single file part of a multipart request.
type FormFile struct {
	Field   string
	Name    string
	Content io.Reader
}

// APIClient is a thin wrapper over the ParcelShield HTTP API: JSON
// requests, multipart requests, bearer token attached to mutating
// calls when a session exists.
type APIClient struct {
	baseURL string
	httpc   *http.Client
	tokens  core.TokenSource
	log     *zap.SugaredLogger
}

func NewAPIClient(baseURL string, httpc *http.Client, tokens core.TokenSource, log *zap.SugaredLogger) *APIClient {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   httpc,
		tokens:  tokens,
		log:     log,
	}
}

func (c *APIClient) GetJSON(ctx context.Context, path string) (*Reply, error) {
	return c.do(ctx, http.MethodGet, path, "", nil, false)
}

func (c *APIClient) PostJSON(ctx context.Context, path string, payload any) (*Reply, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload for %s: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(body), true)
}

func (c *APIClient) PutJSON(ctx context.Context, path string, payload any) (*Reply, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload for %s: %w", path, err)
	}
	return c.do(ctx, http.MethodPut, path, "application/json", bytes.NewReader(body), true)
}

func (c *APIClient) Delete(ctx context.Context, path string) (*Reply, error) {
	return c.do(ctx, http.MethodDelete, path, "", nil, true)
}

// PostMultipart sends form fields plus one optional file as multipart
// form data. The content type (with boundary) is owned by the
// multipart writer, never set by hand.
func (c *APIClient) PostMultipart(ctx context.Context, path string, fields map[string]string, file *FormFile) (*Reply, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, value := range fields {
		if err := w.WriteField(field, value); err != nil {
			return nil, fmt.Errorf("write form field %q: %w", field, err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, fmt.Errorf("create form file %q: %w", file.Field, err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, fmt.Errorf("copy form file %q: %w", file.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finish multipart body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, w.FormDataContentType(), &buf, true)
}

// do runs one exchange. withAuth attaches the bearer token when a
// session exists; a missing token simply sends the request
// unauthenticated and lets the server decide.
func (c *APIClient) do(ctx context.Context, method, path, contentType string, body io.Reader, withAuth bool) (*Reply, error) {
	op := method + " " + path

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &core.NetworkError{Op: op, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if withAuth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Warnw("request failed", "op", op, "error", err)
		return nil, &core.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warnw("reading response failed", "op", op, "error", err)
		return nil, &core.NetworkError{Op: op, Err: err}
	}

	reply := &Reply{Status: resp.StatusCode, Body: raw}
	var envelope struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		reply.Message = envelope.Message
	}

	c.log.Debugw("request complete", "op", op, "status", resp.StatusCode)
	return reply, nil
}
