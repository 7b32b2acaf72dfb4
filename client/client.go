// Package client implements the authenticated transport every other
// component routes its remote calls through. All outcomes are normalized
// into the models.Envelope shape: callers branch on Success and never see
// transport-specific errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sautiwatch/ireporter-core/models"
)

// go generate: mockery --name Requester

// Requester contains the transport methods the rest of the core depends on
type Requester interface {
	Do(ctx context.Context, method, endpoint string, body interface{}, authRequired bool) models.Envelope
	Get(ctx context.Context, endpoint string, authRequired bool) models.Envelope
	Post(ctx context.Context, endpoint string, body interface{}, authRequired bool) models.Envelope
	Put(ctx context.Context, endpoint string, body interface{}, authRequired bool) models.Envelope
	Delete(ctx context.Context, endpoint string, authRequired bool) models.Envelope
	PostMultipart(ctx context.Context, endpoint string, fields map[string]string, parts []models.FormPart, authRequired bool) models.Envelope
}

// TokenSource supplies the bearer credential attached to authenticated calls.
// An empty string means no credential is available and the header is omitted.
type TokenSource interface {
	Token() string
}

// Client is the HTTP transport. It holds no mutable state beyond its
// configuration; every call carries its own timeout and cancellation.
type Client struct {
	baseURL string
	timeout time.Duration
	tokens  TokenSource
	http    *http.Client
}

var _ Requester = (*Client)(nil)

// New initializes a new transport client against the given base URL
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		tokens:  tokens,
		http:    &http.Client{},
	}
}

// Do issues a JSON request and normalizes the outcome into an envelope
func (c *Client) Do(ctx context.Context, method, endpoint string, body interface{}, authRequired bool) models.Envelope {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return models.Fail(models.ErrorKindDecode, "failed to encode request body")
		}
		reader = bytes.NewReader(b)
	}
	return c.send(ctx, method, endpoint, reader, "application/json", authRequired)
}

// Get issues a GET request
func (c *Client) Get(ctx context.Context, endpoint string, authRequired bool) models.Envelope {
	return c.Do(ctx, http.MethodGet, endpoint, nil, authRequired)
}

// Post issues a POST request with a JSON body
func (c *Client) Post(ctx context.Context, endpoint string, body interface{}, authRequired bool) models.Envelope {
	return c.Do(ctx, http.MethodPost, endpoint, body, authRequired)
}

// Put issues a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, endpoint string, body interface{}, authRequired bool) models.Envelope {
	return c.Do(ctx, http.MethodPut, endpoint, body, authRequired)
}

// Delete issues a DELETE request
func (c *Client) Delete(ctx context.Context, endpoint string, authRequired bool) models.Envelope {
	return c.Do(ctx, http.MethodDelete, endpoint, nil, authRequired)
}

// PostMultipart issues a multipart/form-data POST. The content type is the
// multipart writer's own boundary header, not the JSON default; the bearer
// credential is still attached when required.
func (c *Client) PostMultipart(ctx context.Context, endpoint string, fields map[string]string, parts []models.FormPart, authRequired bool) models.Envelope {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return models.Fail(models.ErrorKindDecode, "failed to encode form field "+name)
		}
	}
	for _, part := range parts {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, part.Field, part.Filename))
		if part.ContentType != "" {
			header.Set("Content-Type", part.ContentType)
		}
		fw, err := w.CreatePart(header)
		if err != nil {
			return models.Fail(models.ErrorKindDecode, "failed to encode form part "+part.Filename)
		}
		if _, err := fw.Write(part.Data); err != nil {
			return models.Fail(models.ErrorKindDecode, "failed to encode form part "+part.Filename)
		}
	}
	if err := w.Close(); err != nil {
		return models.Fail(models.ErrorKindDecode, "failed to finalize multipart body")
	}
	return c.send(ctx, http.MethodPost, endpoint, &buf, w.FormDataContentType(), authRequired)
}

func (c *Client) send(ctx context.Context, method, endpoint string, body io.Reader, contentType string, authRequired bool) models.Envelope {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return models.Fail(models.ErrorKindNetwork, "invalid request: "+err.Error())
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authRequired && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	zap.S().Debugw("sending request",
		"method", method,
		"endpoint", endpoint,
		"requestId", requestID,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			zap.S().Warnw("request timed out",
				"endpoint", endpoint,
				"timeout", c.timeout,
				"requestId", requestID,
			)
			return models.Fail(models.ErrorKindTimeout, "request timed out")
		}
		return models.Fail(models.ErrorKindNetwork, "network error: "+err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Fail(models.ErrorKindNetwork, "failed to read response: "+err.Error())
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return models.Fail(models.ErrorKindServer, serverMessage(resp.StatusCode, raw))
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return models.OK(nil)
	}
	if !json.Valid(raw) {
		return models.Fail(models.ErrorKindDecode, "malformed response body")
	}
	return models.OK(raw)
}

// serverMessage pulls the message or error field out of a failure body,
// falling back to a status line when the body is not decodable
func serverMessage(status int, raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fmt.Sprintf("request failed with status %d", status)
}
