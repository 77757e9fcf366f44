// Package upstream is the HTTP client for the content API. Responses wrap
// their payload in a {"data": ...} envelope; failures carry a "message".
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/JaimeStill/backoffice/pkg/record"
)

const maxErrorBody = 64 << 10

// Client calls the content API. A Client carries at most one bearer token;
// use With to obtain a copy bound to a caller's token.
type Client struct {
	baseURL string
	http    *http.Client
	maxBody int64
	token   string
	logger  *slog.Logger
}

// Blob is a raw file response.
type Blob struct {
	Name        string
	ContentType string
	Data        []byte
}

// New creates a Client without credentials.
func New(cfg *Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.TimeoutDuration()},
		maxBody: cfg.MaxResponseBytes(),
		logger:  logger.With("system", "upstream"),
	}
}

// With returns a copy of the client that authenticates with token.
func (c *Client) With(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// List fetches path and decodes the enveloped record array.
func (c *Client) List(ctx context.Context, path string) ([]record.Record, error) {
	var env struct {
		Data []record.Record `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, "", nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		env.Data = []record.Record{}
	}
	return env.Data, nil
}

// Fetch retrieves a single enveloped record.
func (c *Client) Fetch(ctx context.Context, path string) (record.Record, error) {
	var env struct {
		Data record.Record `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, "", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Post sends a JSON body, or no body when payload is nil, and returns the
// decoded response object.
func (c *Client) Post(ctx context.Context, path string, payload any) (record.Record, error) {
	var body []byte
	contentType := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		body = b
		contentType = "application/json"
	}

	var out record.Record
	if err := c.do(ctx, http.MethodPost, path, contentType, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PostForm sends an encoded multipart body.
func (c *Client) PostForm(ctx context.Context, path, contentType string, body []byte) (record.Record, error) {
	var out record.Record
	if err := c.do(ctx, http.MethodPost, path, contentType, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Download fetches path as a file. Name comes from the Content-Disposition
// header and is empty when the response has none.
func (c *Client) Download(ctx context.Context, path string) (*Blob, error) {
	resp, err := c.send(ctx, http.MethodGet, path, "", nil, "*/*")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := c.read(resp)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", http.MethodGet, path, err)
	}

	blob := &Blob{
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}
	if blob.ContentType == "" {
		blob.ContentType = http.DetectContentType(data)
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		blob.Name = params["filename"]
	}
	return blob, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte, out any) error {
	resp, err := c.send(ctx, method, path, contentType, body, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := c.read(resp)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 || out == nil {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// send performs the request and converts non-2xx responses to *StatusError.
// On success the caller owns the response body.
func (c *Client) send(ctx context.Context, method, path, contentType string, body []byte, accept string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", accept)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %w", method, path, ErrUpstream, err)
	}
	c.logger.Debug("upstream request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		serr := &StatusError{Method: method, Path: path, Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(data, &payload) == nil {
			serr.Message = payload.Message
		}
		c.logger.Warn("upstream error", "method", method, "path", path, "status", resp.StatusCode)
		return nil, serr
	}
	return resp, nil
}

// read drains a success body. Bodies past maxBody fail with ErrResponseTooLarge.
func (c *Client) read(resp *http.Response) ([]byte, error) {
	if c.maxBody > 0 && resp.ContentLength > c.maxBody {
		return nil, fmt.Errorf("%d bytes: %w: %w", resp.ContentLength, ErrUpstream, ErrResponseTooLarge)
	}

	r := io.Reader(resp.Body)
	if c.maxBody > 0 {
		r = io.LimitReader(resp.Body, c.maxBody+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read response: %w: %w", ErrUpstream, err)
	}
	if c.maxBody > 0 && int64(len(data)) > c.maxBody {
		return nil, fmt.Errorf("over %d bytes: %w: %w", c.maxBody, ErrUpstream, ErrResponseTooLarge)
	}
	return data, nil
}
