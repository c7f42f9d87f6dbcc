// Package hubapi is a client for the /api resources and the admin bulk
// endpoint served by cmd/web.
package hubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Notice mirrors the notices the server attaches to responses.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Page struct {
	Items      []json.RawMessage `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

type ListOptions struct {
	Page     int
	PageSize int
	Q        string
	Status   string
}

type BulkResult struct {
	Action    string            `json:"action"`
	Succeeded int               `json:"succeeded"`
	Failed    map[string]string `json:"failed"`
	Message   string            `json:"message"`
}

// APIError is returned for every non-2xx response.
type APIError struct {
	Status    int
	Message   string
	Fields    map[string]string
	RequestID string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "hubapi: %d %s", e.Status, e.Message)
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "; %s: %s", k, e.Fields[k])
		}
	}
	if e.RequestID != "" {
		fmt.Fprintf(&b, " (request %s)", e.RequestID)
	}
	return b.String()
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}

type Client struct {
	baseURL string
	token   string
	client  *http.Client

	// OnNotice receives the notices of every successful call.
	OnNotice func(Notice)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) List(ctx context.Context, entity string, o ListOptions) (Page, error) {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(o.PageSize))
	}
	if o.Q != "" {
		q.Set("q", o.Q)
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	path := "/api/" + url.PathEscape(entity)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var p Page
	err := c.do(ctx, http.MethodGet, path, nil, &p)
	return p, err
}

func (c *Client) Get(ctx context.Context, entity, id string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, http.MethodGet, resourcePath(entity, id), nil, &out)
	return out, err
}

func (c *Client) Create(ctx context.Context, entity string, body any) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, http.MethodPost, resourcePath(entity, ""), body, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, entity, id string, body any) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, http.MethodPut, resourcePath(entity, id), body, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, entity, id string) error {
	return c.do(ctx, http.MethodDelete, resourcePath(entity, id), nil, nil)
}

// Bulk runs a bulk action through the admin hub endpoint.
func (c *Client) Bulk(ctx context.Context, hub, action string, ids []string) (BulkResult, error) {
	var out BulkResult
	body := map[string]any{"action": action, "ids": ids}
	err := c.do(ctx, http.MethodPost, "/admin/hubs/"+url.PathEscape(hub)+"/bulk", body, &out)
	return out, err
}

func resourcePath(entity, id string) string {
	p := "/api/" + url.PathEscape(entity)
	if id != "" {
		p += "/" + url.PathEscape(id)
	}
	return p
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Notices []Notice        `json:"notices"`
}

type errorBody struct {
	Error     string            `json:"error"`
	RequestID string            `json:"request_id"`
	Fields    map[string]string `json:"fields"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("hubapi: marshal request: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("hubapi: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("hubapi: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ae := &APIError{Status: resp.StatusCode, RequestID: resp.Header.Get("X-Request-ID")}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
			ae.Message, ae.Fields = eb.Error, eb.Fields
			if eb.RequestID != "" {
				ae.RequestID = eb.RequestID
			}
		} else {
			ae.Message = http.StatusText(resp.StatusCode)
		}
		return ae
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("hubapi: decode response: %w", err)
	}
	if c.OnNotice != nil {
		for _, n := range env.Notices {
			c.OnNotice(n)
		}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("hubapi: decode data: %w", err)
	}
	return nil
}
