// Package client calls the Datapad functions over HTTP.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx answer from a function.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("datapad: %d: %s", e.StatusCode, e.Message)
}

// Client is a Datapad functions client. BaseURL includes the functions
// path, e.g. https://example.org/.netlify/functions.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sends token as a Bearer credential on every call.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildURL returns <base>/<function>?<params>. Values are stringified
// (booleans and numbers in their plain form) and keys are sorted.
func (c *Client) BuildURL(function string, params map[string]any) string {
	u := c.baseURL + "/" + url.PathEscape(function)
	if len(params) == 0 {
		return u
	}
	q := make(url.Values, len(params))
	for k, v := range params {
		q.Set(k, stringify(v))
	}
	return u + "?" + q.Encode()
}

func stringify(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

// call invokes function and decodes a successful body into out, which may
// be nil.
func (c *Client) call(ctx context.Context, method, function string, params map[string]any, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BuildURL(function, params), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("datapad: %s: %w", function, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("datapad: %s: read body: %w", function, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &env) == nil && env.Message != "" {
			apiErr.Message = env.Message
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("datapad: %s: decode: %w", function, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, function string, params map[string]any, out any) error {
	return c.call(ctx, http.MethodGet, function, params, out)
}

func (c *Client) post(ctx context.Context, function string, params map[string]any, out any) error {
	return c.call(ctx, http.MethodPost, function, params, out)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

func encodeRecord(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
