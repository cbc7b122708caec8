package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	apiLogin    = "1"
	apiAccounts = "6"
	maxBody     = 1 << 20
)

// Client talks to one CRM gateway. Safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// New returns a Client for cfg. BaseURL and APIKey are required.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Info    struct {
		Message string `json:"message"`
	} `json:"info"`
}

// call posts form to method and decodes the envelope. A non-success envelope
// is ErrRejected.
func (c *Client) call(ctx context.Context, version, method string, form url.Values) (*envelope, error) {
	endpoint := fmt.Sprintf("%s/gateway/api/%s/syntellicore.cfc?method=%s", c.baseURL, version, url.QueryEscape(method))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api_key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s returned %d", ErrRejected, method, resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnavailable, method, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: %s returned %d", ErrRejected, method, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %s: decode response: %w", ErrUnavailable, method, err)
	}
	if !env.Success {
		return nil, fmt.Errorf("%w: %s: %s", ErrRejected, method, env.Info.Message)
	}
	return &env, nil
}

// ForgotPassword asks the CRM to email a password reset link. An address the
// CRM does not know is ErrUnknownEmail; a malformed one is ErrRejected.
// It returns the CRM's confirmation message, which may be empty.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	payload, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/forgot-password", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Join(ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api_key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Join(ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", errors.Join(ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrUnknownEmail
	case resp.StatusCode == http.StatusBadRequest:
		return "", fmt.Errorf("%w: forgot_password returned %d", ErrRejected, resp.StatusCode)
	case resp.StatusCode >= 300:
		return "", fmt.Errorf("%w: forgot_password returned %d", ErrUnavailable, resp.StatusCode)
	}

	var out struct {
		Message string `json:"message"`
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &out); err != nil {
			return "", fmt.Errorf("%w: forgot_password: decode response: %w", ErrUnavailable, err)
		}
	}
	return out.Message, nil
}
