// Package api provides the HTTP client for the outlay expense backend.
package api

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

	"outlay/internal/model"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// ErrUnauthorized indicates the bearer token is missing, expired, or rejected.
var ErrUnauthorized = errors.New("api: unauthorized")

// HTTPError is a non-2xx response from the backend.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// TokenSource supplies the current bearer token, empty when logged out.
type TokenSource interface {
	Token() string
}

// Client talks to the expense backend. It prefixes the base URL, encodes
// JSON bodies, and attaches the current bearer token when one is present.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	timeout time.Duration
}

// NewClient creates a client for the given base URL. tokens may be nil,
// in which case every request goes out unauthenticated.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{},
		timeout: defaultTimeout,
	}
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	return c.authenticate(ctx, "/auth/login", username, password)
}

// Register creates an account and returns its session token.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	return c.authenticate(ctx, "/auth/register", username, password)
}

func (c *Client) authenticate(ctx context.Context, path, username, password string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, path, credentials{Username: username, Password: password})
	if err != nil {
		return "", err
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("api: parsing token response: %w", err)
	}
	if tr.Token == "" {
		return "", errors.New("api: empty token in auth response")
	}
	return tr.Token, nil
}

// ListExpenses fetches the full expense collection, coercing every record
// to canonical typed form.
func (c *Client) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	body, err := c.do(ctx, http.MethodGet, "/expenses", nil)
	if err != nil {
		return nil, err
	}

	var wires []expenseWire
	if err := json.Unmarshal(body, &wires); err != nil {
		return nil, fmt.Errorf("api: parsing expenses: %w", err)
	}

	expenses := make([]model.Expense, 0, len(wires))
	for _, w := range wires {
		e, err := w.toModel()
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// CreateExpense sends a draft and returns the server's authoritative record.
func (c *Client) CreateExpense(ctx context.Context, d model.Draft) (model.Expense, error) {
	body, err := c.do(ctx, http.MethodPost, "/expenses", draftToWire(d))
	if err != nil {
		return model.Expense{}, err
	}
	return decodeExpense(body)
}

// UpdateExpense sends an update for id and returns the authoritative record.
func (c *Client) UpdateExpense(ctx context.Context, id string, d model.Draft) (model.Expense, error) {
	body, err := c.do(ctx, http.MethodPut, "/expenses/"+url.PathEscape(id), draftToWire(d))
	if err != nil {
		return model.Expense{}, err
	}
	return decodeExpense(body)
}

// DeleteExpense deletes the record with the given id.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/expenses/"+url.PathEscape(id), nil)
	return err
}

func decodeExpense(body []byte) (model.Expense, error) {
	var w expenseWire
	if err := json.Unmarshal(body, &w); err != nil {
		return model.Expense{}, fmt.Errorf("api: parsing expense: %w", err)
	}
	return w.toModel()
}

// do performs one request against the backend and returns the response body.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("api: reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &HTTPError{Status: resp.StatusCode, Message: errorMessage(body)}
	}

	return body, nil
}

// errorMessage extracts the backend's {"message": ...} payload, if any.
func errorMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	return eb.Message
}
