package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/crucial707/timetrack/cmd/cli/config"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.Status, strings.TrimSpace(e.Body))
}

// Client calls the timetrack API. Authenticated calls use the saved token
// pair and retry once after refreshing the access token on a 401.
type Client struct {
	BaseURL   string
	TokenFile string
	HTTP      *http.Client
}

func NewClient(s config.Settings) *Client {
	return &Client{
		BaseURL:   strings.TrimRight(s.APIURL, "/"),
		TokenFile: s.TokenFile,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}
}

// Register creates an account and saves the returned token pair.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Message string `json:"message"`
		Tokens
	}
	if err := c.callJSONEndpoint(ctx, http.MethodPost, "/api/register", "", credentials(username, password), &out); err != nil {
		return "", err
	}
	return out.Message, SaveTokens(c.TokenFile, out.Tokens)
}

// Login saves the returned token pair.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var out Tokens
	if err := c.callJSONEndpoint(ctx, http.MethodPost, "/api/login", "", credentials(username, password), &out); err != nil {
		return err
	}
	return SaveTokens(c.TokenFile, out)
}

// Refresh exchanges the saved refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context) error {
	t, err := LoadTokens(c.TokenFile)
	if err != nil {
		return err
	}
	var out struct {
		Access string `json:"access"`
	}
	if err := c.callJSONEndpoint(ctx, http.MethodPost, "/api/token/refresh", "", map[string]string{"refresh": t.Refresh}, &out); err != nil {
		return err
	}
	t.Access = out.Access
	return SaveTokens(c.TokenFile, t)
}

// Do sends an authenticated request. payload and out may be nil.
func (c *Client) Do(ctx context.Context, method, path string, payload, out interface{}) error {
	t, err := LoadTokens(c.TokenFile)
	if err != nil {
		return err
	}

	err = c.callJSONEndpoint(ctx, method, path, t.Access, payload, out)
	if apiErr, ok := err.(*APIError); !ok || apiErr.Status != http.StatusUnauthorized || t.Refresh == "" {
		return err
	}

	if rerr := c.Refresh(ctx); rerr != nil {
		return fmt.Errorf("session expired, log in again: %w", rerr)
	}
	t, err = LoadTokens(c.TokenFile)
	if err != nil {
		return err
	}
	return c.callJSONEndpoint(ctx, method, path, t.Access, payload, out)
}

func credentials(username, password string) map[string]string {
	return map[string]string{"username": username, "password": password}
}

func (c *Client) callJSONEndpoint(ctx context.Context, method, path, token string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{Status: resp.StatusCode, Body: string(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
