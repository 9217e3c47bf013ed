package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxResponseSize limits backend response bodies to 10MB
const maxResponseSize = 10 * 1024 * 1024

// Client talks to the backend API. The session is threaded through the
// constructor explicitly; there is no ambient global token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// ClientOption is a functional option for Client configuration
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a backend API client bound to the given session
func NewClient(baseURL string, session *Session, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		session:    session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the backend response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do performs a request and decodes the enveloped response into out.
// A 401 becomes an *AuthError carrying the backend's reason; other
// failures become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: err.Error()}
	}

	var env envelope
	decodeErr := json.Unmarshal(data, &env)

	if resp.StatusCode >= 400 {
		message := http.StatusText(resp.StatusCode)
		if decodeErr == nil && env.Error != nil && env.Error.Message != "" {
			message = env.Error.Message
		} else if detail := legacyDetail(data); detail != "" {
			message = detail
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return &AuthError{Message: message}
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if decodeErr != nil || env.Data == nil {
		return &APIError{Status: resp.StatusCode, Message: "malformed response body"}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// legacyDetail extracts the message from a bare {"detail": "..."} body
func legacyDetail(data []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Detail
}

// Login authenticates against the backend
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Me returns the profile behind the session token
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout tells the backend the session ended
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
}

// Orders lists orders, optionally filtered by status
func (c *Client) Orders(ctx context.Context, status string) ([]Order, error) {
	path := "/api/v1/orders"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out []Order
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SyncOrders pulls new orders from the store into the backend
func (c *Client) SyncOrders(ctx context.Context) (*SyncResult, error) {
	var out SyncResult
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders/sync", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrderStats returns order counts grouped by status
func (c *Client) OrderStats(ctx context.Context) (*OrderStats, error) {
	var out OrderStats
	if err := c.do(ctx, http.MethodGet, "/api/v1/orders/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrder applies a partial edit to an order
func (c *Client) UpdateOrder(ctx context.Context, orderID string, edit OrderEdit) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPatch, "/api/v1/orders/"+orderID, edit, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendSelected dispatches the given orders to the carrier in one batch
func (c *Client) SendSelected(ctx context.Context, orderIDs []string) (*DispatchResult, error) {
	var out DispatchResult
	err := c.do(ctx, http.MethodPost, "/api/v1/orders/send-selected", map[string][]string{
		"order_ids": orderIDs,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Settings returns the masked integration settings
func (c *Client) Settings(ctx context.Context) (*Settings, error) {
	var out Settings
	if err := c.do(ctx, http.MethodGet, "/api/v1/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveSettings stores the integration settings
func (c *Client) SaveSettings(ctx context.Context, input SettingsInput) (*Settings, error) {
	var out Settings
	if err := c.do(ctx, http.MethodPut, "/api/v1/settings", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TestConnections probes both integrations with the stored credentials
func (c *Client) TestConnections(ctx context.Context) (*ConnectionsResult, error) {
	var out ConnectionsResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/settings/test", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Users lists the non-admin accounts
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/api/v1/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser creates a dashboard account
func (c *Client) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/api/v1/users", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update to an account
func (c *Client) UpdateUser(ctx context.Context, userID string, input UpdateUserInput) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPut, "/api/v1/users/"+userID, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleUser flips the active flag of an account
func (c *Client) ToggleUser(ctx context.Context, userID string) (*ToggleResult, error) {
	var out ToggleResult
	if err := c.do(ctx, http.MethodPatch, "/api/v1/users/"+userID+"/toggle", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes an account
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/users/"+userID, nil, nil)
}
