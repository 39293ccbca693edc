// Package client is the companion SDK for the auth HTTP surface. It
// holds the current session token, attaches it as a bearer credential to
// outgoing requests, and exposes login/logout/me against the server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	auth "github.com/merastore/go-auth"
)

// DefaultLoginPath is where Logout points clients after clearing state
const DefaultLoginPath = "/login"

// Client talks to the auth endpoints and manages the stored session.
// When no token is held, requests go out unauthenticated and the server
// side guard rejects them if authentication is required.
type Client struct {
	baseURL   string
	http      *http.Client
	store     SessionStore
	loginPath string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLoginPath overrides the post-logout destination
func WithLoginPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.loginPath = path
		}
	}
}

// New returns a Client backed by the given session store
func New(baseURL string, store SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: 15 * time.Second},
		store:     store,
		loginPath: DefaultLoginPath,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// IsAuthenticated reports whether a session token is currently held
func (c *Client) IsAuthenticated() bool {
	session, err := c.store.Load()
	return err == nil && session.Token != ""
}

// CurrentPrincipal returns the cached identity snapshot, or nil when no
// session is held or the record cannot be read. It never errors.
func (c *Client) CurrentPrincipal() *Principal {
	session, err := c.store.Load()
	if err != nil || session.Token == "" {
		return nil
	}

	principal := session.Principal
	return &principal
}

// Token returns the held session token, empty when unauthenticated
func (c *Client) Token() string {
	session, err := c.store.Load()
	if err != nil {
		return ""
	}
	return session.Token
}

// Logout clears the held token and cached principal and returns the
// login entry point the caller should navigate to. It is terminal: no
// session operation is valid afterwards until the next Login.
func (c *Client) Logout() string {
	if err := c.store.Clear(); err != nil {
		// nothing sensible to do beyond reporting the path anyway;
		// the server holds no session state to clean up
		return c.loginPath
	}
	return c.loginPath
}

type loginResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token"`
	User    Principal `json:"user"`
	Error   string    `json:"error"`
}

// Login authenticates against the server and stores the returned session
func (c *Client) Login(ctx context.Context, email, password string) (*Principal, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out := loginResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK || !out.Success {
		if out.Error != "" {
			return nil, fmt.Errorf("login failed: %s", out.Error)
		}
		return nil, fmt.Errorf("login failed: status %d", resp.StatusCode)
	}

	if err := c.store.Save(Session{Token: out.Token, Principal: out.User}); err != nil {
		return nil, err
	}

	principal := out.User
	return &principal, nil
}

type meResponse struct {
	Success bool       `json:"success"`
	User    *auth.User `json:"user"`
	Error   string     `json:"error"`
}

// Me fetches the live user record for the held session. The result
// reflects current role and status, which may differ from the cached
// principal snapshot.
func (c *Client) Me(ctx context.Context) (*auth.User, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	out := meResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK || out.User == nil {
		if out.Error != "" {
			return nil, fmt.Errorf("me failed: %s", out.Error)
		}
		return nil, fmt.Errorf("me failed: status %d", resp.StatusCode)
	}

	return out.User, nil
}

// Do issues a request against the server, attaching the held token as a
// bearer credential when one exists.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", auth.BearerScheme+" "+token)
	}

	return c.http.Do(req)
}
