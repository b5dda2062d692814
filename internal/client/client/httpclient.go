package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/TusharG27x/codebuddy/internal/client/models"
	"github.com/TusharG27x/codebuddy/internal/common"
	"github.com/oklog/ulid/v2"
	"golang.org/x/net/publicsuffix"
)

// Route paths relative to the base URL.
const (
	PathLogin     = "/users/login"
	PathLogout    = "/users/logout"
	PathRegister  = "/users/register"
	PathProfile   = "/users/profile"
	PathDashboard = "/dashboard/stats"
	PathHint      = "/ai/get-hint"
)

type HTTPClient struct {
	baseURL string
	timeout time.Duration

	mu   sync.Mutex
	http *http.Client
}

// NewHTTPClient returns a client for the API rooted at baseURL, e.g.
// "http://localhost:5000/api". timeout bounds each request; zero means none.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	jar, err := newJar()
	if err != nil {
		return nil, err
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{Jar: jar},
	}, nil
}

func newJar() (http.CookieJar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileUpdateRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

type hintRequest struct {
	Code    string `json:"code"`
	Problem string `json:"problem"`
}

type hintResponse struct {
	Hint string `json:"hint"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (models.Session, Credentials, error) {
	return c.exchange(ctx, PathLogin, loginRequest{Email: email, Password: string(password)})
}

func (c *HTTPClient) Register(ctx context.Context, name, email string, password []byte) (models.Session, Credentials, error) {
	return c.exchange(ctx, PathRegister, registerRequest{Name: name, Email: email, Password: string(password)})
}

// exchange runs a credential request on a client of its own, so the cookie
// it receives stays out of the credentials in use.
func (c *HTTPClient) exchange(ctx context.Context, path string, in any) (models.Session, Credentials, error) {
	jar, err := newJar()
	if err != nil {
		return models.Session{}, Credentials{}, fmt.Errorf("cookie jar: %w", err)
	}

	var s models.Session
	if err := c.doWith(ctx, &http.Client{Jar: jar}, http.MethodPost, path, in, &s); err != nil {
		return models.Session{}, Credentials{}, err
	}
	return s, Credentials{jar: jar}, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, PathLogout, struct{}{}, nil)
}

func (c *HTTPClient) Profile(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	err := c.do(ctx, http.MethodGet, PathProfile, nil, &p)
	return p, err
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, name, bio string) (models.Profile, error) {
	var p models.Profile
	err := c.do(ctx, http.MethodPut, PathProfile, profileUpdateRequest{Name: name, Bio: bio}, &p)
	return p, err
}

func (c *HTTPClient) DashboardStats(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	err := c.do(ctx, http.MethodGet, PathDashboard, nil, &raw)
	return raw, err
}

func (c *HTTPClient) Hint(ctx context.Context, problem, code string) (string, error) {
	var resp hintResponse
	if err := c.do(ctx, http.MethodPost, PathHint, hintRequest{Code: code, Problem: problem}, &resp); err != nil {
		return "", err
	}
	return resp.Hint, nil
}

// UseCredentials replaces the underlying http.Client. Requests already in
// flight finish on the old one and its cookies are dropped with it.
func (c *HTTPClient) UseCredentials(cr Credentials) {
	jar := cr.jar
	if jar == nil {
		var err error
		if jar, err = newJar(); err != nil {
			return
		}
	}

	c.mu.Lock()
	c.http = &http.Client{Jar: jar}
	c.mu.Unlock()
}

func (c *HTTPClient) ClearCredentials() {
	c.UseCredentials(Credentials{})
}

func (c *HTTPClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.http
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	return c.doWith(ctx, c.client(), method, path, in, out)
}

func (c *HTTPClient) doWith(ctx context.Context, hc *http.Client, method, path string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, ulid.Make().String())

	resp, err := hc.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if err := mapStatus(resp.StatusCode, data); err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func mapStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	var payload errorResponse
	_ = json.Unmarshal(body, &payload)
	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		}
		return ErrUnauthorized
	case status >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	default:
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &ServerError{Status: status, Message: msg}
	}
}
