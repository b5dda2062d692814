package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/TusharG27x/codebuddy/internal/client/models"
	"github.com/TusharG27x/codebuddy/internal/common"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL+"/api/", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestHTTPClient_LoginSetsCookieForLaterCalls(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Email)
		assert.Equal(t, "pw", req.Password)

		http.SetCookie(w, &http.Cookie{Name: common.SessionCookieName, Value: "tok", Path: "/"})
		writeJSON(w, http.StatusOK, models.Session{UserID: "u1", Name: "Alice", Email: "alice@example.com"})
	})
	mux.HandleFunc("GET /api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(common.SessionCookieName)
		if err != nil || ck.Value != "tok" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "Not authorized"})
			return
		}
		writeJSON(w, http.StatusOK, models.Profile{Name: "Alice", Email: "alice@example.com", Bio: "hi"})
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	_, err := c.Profile(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)

	s, cr, err := c.Login(ctx, "alice@example.com", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, "u1", s.UserID)

	_, err = c.Profile(ctx)
	require.ErrorIs(t, err, ErrUnauthorized, "cookie must not apply before UseCredentials")

	c.UseCredentials(cr)
	p, err := c.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hi", p.Bio)

	c.ClearCredentials()
	_, err = c.Profile(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPClient_LateLoginDoesNotLeakIntoClearedClient(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		http.SetCookie(w, &http.Cookie{Name: common.SessionCookieName, Value: "stale", Path: "/"})
		writeJSON(w, http.StatusOK, models.Session{UserID: "u1", Name: "Alice", Email: "alice@example.com"})
	})
	mux.HandleFunc("GET /api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(common.SessionCookieName); err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "Not authorized, no token"})
			return
		}
		writeJSON(w, http.StatusOK, models.Profile{Name: "Alice"})
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, _, err := c.Login(ctx, "alice@example.com", []byte("pw"))
		done <- err
	}()

	<-arrived
	c.ClearCredentials()
	close(release)
	require.NoError(t, <-done)

	u, err := url.Parse(c.baseURL)
	require.NoError(t, err)
	assert.Empty(t, c.client().Jar.Cookies(u))

	_, err = c.Profile(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPClient_OnlyInstalledCredentialsAuthenticate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		http.SetCookie(w, &http.Cookie{Name: common.SessionCookieName, Value: req.Email, Path: "/"})
		writeJSON(w, http.StatusOK, models.Session{UserID: req.Email, Name: req.Email, Email: req.Email})
	})
	mux.HandleFunc("GET /api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(common.SessionCookieName)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "Not authorized, no token"})
			return
		}
		writeJSON(w, http.StatusOK, models.Profile{Email: ck.Value})
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	_, crA, err := c.Login(ctx, "a@example.com", []byte("pw"))
	require.NoError(t, err)
	_, crB, err := c.Login(ctx, "b@example.com", []byte("pw"))
	require.NoError(t, err)

	c.UseCredentials(crB)
	p, err := c.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", p.Email)

	c.UseCredentials(crA)
	p, err = c.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", p.Email)
}

func TestHTTPClient_SendsRequestID(t *testing.T) {
	var got string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(common.RequestIDHeaderName)
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, c.Logout(context.Background()))
	_, err := ulid.ParseStrict(got)
	require.NoError(t, err, "request id %q", got)
}

func TestHTTPClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		check  func(t *testing.T, err error)
	}{
		{"unauthorized", http.StatusUnauthorized, errorResponse{Message: "Invalid email or password"}, func(t *testing.T, err error) {
			require.ErrorIs(t, err, ErrUnauthorized)
		}},
		{"forbidden", http.StatusForbidden, nil, func(t *testing.T, err error) {
			require.ErrorIs(t, err, ErrUnauthorized)
		}},
		{"server", http.StatusInternalServerError, errorResponse{Message: "boom"}, func(t *testing.T, err error) {
			require.ErrorIs(t, err, ErrUnavailable)
		}},
		{"bad request", http.StatusBadRequest, errorResponse{Message: "User already exists"}, func(t *testing.T, err error) {
			var se *ServerError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, http.StatusBadRequest, se.Status)
			assert.Equal(t, "User already exists", Message(err))
		}},
		{"error field", http.StatusBadRequest, errorResponse{Error: "bad input"}, func(t *testing.T, err error) {
			assert.Equal(t, "bad input", Message(err))
		}},
		{"no payload", http.StatusNotFound, nil, func(t *testing.T, err error) {
			assert.Equal(t, "Not Found", Message(err))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.body == nil {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			}))
			_, _, err := c.Register(context.Background(), "n", "e@example.com", []byte("pw"))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestHTTPClient_ConnectionRefusedIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, time.Second)
	require.NoError(t, err)

	_, err = c.DashboardStats(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "Server unavailable, please try again later.", Message(err))
}

func TestHTTPClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewHTTPClient(srv.URL, 50*time.Millisecond)
	require.NoError(t, err)

	_, err = c.Hint(context.Background(), "p", "c")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_HintAndStats(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/ai/get-hint", func(w http.ResponseWriter, r *http.Request) {
		var req hintRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, http.StatusOK, hintResponse{Hint: "look at " + req.Problem})
	})
	mux.HandleFunc("GET /api/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"hintsRequested": 2})
	})
	mux.HandleFunc("PUT /api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		var req profileUpdateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeJSON(w, http.StatusOK, models.Profile{Name: req.Name, Email: "a@example.com", Bio: req.Bio})
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	hint, err := c.Hint(ctx, "two sum", "code")
	require.NoError(t, err)
	assert.Equal(t, "look at two sum", hint)

	raw, err := c.DashboardStats(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"hintsRequested":2}`, string(raw))

	p, err := c.UpdateProfile(ctx, "Al", "bio")
	require.NoError(t, err)
	assert.Equal(t, models.Profile{Name: "Al", Email: "a@example.com", Bio: "bio"}, p)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Invalid email or password!", Message(ErrUnauthorized))
	assert.Equal(t, "x", Message(errors.New("x")))
}
