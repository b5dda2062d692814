package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/TusharG27x/codebuddy/internal/client/models"
)

// Client is the contract with the CodeBuddy backend. Credentials are carried
// by a session cookie kept inside the implementation.
//
// Login and Register do not touch the credentials in use. They return the
// cookie state of their own exchange, which authenticates later calls only
// after it is passed to UseCredentials.
type Client interface {
	Login(ctx context.Context, email string, password []byte) (models.Session, Credentials, error)
	Register(ctx context.Context, name, email string, password []byte) (models.Session, Credentials, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, name, bio string) (models.Profile, error)
	DashboardStats(ctx context.Context) (json.RawMessage, error)
	Hint(ctx context.Context, problem, code string) (string, error)

	// UseCredentials makes cr the credentials of every later call.
	UseCredentials(cr Credentials)
	// ClearCredentials forgets the session cookie.
	ClearCredentials()
	Close() error
}

// Credentials is the cookie state produced by one credential exchange. The
// zero value holds no cookies.
type Credentials struct {
	jar http.CookieJar
}
