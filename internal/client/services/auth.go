// Package services contains application services for the CodeBuddy client.
// This file defines the authentication service: login, register and logout
// against the backend, with the resulting session applied to the store.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/TusharG27x/codebuddy/internal/client/client"
	"github.com/TusharG27x/codebuddy/internal/client/models"
	"github.com/TusharG27x/codebuddy/internal/client/session"
	"github.com/TusharG27x/codebuddy/internal/common"
	"github.com/TusharG27x/codebuddy/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login / Register: exchange credentials with the server and make the
//     returned user the current session. Only the most recent exchange may
//     do so; an older one finishing later gets common.ErrStaleResponse.
//   - Logout: always clears the local session, even when the server call fails.
//   - HandleUnauthorized: drop the local session after the server rejected it.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (models.Session, error)
	Register(ctx context.Context, name, email string, password []byte) (models.Session, error)
	Logout(ctx context.Context)
	HandleUnauthorized(ctx context.Context, err error) bool
	Close() error
}

type authService struct {
	client client.Client
	store  *session.Store
	seq    *session.Sequencer
	log    logging.Logger
}

func NewAuthService(c client.Client, store *session.Store, log logging.Logger) AuthService {
	return &authService{
		client: c,
		store:  store,
		seq:    &session.Sequencer{},
		log:    log.With("component", "auth"),
	}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (models.Session, error) {
	token := a.seq.Begin()
	defer common.WipeByteArray(password)

	sess, cr, err := a.client.Login(ctx, email, password)
	if err != nil {
		return models.Session{}, fmt.Errorf("login error: %w", err)
	}
	return a.apply(ctx, token, sess, cr)
}

func (a *authService) Register(ctx context.Context, name, email string, password []byte) (models.Session, error) {
	token := a.seq.Begin()
	defer common.WipeByteArray(password)

	sess, cr, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return models.Session{}, fmt.Errorf("register error: %w", err)
	}
	return a.apply(ctx, token, sess, cr)
}

// apply installs the exchange's credentials together with its session, and
// only while token is still the latest. A superseded exchange leaves both
// the store and the transport untouched.
func (a *authService) apply(ctx context.Context, token session.Token, sess models.Session, cr client.Credentials) (models.Session, error) {
	err := a.seq.Commit(token, func() error {
		if err := a.store.Login(ctx, sess); err != nil {
			return err
		}
		a.client.UseCredentials(cr)
		return nil
	})
	if errors.Is(err, common.ErrStaleResponse) {
		a.log.Debug(ctx, "dropping superseded auth response", "user_id", sess.UserID)
	}
	if err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

// Logout retires in-flight logins first so none of them can resurrect the
// session after it is cleared.
func (a *authService) Logout(ctx context.Context) {
	a.seq.Invalidate()

	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server logout failed", "error", err)
	}
	a.client.ClearCredentials()
	a.store.Logout(ctx)
}

// HandleUnauthorized logs the user out locally when err says the server no
// longer accepts the session. It reports whether it did so.
func (a *authService) HandleUnauthorized(ctx context.Context, err error) bool {
	if !errors.Is(err, client.ErrUnauthorized) {
		return false
	}
	if !a.store.Current().LoggedIn {
		return false
	}
	a.log.Info(ctx, "session rejected by server")
	a.seq.Invalidate()
	a.client.ClearCredentials()
	a.store.Logout(ctx)
	return true
}

func (a *authService) Close() error {
	return a.client.Close()
}
