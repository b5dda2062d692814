// Package services contains server-side business logic. This file implements
// UserService: registration, login and profile management.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/TusharG27x/codebuddy/internal/common"
	"github.com/TusharG27x/codebuddy/internal/cryptox"
	"github.com/TusharG27x/codebuddy/internal/dbx"
	"github.com/TusharG27x/codebuddy/internal/server/auth"
	"github.com/TusharG27x/codebuddy/internal/server/config"
	"github.com/TusharG27x/codebuddy/internal/server/models"
	"github.com/TusharG27x/codebuddy/internal/server/repositories/repomanager"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	jwtSecret       []byte
	sessionValidity time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:              db,
		repomanager:     m,
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidity,
	}
}

// Register creates the user together with its stats row in one transaction
// and returns the user and a session token.
func (s *UserService) Register(ctx context.Context, name, email string, password []byte) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return nil, "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(password) == 0 {
		return nil, "", fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	salt, verifier := cryptox.HashPassword(password)

	var created *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repomanager.Users(tx).Create(ctx, &models.User{Name: name, Email: email, Salt: salt, Verifier: verifier})
		if err != nil {
			return err
		}
		if err := s.repomanager.Stats(tx).Create(ctx, u.ID); err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateToken(created.ID)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// Login checks the password and returns the user and a session token.
// Unknown emails and wrong passwords both yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email string, password []byte) (*models.User, string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Burn the same work as a real check.
			cryptox.VerifyPassword(password, common.GenerateRandByteArray(cryptox.SaltSize), nil)
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", ErrInternal
	}
	if !cryptox.VerifyPassword(password, user.Salt, user.Verifier) {
		return nil, "", common.ErrInvalidCredentials
	}

	if err := s.repomanager.Stats(s.db).Increment(ctx, user.ID, models.CounterLogins); err != nil {
		return nil, "", fmt.Errorf("error recording login: %w", err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves a session token to a user id.
func (s *UserService) Authenticate(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID, name, bio string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return s.repomanager.Users(s.db).UpdateProfile(ctx, userID, name, strings.TrimSpace(bio))
}

// SessionValidity is how long issued tokens stay valid.
func (s *UserService) SessionValidity() time.Duration {
	return s.sessionValidity
}

func (s *UserService) generateToken(userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.sessionValidity)
	if err != nil {
		return "", ErrInternal
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
