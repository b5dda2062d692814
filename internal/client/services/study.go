package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/TusharG27x/codebuddy/internal/client/client"
	"github.com/TusharG27x/codebuddy/internal/client/models"
	"github.com/TusharG27x/codebuddy/internal/client/session"
	"github.com/TusharG27x/codebuddy/internal/common"
)

var ErrEmptyCode = errors.New("write some code before asking for a hint")

// StudyService wraps the authenticated endpoints used by the dashboard,
// profile and editor views. A 401 from any of them logs the user out.
type StudyService interface {
	Stats(ctx context.Context) (json.RawMessage, error)
	Profile(ctx context.Context) (models.Profile, error)
	SaveProfile(ctx context.Context, name, bio string) (models.Session, error)
	Hint(ctx context.Context, d models.Draft) (string, error)
}

type studyService struct {
	client client.Client
	store  *session.Store
	auth   AuthService
}

func NewStudyService(c client.Client, store *session.Store, auth AuthService) StudyService {
	return &studyService{client: c, store: store, auth: auth}
}

func (s *studyService) Stats(ctx context.Context) (json.RawMessage, error) {
	raw, err := s.client.DashboardStats(ctx)
	if err != nil {
		return nil, s.fail(ctx, "stats", err)
	}
	return raw, nil
}

func (s *studyService) Profile(ctx context.Context) (models.Profile, error) {
	p, err := s.client.Profile(ctx)
	if err != nil {
		return models.Profile{}, s.fail(ctx, "profile", err)
	}
	return p, nil
}

// SaveProfile sends the edit to the server and replaces the session's
// profile with what the server returned.
func (s *studyService) SaveProfile(ctx context.Context, name, bio string) (models.Session, error) {
	if !s.store.Current().LoggedIn {
		return models.Session{}, common.ErrNoSession
	}

	p, err := s.client.UpdateProfile(ctx, name, bio)
	if err != nil {
		return models.Session{}, s.fail(ctx, "update profile", err)
	}
	return s.store.ReplaceProfile(ctx, p)
}

// Hint refuses blank code and the untouched editor placeholder.
func (s *studyService) Hint(ctx context.Context, d models.Draft) (string, error) {
	code := strings.TrimSpace(d.CodeText)
	if code == "" || code == common.CodePlaceholder {
		return "", ErrEmptyCode
	}

	hint, err := s.client.Hint(ctx, d.ProblemText, d.CodeText)
	if err != nil {
		return "", s.fail(ctx, "hint", err)
	}
	return hint, nil
}

func (s *studyService) fail(ctx context.Context, op string, err error) error {
	s.auth.HandleUnauthorized(ctx, err)
	return fmt.Errorf("%s error: %w", op, err)
}
