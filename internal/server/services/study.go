package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/TusharG27x/codebuddy/internal/server/models"
	"github.com/TusharG27x/codebuddy/internal/server/repositories/repomanager"
)

// StudyService serves the dashboard and the hint endpoint. Hints are canned:
// generating real ones is the job of an external AI service.
type StudyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStudyService(db *sql.DB, m repomanager.RepositoryManager) *StudyService {
	return &StudyService{db: db, repomanager: m}
}

func (s *StudyService) Stats(ctx context.Context, userID string) (*models.Stats, error) {
	return s.repomanager.Stats(s.db).Get(ctx, userID)
}

// Hint returns a generic hint for code and counts the request.
func (s *StudyService) Hint(ctx context.Context, userID, problem, code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if err := s.repomanager.Stats(s.db).Increment(ctx, userID, models.CounterHints); err != nil {
		return "", fmt.Errorf("error recording hint: %w", err)
	}
	return cannedHint(problem, code), nil
}

func cannedHint(problem, code string) string {
	lines := strings.Count(strings.TrimSpace(code), "\n") + 1
	topic := strings.TrimSpace(problem)
	if topic == "" {
		topic = "this problem"
	}
	switch {
	case lines < 3:
		return fmt.Sprintf("Start by writing out the inputs and expected output for %s, then sketch the steps before coding.", topic)
	case strings.Contains(code, "for") && strings.Count(code, "for") > 1:
		return "Nested loops are often quadratic. Could a map or a sorted order let you find the answer in one pass?"
	default:
		return fmt.Sprintf("Walk through %s with the smallest input by hand and check each line of your code against it.", topic)
	}
}
