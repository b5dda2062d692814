package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TusharG27x/codebuddy/internal/common"
	"github.com/TusharG27x/codebuddy/internal/dbx"
	"github.com/TusharG27x/codebuddy/internal/server/models"
	"github.com/google/uuid"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts user, assigning a new id and creation time. A duplicate
// email yields common.ErrAlreadyExists.
func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	u := *user
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()

	query :=
		`INSERT INTO users (id, name, email, bio, salt, verifier, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.Bio, u.Salt, u.Verifier, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &u, nil
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, name, email, bio, salt, verifier, created_at FROM users WHERE email = ?`, email)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, name, email, bio, salt, verifier, created_at FROM users WHERE id = ?`, id)
}

func (r *SQLiteRepository) UpdateProfile(ctx context.Context, id, name, bio string) (*models.User, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET name = ?, bio = ? WHERE id = ?`, name, bio, id)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Name, &user.Email, &user.Bio, &user.Salt, &user.Verifier, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
