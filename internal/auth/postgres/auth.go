package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/civicgrid/hr-management/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentialsByEmail(ctx context.Context, email string) (string, string, bool, error) {
	var (
		userID       string
		passwordHash string
		isActive     bool
	)
	query := `SELECT id, password_hash, is_active FROM users WHERE email = ?`

	row := r.db.WithContext(ctx).Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash, &isActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", false, fmt.Errorf("user not found")
		}
		return "", "", false, err
	}
	return userID, passwordHash, isActive, nil
}

// GetSessionUser loads the profile joined with the current role assignment.
// A user without an assignment row reads as 'employee'; the fallback lives
// here, in the data-access layer, not at call sites.
func (r *Repository) GetSessionUser(ctx context.Context, userID string) (*auth.SessionUser, error) {
	var u auth.SessionUser
	query := `SELECT u.id, u.email, u.full_name, COALESCE(ur.role, 'employee') AS role
	          FROM users u
	          LEFT JOIN user_roles ur ON ur.user_id = u.id
	          WHERE u.id = ? AND u.is_active = true`

	row := r.db.WithContext(ctx).Raw(query, userID).Row()
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return &u, nil
}

var _ auth.UserRepository = (*Repository)(nil)
