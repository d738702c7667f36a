package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/user"
	"github.com/civicgrid/hr-management/internal/employee"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ employee.RepositoryAPI = (*Repository)(nil)

func (r *Repository) List(ctx context.Context, filter employee.ListFilter, limit, offset int) ([]*userDatamodel.User, error) {
	query := r.db.WithContext(ctx).Model(&userDatamodel.User{})

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Status != "" {
		query = query.Where("employment_status = ?", filter.Status)
	}

	var users []*userDatamodel.User
	err := query.Order("full_name ASC").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return users, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &user, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee by email: %w", err)
	}
	return &user, nil
}

func (r *Repository) Create(ctx context.Context, user *userDatamodel.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *Repository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	err := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// ProvisionDefaultRole writes the employee assignment row for a new hire.
// An existing row is left alone.
func (r *Repository) ProvisionDefaultRole(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO user_roles (id, user_id, role, created_at, updated_at)
		VALUES (?, ?, 'employee', NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`, uuid.NewString(), userID).Error
	if err != nil {
		return fmt.Errorf("provision default role: %w", err)
	}
	return nil
}
