package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	roleDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/role"
	"github.com/civicgrid/hr-management/internal/role"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ role.RepositoryAPI = (*Repository)(nil)

// ListUsersWithRoles left-joins assignments so users without a row surface
// with the employee default and an empty assignment id.
func (r *Repository) ListUsersWithRoles(ctx context.Context) ([]role.UserWithRole, error) {
	var users []role.UserWithRole
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id AS user_id,
		       COALESCE(ur.id::text, '') AS assignment_id,
		       u.full_name,
		       u.email,
		       u.department,
		       u.designation,
		       COALESCE(ur.role, 'employee') AS role,
		       u.is_active
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		ORDER BY u.full_name ASC
	`).Scan(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users with roles: %w", err)
	}
	return users, nil
}

// UpsertAssignment keeps the one-row-per-user invariant: an existing
// assignment is overwritten, a missing one is created.
func (r *Repository) UpsertAssignment(ctx context.Context, userID string, newRole role.Role) error {
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO user_roles (id, user_id, role, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET role = EXCLUDED.role, updated_at = NOW()
	`, uuid.NewString(), userID, newRole.String()).Error
	if err != nil {
		return fmt.Errorf("upsert role assignment: %w", err)
	}
	return nil
}

func (r *Repository) AppendAudit(ctx context.Context, entry *roleDatamodel.RoleAuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Exec(`
		INSERT INTO role_audit_log (id, target_user_id, changed_by_user_id, old_role, new_role, changed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.TargetUserID, entry.ChangedByUserID, entry.OldRole, entry.NewRole, entry.ChangedAt).Error
	if err != nil {
		return fmt.Errorf("append role audit: %w", err)
	}
	return nil
}

// ListAudit resolves display names in the same query; missing users come back
// with empty names and the service substitutes the fallback.
func (r *Repository) ListAudit(ctx context.Context, limit int) ([]role.AuditEntry, error) {
	var entries []role.AuditEntry
	err := r.db.WithContext(ctx).Raw(`
		SELECT l.id,
		       l.target_user_id,
		       COALESCE(tu.full_name, '') AS target_user_name,
		       l.changed_by_user_id,
		       COALESCE(cu.full_name, '') AS changed_by_user_name,
		       l.old_role,
		       l.new_role,
		       l.changed_at
		FROM role_audit_log l
		LEFT JOIN users tu ON tu.id = l.target_user_id
		LEFT JOIN users cu ON cu.id = l.changed_by_user_id
		ORDER BY l.changed_at DESC
		LIMIT ?
	`, limit).Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list role audit: %w", err)
	}
	return entries, nil
}

func (r *Repository) GetUserName(ctx context.Context, userID string) (string, error) {
	var name string
	err := r.db.WithContext(ctx).Raw(`
		SELECT full_name FROM users WHERE id = ?
	`, userID).Scan(&name).Error
	if err != nil {
		return "", fmt.Errorf("get user name: %w", err)
	}
	return name, nil
}

func (r *Repository) CountStats(ctx context.Context) (role.Stats, error) {
	var stats role.Stats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM user_roles WHERE role = 'admin') AS admins,
			(SELECT COUNT(*) FROM user_roles WHERE role IN ('hr_manager', 'hr_officer')) AS hr_staff
	`).Scan(&stats).Error
	if err != nil {
		return role.Stats{}, fmt.Errorf("count role stats: %w", err)
	}
	return stats, nil
}
