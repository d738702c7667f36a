package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/civicgrid/hr-management/internal/dashboard"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ dashboard.RepositoryAPI = (*Repository)(nil)

// Stats gathers the four header-card counters in one round-trip. Present
// today counts distinct users, so duplicate check-ins don't inflate it.
func (r *Repository) Stats(ctx context.Context, today string) (dashboard.Stats, error) {
	var stats dashboard.Stats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM users WHERE is_active = TRUE) AS headcount,
			(SELECT COUNT(DISTINCT user_id) FROM attendance_records WHERE date = ?) AS present_today,
			(SELECT COUNT(*) FROM leave_requests WHERE status = 'pending') AS pending_leaves,
			(SELECT COUNT(*) FROM departments WHERE is_active = TRUE) AS departments
	`, today).Scan(&stats).Error
	if err != nil {
		return dashboard.Stats{}, fmt.Errorf("dashboard stats: %w", err)
	}
	return stats, nil
}

func (r *Repository) DepartmentOverview(ctx context.Context) ([]dashboard.DepartmentCount, error) {
	var overview []dashboard.DepartmentCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT d.name AS department, COUNT(u.id) AS employees
		FROM departments d
		LEFT JOIN users u ON u.department = d.name AND u.is_active = TRUE
		WHERE d.is_active = TRUE
		GROUP BY d.name
		ORDER BY d.name ASC
	`).Scan(&overview).Error
	if err != nil {
		return nil, fmt.Errorf("department overview: %w", err)
	}
	return overview, nil
}
