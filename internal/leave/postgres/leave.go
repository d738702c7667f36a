package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	leaveDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/leave"
	"github.com/civicgrid/hr-management/internal/leave"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ leave.RepositoryAPI = (*Repository)(nil)

func (r *Repository) Create(ctx context.Context, request *leaveDatamodel.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *Repository) GetByID(ctx context.Context, id string) (*leaveDatamodel.LeaveRequest, error) {
	var request leaveDatamodel.LeaveRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get leave request: %w", err)
	}
	return &request, nil
}

// UpdateDecision only touches pending rows so a concurrent decision cannot
// overwrite reviewer fields.
func (r *Repository) UpdateDecision(ctx context.Context, id, status, reviewedBy string, reviewedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&leaveDatamodel.LeaveRequest{}).
		Where("id = ? AND status = ?", id, leave.StatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewedBy,
			"reviewed_at": reviewedAt,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("update leave decision: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update leave decision: request %s is no longer pending", id)
	}
	return nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*leaveDatamodel.LeaveRequest, error) {
	var requests []*leaveDatamodel.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("list leave requests by user: %w", err)
	}
	return requests, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]leave.RequestWithName, error) {
	var requests []leave.RequestWithName
	err := r.db.WithContext(ctx).Raw(`
		SELECT lr.*, COALESCE(u.full_name, '') AS requester_name
		FROM leave_requests lr
		LEFT JOIN users u ON u.id = lr.user_id
		ORDER BY lr.created_at DESC
	`).Scan(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("list all leave requests: %w", err)
	}
	return requests, nil
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
