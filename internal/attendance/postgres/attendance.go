package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/civicgrid/hr-management/internal/attendance"
	attendanceDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/attendance"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var _ attendance.RepositoryAPI = (*Repository)(nil)

func (r *Repository) Create(ctx context.Context, record *attendanceDatamodel.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// GetForDate returns the latest record for the given day, or nil when the
// user has not checked in that day.
func (r *Repository) GetForDate(ctx context.Context, userID, date string) (*attendanceDatamodel.AttendanceRecord, error) {
	var record attendanceDatamodel.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("check_in DESC").
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance for date: %w", err)
	}
	return &record, nil
}

func (r *Repository) SetCheckOut(ctx context.Context, recordID string, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&attendanceDatamodel.AttendanceRecord{}).
		Where("id = ?", recordID).
		Update("check_out", at).Error
	if err != nil {
		return fmt.Errorf("set check-out: %w", err)
	}
	return nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string, limit int) ([]*attendanceDatamodel.AttendanceRecord, error) {
	var records []*attendanceDatamodel.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, check_in DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list attendance by user: %w", err)
	}
	return records, nil
}
