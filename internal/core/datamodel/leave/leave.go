package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRequest struct {
	ID         string     `gorm:"primaryKey;type:uuid"`
	UserID     string     `gorm:"column:user_id;type:uuid;not null;index"`
	LeaveType  string     `gorm:"column:leave_type;not null"`
	StartDate  time.Time  `gorm:"column:start_date;type:date;not null"`
	EndDate    time.Time  `gorm:"column:end_date;type:date;not null"`
	Reason     string     `gorm:"column:reason;not null"`
	Status     string     `gorm:"column:status;default:pending;index"`
	ReviewedBy *string    `gorm:"column:reviewed_by;type:uuid"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (l *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
