package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the calendar-date format stored in the date column.
const DateLayout = "2006-01-02"

type AttendanceRecord struct {
	ID        string     `gorm:"primaryKey;type:uuid"`
	UserID    string     `gorm:"column:user_id;type:uuid;not null;index:idx_attendance_user_date"`
	Date      string     `gorm:"column:date;type:date;not null;index:idx_attendance_user_date"`
	CheckIn   time.Time  `gorm:"column:check_in;not null"`
	CheckOut  *time.Time `gorm:"column:check_out"`
	Status    string     `gorm:"column:status;not null"`
	Notes     *string    `gorm:"column:notes"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

func (a *AttendanceRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
