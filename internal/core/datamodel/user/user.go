package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the persistence model for an employee profile plus credentials.
type User struct {
	ID               string     `gorm:"primaryKey;type:uuid"`
	Email            string     `gorm:"uniqueIndex;not null"`
	FullName         string     `gorm:"column:full_name;not null"`
	PasswordHash     string     `gorm:"column:password_hash;not null"`
	Department       *string    `gorm:"column:department"`
	Designation      *string    `gorm:"column:designation"`
	AvatarURL        *string    `gorm:"column:avatar_url"`
	Phone            *string    `gorm:"column:phone"`
	Zone             *string    `gorm:"column:zone"`
	EmploymentStatus string     `gorm:"column:employment_status;default:active"`
	JoinDate         *time.Time `gorm:"column:join_date;type:date"`
	IsActive         bool       `gorm:"column:is_active;default:true"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
