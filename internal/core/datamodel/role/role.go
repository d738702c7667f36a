package role

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole is the single active role assignment for a user. One row per user;
// updates are last-write-wins.
type UserRole struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	UserID    string    `gorm:"column:user_id;type:uuid;uniqueIndex;not null"`
	Role      string    `gorm:"column:role;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// RoleAuditLog is append-only: rows are inserted on every successful role
// change and never updated or deleted.
type RoleAuditLog struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	TargetUserID    string    `gorm:"column:target_user_id;type:uuid;not null;index"`
	ChangedByUserID string    `gorm:"column:changed_by_user_id;type:uuid;not null"`
	OldRole         string    `gorm:"column:old_role;not null"`
	NewRole         string    `gorm:"column:new_role;not null"`
	ChangedAt       time.Time `gorm:"column:changed_at;index"`
}

func (RoleAuditLog) TableName() string {
	return "role_audit_log"
}

func (l *RoleAuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
