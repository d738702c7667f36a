package role

import (
	"time"
)

// Role is the single access level a user holds. Exactly one role is active
// per user at any time.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleHRManager      Role = "hr_manager"
	RoleHROfficer      Role = "hr_officer"
	RoleDepartmentHead Role = "department_head"
	RoleEmployee       Role = "employee"
)

// DefaultRole backs users without an assignment row.
const DefaultRole = RoleEmployee

// UnknownUserName stands in when an audit entry references a user that no
// longer resolves to a profile.
const UnknownUserName = "Unknown User"

var validRoles = map[Role]bool{
	RoleAdmin:          true,
	RoleHRManager:      true,
	RoleHROfficer:      true,
	RoleDepartmentHead: true,
	RoleEmployee:       true,
}

// AllRoles returns the closed set of assignable roles in display order.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleHRManager, RoleHROfficer, RoleDepartmentHead, RoleEmployee}
}

func (r Role) IsValid() bool {
	return validRoles[r]
}

func (r Role) String() string {
	return string(r)
}

// UserWithRole is a directory row joined with its active assignment.
// AssignmentID is empty when the user still rides the employee default.
type UserWithRole struct {
	UserID       string  `json:"user_id"`
	AssignmentID string  `json:"assignment_id,omitempty"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Department   *string `json:"department,omitempty"`
	Designation  *string `json:"designation,omitempty"`
	Role         Role    `json:"role"`
	IsActive     bool    `json:"is_active"`
}

// AuditEntry is a role change annotated with resolved display names.
type AuditEntry struct {
	ID                string    `json:"id"`
	TargetUserID      string    `json:"target_user_id"`
	TargetUserName    string    `json:"target_user_name"`
	ChangedByUserID   string    `json:"changed_by_user_id"`
	ChangedByUserName string    `json:"changed_by_user_name"`
	OldRole           Role      `json:"old_role"`
	NewRole           Role      `json:"new_role"`
	ChangedAt         time.Time `json:"changed_at"`
}

// Stats backs the admin page header cards.
type Stats struct {
	TotalUsers int64 `json:"total_users"`
	Admins     int64 `json:"admins"`
	HRStaff    int64 `json:"hr_staff"`
}
