package employee

import (
	"strings"
	"time"

	internal "github.com/civicgrid/hr-management/internal"
)

// JoinDateLayout is the calendar-date format accepted for join dates.
const JoinDateLayout = "2006-01-02"

type CreateEmployeeDTO struct {
	Email             string  `json:"email"`
	FullName          string  `json:"full_name"`
	TemporaryPassword string  `json:"temporary_password"`
	Department        *string `json:"department,omitempty"`
	Designation       *string `json:"designation,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Zone              *string `json:"zone,omitempty"`
	JoinDate          string  `json:"join_date,omitempty"`
}

func (d CreateEmployeeDTO) Validate() error {
	email := strings.TrimSpace(d.Email)
	if email == "" || !strings.Contains(email, "@") {
		return internal.NewFieldValidationError("email", "a valid email is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.FullName) == "" {
		return internal.NewFieldValidationError("full_name", "full name is required", internal.ErrCodeValidationFailed)
	}
	if len(d.TemporaryPassword) < 8 {
		return internal.NewFieldValidationError("temporary_password", "temporary password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	if d.JoinDate != "" {
		if _, err := time.Parse(JoinDateLayout, d.JoinDate); err != nil {
			return internal.NewFieldValidationError("join_date", "join date must be in YYYY-MM-DD format", internal.ErrCodeValidationFailed)
		}
	}
	return nil
}

// UpdateEmployeeDTO carries a partial profile update. Nil fields are left
// untouched.
type UpdateEmployeeDTO struct {
	FullName         *string `json:"full_name,omitempty"`
	Department       *string `json:"department,omitempty"`
	Designation      *string `json:"designation,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Zone             *string `json:"zone,omitempty"`
	AvatarURL        *string `json:"avatar_url,omitempty"`
	EmploymentStatus *string `json:"employment_status,omitempty"`
}

func (d UpdateEmployeeDTO) Validate() error {
	if d.FullName != nil && strings.TrimSpace(*d.FullName) == "" {
		return internal.NewFieldValidationError("full_name", "full name cannot be blank", internal.ErrCodeValidationFailed)
	}
	if d.EmploymentStatus != nil && !IsValidStatus(*d.EmploymentStatus) {
		return internal.NewFieldValidationError("employment_status", "unknown employment status: "+*d.EmploymentStatus, internal.ErrCodeValidationFailed)
	}
	return nil
}
