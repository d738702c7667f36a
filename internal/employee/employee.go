package employee

import (
	"time"

	userDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/user"
)

const (
	StatusActive    = "active"
	StatusProbation = "probation"
	StatusOnLeave   = "on_leave"
	StatusResigned  = "resigned"
)

var validStatuses = map[string]bool{
	StatusActive:    true,
	StatusProbation: true,
	StatusOnLeave:   true,
	StatusResigned:  true,
}

func IsValidStatus(status string) bool {
	return validStatuses[status]
}

// ListFilter narrows the directory listing. Query matches name or email,
// the other fields match exactly. Empty fields are ignored.
type ListFilter struct {
	Query      string
	Department string
	Status     string
}

// Profile is the directory view of a user, without credentials.
type Profile struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	FullName         string     `json:"full_name"`
	Department       *string    `json:"department,omitempty"`
	Designation      *string    `json:"designation,omitempty"`
	AvatarURL        *string    `json:"avatar_url,omitempty"`
	Phone            *string    `json:"phone,omitempty"`
	Zone             *string    `json:"zone,omitempty"`
	EmploymentStatus string     `json:"employment_status"`
	JoinDate         *time.Time `json:"join_date,omitempty"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
}

func ProfileFromDataModel(u *userDatamodel.User) Profile {
	return Profile{
		ID:               u.ID,
		Email:            u.Email,
		FullName:         u.FullName,
		Department:       u.Department,
		Designation:      u.Designation,
		AvatarURL:        u.AvatarURL,
		Phone:            u.Phone,
		Zone:             u.Zone,
		EmploymentStatus: u.EmploymentStatus,
		JoinDate:         u.JoinDate,
		IsActive:         u.IsActive,
		CreatedAt:        u.CreatedAt,
	}
}
