package department

import (
	"time"

	departmentDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/department"
)

type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (d *Department) IsActiveDepartment() bool {
	return d.IsActive
}

func (d *Department) Activate() {
	d.IsActive = true
	d.UpdatedAt = time.Now()
}

func (d *Department) Deactivate() {
	d.IsActive = false
	d.UpdatedAt = time.Now()
}

func NewDepartment(name, description string) *Department {
	now := time.Now()
	return &Department{
		Name:        name,
		Description: description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func ToDataModel(d *Department) *departmentDatamodel.Department {
	return &departmentDatamodel.Department{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func FromDataModel(d *departmentDatamodel.Department) *Department {
	return &Department{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
