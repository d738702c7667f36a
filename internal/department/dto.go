package department

import (
	"github.com/civicgrid/hr-management/internal"
	"github.com/civicgrid/hr-management/internal/core/common/validation"
)

type DepartmentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DepartmentsResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}

type CreateDepartmentDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d *CreateDepartmentDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("description", d.Description).MaxLength(500)
	return v.Validate()
}

type UpdateDepartmentDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d *UpdateDepartmentDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MinLength(2).MaxLength(100)
	v.Field("description", d.Description).MaxLength(500)
	return v.Validate()
}
