package department

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/civicgrid/hr-management/internal"
	departmentDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/department"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*departmentDatamodel.Department, error)
	GetByID(ctx context.Context, id string) (*departmentDatamodel.Department, error)
	GetByName(ctx context.Context, name string) (*departmentDatamodel.Department, error)
	Create(ctx context.Context, dept *departmentDatamodel.Department) error
	Update(ctx context.Context, dept *departmentDatamodel.Department) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListDepartments returns active departments only. Deactivated ones stay in
// the table so historical employee rows keep a valid reference.
func (s *Service) ListDepartments(ctx context.Context) ([]DepartmentResponse, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, internal.NewRetrievalError("could not list departments", err)
	}

	responses := make([]DepartmentResponse, 0, len(rows))
	for _, row := range rows {
		dept := FromDataModel(row)
		if dept.IsActiveDepartment() {
			responses = append(responses, DepartmentResponse{
				ID:          dept.ID,
				Name:        dept.Name,
				Description: dept.Description,
			})
		}
	}

	return responses, nil
}

func (s *Service) CreateDepartment(ctx context.Context, dto CreateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)

	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		s.logger.Error("failed to check department name", "name", name, "error", err)
		return nil, internal.NewRetrievalError("could not check department name", err)
	}
	if existing != nil {
		return nil, internal.NewConflictError("department already exists", internal.ErrCodeDuplicateDepartment)
	}

	dept := NewDepartment(name, strings.TrimSpace(dto.Description))
	record := ToDataModel(dept)
	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error("failed to create department", "name", name, "error", err)
		return nil, internal.NewMutationError("could not create department", err)
	}
	dept.ID = record.ID

	s.logger.Info("department created", "department_id", dept.ID, "name", dept.Name)
	return dept, nil
}

func (s *Service) UpdateDepartment(ctx context.Context, id string, dto UpdateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get department", "department_id", id, "error", err)
		return nil, internal.NewRetrievalError("could not get department", err)
	}
	if record == nil {
		return nil, internal.NewNotFoundError("department not found", internal.ErrCodeDepartmentNotFound)
	}

	dept := FromDataModel(record)
	dept.Name = strings.TrimSpace(dto.Name)
	dept.Description = strings.TrimSpace(dto.Description)
	dept.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, ToDataModel(dept)); err != nil {
		s.logger.Error("failed to update department", "department_id", id, "error", err)
		return nil, internal.NewMutationError("could not update department", err)
	}

	return dept, nil
}

func (s *Service) ActivateDepartment(ctx context.Context, id string) (*Department, error) {
	return s.setActive(ctx, id, true)
}

func (s *Service) DeactivateDepartment(ctx context.Context, id string) (*Department, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) setActive(ctx context.Context, id string, active bool) (*Department, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get department", "department_id", id, "error", err)
		return nil, internal.NewRetrievalError("could not get department", err)
	}
	if record == nil {
		return nil, internal.NewNotFoundError("department not found", internal.ErrCodeDepartmentNotFound)
	}

	dept := FromDataModel(record)
	if active {
		dept.Activate()
	} else {
		dept.Deactivate()
	}

	if err := s.repo.Update(ctx, ToDataModel(dept)); err != nil {
		s.logger.Error("failed to change department state", "department_id", id, "active", active, "error", err)
		return nil, internal.NewMutationError("could not update department", err)
	}

	s.logger.Info("department state changed", "department_id", id, "active", active)
	return dept, nil
}

// IsValidDepartment reports whether name matches an active department.
func (s *Service) IsValidDepartment(ctx context.Context, name string) bool {
	record, err := s.repo.GetByName(ctx, name)
	if err != nil {
		s.logger.Warn("error checking department validity", "name", name, "error", err)
		return false
	}
	return record != nil && record.IsActive
}
