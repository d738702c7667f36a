package employee

import (
	"context"
	"log/slog"
	"strings"
	"time"

	internal "github.com/civicgrid/hr-management/internal"
	userDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/user"
	"github.com/civicgrid/hr-management/internal/core/events"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*userDatamodel.User, error)
	GetByID(ctx context.Context, id string) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	Create(ctx context.Context, user *userDatamodel.User) error
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	ProvisionDefaultRole(ctx context.Context, userID string) error
}

// PasswordHasher is satisfied by the auth service so both share one bcrypt
// cost setting.
type PasswordHasher interface {
	HashPassword(plain string) (string, error)
}

// DepartmentChecker is satisfied by the department service.
type DepartmentChecker interface {
	IsValidDepartment(ctx context.Context, name string) bool
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type Service struct {
	repo        RepositoryAPI
	hasher      PasswordHasher
	departments DepartmentChecker
	eventBus    EventPublisher
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, departments DepartmentChecker, eventBus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		hasher:      hasher,
		departments: departments,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// List returns directory profiles matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int) ([]Profile, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, internal.NewRetrievalError("could not load employees", err)
	}

	profiles := make([]Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, ProfileFromDataModel(u))
	}
	return profiles, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Profile, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return nil, internal.NewRetrievalError("could not load employee", err)
	}
	if user == nil {
		return nil, internal.NewNotFoundError("employee not found", internal.ErrCodeEmployeeNotFound)
	}

	profile := ProfileFromDataModel(user)
	return &profile, nil
}

// Create onboards a new employee: the profile row, a hashed temporary
// password and the default employee role assignment.
func (s *Service) Create(ctx context.Context, dto CreateEmployeeDTO) (*Profile, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("employee creation rejected", "error", err)
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(dto.Email))
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to check for duplicate email", "error", err, "email", email)
		return nil, internal.NewRetrievalError("could not verify email", err)
	}
	if existing != nil {
		return nil, internal.NewConflictError("an employee with this email already exists", internal.ErrCodeDuplicateEmail)
	}

	if dto.Department != nil && *dto.Department != "" && !s.departments.IsValidDepartment(ctx, *dto.Department) {
		return nil, internal.NewFieldValidationError("department", "unknown department", internal.ErrCodeValidationFailed)
	}

	hash, err := s.hasher.HashPassword(dto.TemporaryPassword)
	if err != nil {
		s.logger.Error("failed to hash temporary password", "error", err)
		return nil, internal.NewInternalError("could not create employee", err)
	}

	user := &userDatamodel.User{
		Email:            email,
		FullName:         strings.TrimSpace(dto.FullName),
		PasswordHash:     hash,
		Department:       dto.Department,
		Designation:      dto.Designation,
		Phone:            dto.Phone,
		Zone:             dto.Zone,
		EmploymentStatus: StatusActive,
		IsActive:         true,
	}
	if dto.JoinDate != "" {
		joinDate, _ := time.Parse(JoinDateLayout, dto.JoinDate)
		user.JoinDate = &joinDate
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create employee", "error", err, "email", email)
		return nil, internal.NewMutationError("could not create employee", err)
	}

	if err := s.repo.ProvisionDefaultRole(ctx, user.ID); err != nil {
		// The profile exists; the missing assignment row falls back to the
		// employee default on read.
		s.logger.Error("failed to provision default role", "error", err, "user_id", user.ID)
	}

	department := ""
	if dto.Department != nil {
		department = *dto.Department
	}
	designation := ""
	if dto.Designation != nil {
		designation = *dto.Designation
	}
	s.eventBus.Publish(ctx, events.NewEmployeeOnboardedEvent(user.ID, user.FullName, department, designation))

	s.logger.Info("employee onboarded", "user_id", user.ID, "email", email)
	profile := ProfileFromDataModel(user)
	return &profile, nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateEmployeeDTO) (*Profile, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load employee for update", "error", err, "employee_id", id)
		return nil, internal.NewRetrievalError("could not load employee", err)
	}
	if user == nil {
		return nil, internal.NewNotFoundError("employee not found", internal.ErrCodeEmployeeNotFound)
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if dto.FullName != nil {
		updates["full_name"] = *dto.FullName
		user.FullName = *dto.FullName
	}
	if dto.Department != nil {
		if *dto.Department != "" && !s.departments.IsValidDepartment(ctx, *dto.Department) {
			return nil, internal.NewFieldValidationError("department", "unknown department", internal.ErrCodeValidationFailed)
		}
		updates["department"] = *dto.Department
		user.Department = dto.Department
	}
	if dto.Designation != nil {
		updates["designation"] = *dto.Designation
		user.Designation = dto.Designation
	}
	if dto.Phone != nil {
		updates["phone"] = *dto.Phone
		user.Phone = dto.Phone
	}
	if dto.Zone != nil {
		updates["zone"] = *dto.Zone
		user.Zone = dto.Zone
	}
	if dto.AvatarURL != nil {
		updates["avatar_url"] = *dto.AvatarURL
		user.AvatarURL = dto.AvatarURL
	}
	if dto.EmploymentStatus != nil {
		updates["employment_status"] = *dto.EmploymentStatus
		user.EmploymentStatus = *dto.EmploymentStatus
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, internal.NewMutationError("could not update employee", err)
	}

	s.logger.Info("employee updated", "employee_id", id)
	profile := ProfileFromDataModel(user)
	return &profile, nil
}

// Deactivate disables the account. The profile and its history stay.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load employee for deactivation", "error", err, "employee_id", id)
		return internal.NewRetrievalError("could not load employee", err)
	}
	if user == nil {
		return internal.NewNotFoundError("employee not found", internal.ErrCodeEmployeeNotFound)
	}

	updates := map[string]interface{}{
		"is_active":         false,
		"employment_status": StatusResigned,
		"updated_at":        time.Now(),
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		s.logger.Error("failed to deactivate employee", "error", err, "employee_id", id)
		return internal.NewMutationError("could not deactivate employee", err)
	}

	s.logger.Info("employee deactivated", "employee_id", id)
	return nil
}
