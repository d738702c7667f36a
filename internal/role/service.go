package role

import (
	"context"
	"log/slog"
	"time"

	internal "github.com/civicgrid/hr-management/internal"
	"github.com/civicgrid/hr-management/internal/auth"
	roleDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/role"
	"github.com/civicgrid/hr-management/internal/core/events"
)

// DefaultAuditLimit caps how many audit entries a single listing returns.
const DefaultAuditLimit = 50

type RepositoryAPI interface {
	ListUsersWithRoles(ctx context.Context) ([]UserWithRole, error)
	UpsertAssignment(ctx context.Context, userID string, newRole Role) error
	AppendAudit(ctx context.Context, entry *roleDatamodel.RoleAuditLog) error
	ListAudit(ctx context.Context, limit int) ([]AuditEntry, error)
	GetUserName(ctx context.Context, userID string) (string, error)
	CountStats(ctx context.Context) (Stats, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type Service struct {
	repo     RepositoryAPI
	eventBus EventPublisher
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, eventBus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// ListUsersWithRoles returns every user joined with their active role.
// Users without an assignment row show up as employee.
func (s *Service) ListUsersWithRoles(ctx context.Context) ([]UserWithRole, error) {
	users, err := s.repo.ListUsersWithRoles(ctx)
	if err != nil {
		s.logger.Error("failed to list users with roles", "error", err)
		return nil, internal.NewRetrievalError("could not load users", err)
	}
	return users, nil
}

// ChangeRole updates the target user's assignment and appends an audit entry.
// When old and new role are equal the call succeeds without touching anything.
// The audit append is best-effort: a failure there is logged and the role
// change stands.
func (s *Service) ChangeRole(ctx context.Context, actor *auth.SessionUser, dto ChangeRoleDTO) error {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("role change rejected", "error", err, "target_user_id", dto.TargetUserID)
		return err
	}

	if dto.OldRole == dto.NewRole {
		s.logger.Info("role unchanged, nothing to do",
			"target_user_id", dto.TargetUserID,
			"role", dto.NewRole)
		return nil
	}

	if err := s.repo.UpsertAssignment(ctx, dto.TargetUserID, Role(dto.NewRole)); err != nil {
		s.logger.Error("failed to update role assignment",
			"error", err,
			"target_user_id", dto.TargetUserID,
			"new_role", dto.NewRole)
		return internal.NewMutationError("could not update role assignment", err)
	}

	entry := &roleDatamodel.RoleAuditLog{
		TargetUserID:    dto.TargetUserID,
		ChangedByUserID: actor.ID,
		OldRole:         dto.OldRole,
		NewRole:         dto.NewRole,
		ChangedAt:       time.Now(),
	}
	if err := s.repo.AppendAudit(ctx, entry); err != nil {
		// The assignment is already updated; losing the audit row must not
		// fail the request.
		s.logger.Error("audit append failed after role change",
			"error", err,
			"target_user_id", dto.TargetUserID,
			"old_role", dto.OldRole,
			"new_role", dto.NewRole)
	}

	targetName, err := s.repo.GetUserName(ctx, dto.TargetUserID)
	if err != nil || targetName == "" {
		targetName = UnknownUserName
	}
	s.eventBus.Publish(ctx, events.NewRoleChangedEvent(
		dto.TargetUserID, targetName, actor.ID, dto.OldRole, dto.NewRole))

	s.logger.Info("role changed",
		"target_user_id", dto.TargetUserID,
		"changed_by", actor.ID,
		"old_role", dto.OldRole,
		"new_role", dto.NewRole)
	return nil
}

// ListAuditLog returns the newest audit entries, most recent first. Entries
// whose user ids no longer resolve carry the "Unknown User" display name.
func (s *Service) ListAuditLog(ctx context.Context, limit int) ([]AuditEntry, error) {
	if limit <= 0 || limit > DefaultAuditLimit {
		limit = DefaultAuditLimit
	}

	entries, err := s.repo.ListAudit(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list audit log", "error", err)
		return nil, internal.NewRetrievalError("could not load audit log", err)
	}

	for i := range entries {
		if entries[i].TargetUserName == "" {
			entries[i].TargetUserName = UnknownUserName
		}
		if entries[i].ChangedByUserName == "" {
			entries[i].ChangedByUserName = UnknownUserName
		}
	}
	return entries, nil
}

// Stats returns the admin page header counts.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	stats, err := s.repo.CountStats(ctx)
	if err != nil {
		s.logger.Error("failed to count role stats", "error", err)
		return Stats{}, internal.NewRetrievalError("could not load role stats", err)
	}
	return stats, nil
}
