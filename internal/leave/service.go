package leave

import (
	"context"
	"log/slog"
	"time"

	internal "github.com/civicgrid/hr-management/internal"
	"github.com/civicgrid/hr-management/internal/auth"
	leaveDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/leave"
	"github.com/civicgrid/hr-management/internal/core/events"
)

type RepositoryAPI interface {
	Create(ctx context.Context, request *leaveDatamodel.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*leaveDatamodel.LeaveRequest, error)
	UpdateDecision(ctx context.Context, id, status, reviewedBy string, reviewedAt time.Time) error
	ListByUser(ctx context.Context, userID string) ([]*leaveDatamodel.LeaveRequest, error)
	ListAll(ctx context.Context) ([]RequestWithName, error)
	GetUserName(ctx context.Context, userID string) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type Service struct {
	repo     RepositoryAPI
	eventBus EventPublisher
	nowFn    func() time.Time
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, eventBus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		nowFn:    time.Now,
		logger:   logger,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(fn func() time.Time) *Service {
	s.nowFn = fn
	return s
}

// SubmitLeave files a new request in pending state. Validation failure
// blocks the write entirely.
func (s *Service) SubmitLeave(ctx context.Context, user *auth.SessionUser, dto SubmitLeaveDTO) (*leaveDatamodel.LeaveRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("leave request rejected", "error", err, "user_id", user.ID)
		return nil, err
	}

	start, _ := time.Parse(DateLayout, dto.StartDate)
	end, _ := time.Parse(DateLayout, dto.EndDate)
	now := s.nowFn()

	request := &leaveDatamodel.LeaveRequest{
		UserID:    user.ID,
		LeaveType: dto.LeaveType,
		StartDate: start,
		EndDate:   end,
		Reason:    dto.Reason,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, request); err != nil {
		s.logger.Error("failed to create leave request", "error", err, "user_id", user.ID)
		return nil, internal.NewMutationError("could not submit leave request", err)
	}

	s.logger.Info("leave request submitted",
		"request_id", request.ID,
		"user_id", user.ID,
		"leave_type", dto.LeaveType)
	return request, nil
}

// DecideLeave approves or rejects a pending request. The decision is
// terminal: once reviewed, repeat calls fail and the reviewer fields are
// never re-stamped.
func (s *Service) DecideLeave(ctx context.Context, actor *auth.SessionUser, requestID string, dto DecideLeaveDTO) (*leaveDatamodel.LeaveRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	request, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		s.logger.Error("failed to load leave request", "error", err, "request_id", requestID)
		return nil, internal.NewRetrievalError("could not load leave request", err)
	}
	if request == nil {
		return nil, internal.NewNotFoundError("leave request not found", internal.ErrCodeLeaveNotFound)
	}
	if request.Status != StatusPending {
		s.logger.Warn("leave request already decided",
			"request_id", requestID,
			"status", request.Status)
		return nil, internal.NewConflictError("leave request already decided", internal.ErrCodeLeaveAlreadydecided)
	}

	status := StatusApproved
	if dto.Decision == DecisionReject {
		status = StatusRejected
	}
	now := s.nowFn()

	if err := s.repo.UpdateDecision(ctx, requestID, status, actor.ID, now); err != nil {
		s.logger.Error("failed to record leave decision", "error", err, "request_id", requestID)
		return nil, internal.NewMutationError("could not record leave decision", err)
	}

	request.Status = status
	request.ReviewedBy = &actor.ID
	request.ReviewedAt = &now

	requesterName, err := s.repo.GetUserName(ctx, request.UserID)
	if err != nil || requesterName == "" {
		requesterName = UnknownRequesterName
	}
	s.eventBus.Publish(ctx, events.NewLeaveDecidedEvent(
		requestID, request.UserID, requesterName, request.LeaveType, status, actor.Name))

	s.logger.Info("leave request decided",
		"request_id", requestID,
		"decision", status,
		"reviewed_by", actor.ID)
	return request, nil
}

// ListLeave returns the caller's own requests, or every request with
// requester names when the caller is HR staff.
func (s *Service) ListLeave(ctx context.Context, actor *auth.SessionUser) ([]RequestWithName, error) {
	if actor.IsHRStaff() {
		requests, err := s.repo.ListAll(ctx)
		if err != nil {
			s.logger.Error("failed to list leave requests", "error", err)
			return nil, internal.NewRetrievalError("could not load leave requests", err)
		}
		for i := range requests {
			if requests[i].RequesterName == "" {
				requests[i].RequesterName = UnknownRequesterName
			}
		}
		return requests, nil
	}

	own, err := s.repo.ListByUser(ctx, actor.ID)
	if err != nil {
		s.logger.Error("failed to list own leave requests", "error", err, "user_id", actor.ID)
		return nil, internal.NewRetrievalError("could not load leave requests", err)
	}

	requests := make([]RequestWithName, 0, len(own))
	for _, request := range own {
		requests = append(requests, RequestWithName{
			LeaveRequest:  *request,
			RequesterName: actor.Name,
		})
	}
	return requests, nil
}
