package attendance

import (
	"context"
	"log/slog"
	"time"

	internal "github.com/civicgrid/hr-management/internal"
	"github.com/civicgrid/hr-management/internal/auth"
	attendanceDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/attendance"
	"github.com/civicgrid/hr-management/internal/core/events"
)

type RepositoryAPI interface {
	Create(ctx context.Context, record *attendanceDatamodel.AttendanceRecord) error
	GetForDate(ctx context.Context, userID, date string) (*attendanceDatamodel.AttendanceRecord, error)
	SetCheckOut(ctx context.Context, recordID string, at time.Time) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*attendanceDatamodel.AttendanceRecord, error)
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

// CheckIn records an attendance entry for today with the status derived from
// the current hour. There is no same-day duplicate guard: checking in twice
// inserts two rows.
func (s *Service) CheckIn(ctx context.Context, user *auth.SessionUser, dto CheckInDTO) (*attendanceDatamodel.AttendanceRecord, error) {
	now := s.nowFn()
	date := now.Format(attendanceDatamodel.DateLayout)
	status := StatusForTime(now)

	record := &attendanceDatamodel.AttendanceRecord{
		UserID:    user.ID,
		Date:      date,
		CheckIn:   now,
		Status:    status,
		CreatedAt: now,
	}
	if dto.Notes != "" {
		notes := dto.Notes
		record.Notes = &notes
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error("failed to create attendance record", "error", err, "user_id", user.ID)
		return nil, internal.NewMutationError("could not record check-in", err)
	}

	s.eventBus.Publish(ctx, events.NewAttendanceCheckInEvent(user.ID, user.Name, status, date))

	s.logger.Info("checked in", "user_id", user.ID, "date", date, "status", status)
	return record, nil
}

// CheckOut stamps the check-out time on today's record. Without a check-in
// today there is nothing to stamp and the call fails.
func (s *Service) CheckOut(ctx context.Context, user *auth.SessionUser) (*attendanceDatamodel.AttendanceRecord, error) {
	now := s.nowFn()
	date := now.Format(attendanceDatamodel.DateLayout)

	record, err := s.repo.GetForDate(ctx, user.ID, date)
	if err != nil {
		s.logger.Error("failed to load today's attendance record", "error", err, "user_id", user.ID)
		return nil, internal.NewRetrievalError("could not load attendance record", err)
	}
	if record == nil {
		return nil, internal.NewNotFoundError("no check-in found for today", internal.ErrCodeAttendanceNotFound)
	}
	if record.CheckOut != nil {
		return nil, internal.NewConflictError("already checked out today", internal.ErrCodeValidationFailed)
	}

	if err := s.repo.SetCheckOut(ctx, record.ID, now); err != nil {
		s.logger.Error("failed to stamp check-out", "error", err, "record_id", record.ID)
		return nil, internal.NewMutationError("could not record check-out", err)
	}

	record.CheckOut = &now
	s.logger.Info("checked out", "user_id", user.ID, "date", date)
	return record, nil
}

// History returns the user's most recent attendance records, newest first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]*attendanceDatamodel.AttendanceRecord, error) {
	if limit <= 0 || limit > HistoryLimit {
		limit = HistoryLimit
	}

	records, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		s.logger.Error("failed to list attendance history", "error", err, "user_id", userID)
		return nil, internal.NewRetrievalError("could not load attendance history", err)
	}
	return records, nil
}
