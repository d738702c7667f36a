package dashboard

import (
	"context"
	"log/slog"
	"time"

	internal "github.com/civicgrid/hr-management/internal"
	attendanceDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/attendance"
)

// Stats backs the dashboard header cards.
type Stats struct {
	Headcount     int64 `json:"headcount"`
	PresentToday  int64 `json:"present_today"`
	PendingLeaves int64 `json:"pending_leaves"`
	Departments   int64 `json:"departments"`
}

// DepartmentCount is one row of the department overview widget.
type DepartmentCount struct {
	Department string `json:"department"`
	Employees  int64  `json:"employees"`
}

type RepositoryAPI interface {
	Stats(ctx context.Context, today string) (Stats, error)
	DepartmentOverview(ctx context.Context) ([]DepartmentCount, error)
}

type Service struct {
	repo   RepositoryAPI
	feed   *ActivityFeed
	nowFn  func() time.Time
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, feed *ActivityFeed, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		feed:   feed,
		nowFn:  time.Now,
		logger: logger,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(fn func() time.Time) *Service {
	s.nowFn = fn
	return s
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	today := s.nowFn().Format(attendanceDatamodel.DateLayout)

	stats, err := s.repo.Stats(ctx, today)
	if err != nil {
		s.logger.Error("failed to load dashboard stats", "error", err)
		return Stats{}, internal.NewRetrievalError("could not load dashboard stats", err)
	}
	return stats, nil
}

func (s *Service) DepartmentOverview(ctx context.Context) ([]DepartmentCount, error) {
	overview, err := s.repo.DepartmentOverview(ctx)
	if err != nil {
		s.logger.Error("failed to load department overview", "error", err)
		return nil, internal.NewRetrievalError("could not load department overview", err)
	}
	return overview, nil
}

// RecentActivity reads from the in-memory feed; no storage round-trip.
func (s *Service) RecentActivity(ctx context.Context, limit int) []Activity {
	return s.feed.Recent(limit)
}
