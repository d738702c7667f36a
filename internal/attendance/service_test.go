package attendance_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/civicgrid/hr-management/internal"
	"github.com/civicgrid/hr-management/internal/attendance"
	"github.com/civicgrid/hr-management/internal/auth"
	attendanceDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/attendance"
	"github.com/civicgrid/hr-management/internal/core/events"
)

func TestAttendanceService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Service Suite")
}

type mockRepository struct {
	created   []*attendanceDatamodel.AttendanceRecord
	today     *attendanceDatamodel.AttendanceRecord
	history   []*attendanceDatamodel.AttendanceRecord
	createErr error
	getErr    error
	setErr    error
	listErr   error
	lastLimit int
}

func (m *mockRepository) Create(ctx context.Context, record *attendanceDatamodel.AttendanceRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, record)
	return nil
}

func (m *mockRepository) GetForDate(ctx context.Context, userID, date string) (*attendanceDatamodel.AttendanceRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.today, nil
}

func (m *mockRepository) SetCheckOut(ctx context.Context, recordID string, at time.Time) error {
	return m.setErr
}

func (m *mockRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*attendanceDatamodel.AttendanceRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.lastLimit = limit
	return m.history, nil
}

type spyPublisher struct {
	published []events.Event
}

func (s *spyPublisher) Publish(ctx context.Context, event events.Event) {
	s.published = append(s.published, event)
}

func at(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.March, 3, hour, minute, 0, 0, time.Local)
	}
}

var _ = Describe("Attendance Service", func() {
	var (
		repo      *mockRepository
		publisher *spyPublisher
		service   *attendance.Service
		user      *auth.SessionUser
		ctx       context.Context
	)

	BeforeEach(func() {
		repo = &mockRepository{}
		publisher = &spyPublisher{}
		testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = attendance.NewService(repo, publisher, testLogger)
		user = &auth.SessionUser{ID: "u-1", Email: "bob@city.gov", Name: "Bob Clerk", Role: auth.RoleEmployee}
		ctx = context.Background()
	})

	Describe("status derivation at the hour boundaries", func() {
		It("marks 9:59 as present", func() {
			record, err := service.WithClock(at(9, 59)).CheckIn(ctx, user, attendance.CheckInDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(record.Status).To(Equal(attendance.StatusPresent))
		})

		It("marks 10:00 as late", func() {
			record, err := service.WithClock(at(10, 0)).CheckIn(ctx, user, attendance.CheckInDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(record.Status).To(Equal(attendance.StatusLate))
		})

		It("marks 12:59 as late", func() {
			record, err := service.WithClock(at(12, 59)).CheckIn(ctx, user, attendance.CheckInDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(record.Status).To(Equal(attendance.StatusLate))
		})

		It("marks 13:00 as half day", func() {
			record, err := service.WithClock(at(13, 0)).CheckIn(ctx, user, attendance.CheckInDTO{})
			Expect(err).NotTo(HaveOccurred())
			Expect(record.Status).To(Equal(attendance.StatusHalfDay))
		})
	})

	Describe("CheckIn", func() {
		It("inserts a second row on a same-day duplicate check-in", func() {
			service = service.WithClock(at(9, 0))

			_, err := service.CheckIn(ctx, user, attendance.CheckInDTO{})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CheckIn(ctx, user, attendance.CheckInDTO{})
			Expect(err).NotTo(HaveOccurred())

			Expect(repo.created).To(HaveLen(2))
			Expect(repo.created[0].Date).To(Equal(repo.created[1].Date))
		})

		It("publishes a check-in event", func() {
			_, err := service.WithClock(at(9, 0)).CheckIn(ctx, user, attendance.CheckInDTO{Notes: "on site"})
			Expect(err).NotTo(HaveOccurred())

			Expect(publisher.published).To(HaveLen(1))
			Expect(publisher.published[0].EventType()).To(Equal(events.EventTypeAttendanceCheckIn))
			Expect(repo.created[0].Notes).NotTo(BeNil())
			Expect(*repo.created[0].Notes).To(Equal("on site"))
		})

		It("surfaces a mutation error and publishes nothing when the insert fails", func() {
			repo.createErr = errors.New("disk full")

			_, err := service.WithClock(at(9, 0)).CheckIn(ctx, user, attendance.CheckInDTO{})

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeMutation))
			Expect(publisher.published).To(BeEmpty())
		})
	})

	Describe("CheckOut", func() {
		It("fails with not found when there is no check-in today", func() {
			repo.today = nil

			_, err := service.WithClock(at(17, 0)).CheckOut(ctx, user)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
		})

		It("stamps the check-out time on today's record", func() {
			checkIn := at(9, 0)()
			repo.today = &attendanceDatamodel.AttendanceRecord{
				ID:      "rec-1",
				UserID:  user.ID,
				Date:    checkIn.Format(attendanceDatamodel.DateLayout),
				CheckIn: checkIn,
				Status:  attendance.StatusPresent,
			}

			record, err := service.WithClock(at(17, 30)).CheckOut(ctx, user)

			Expect(err).NotTo(HaveOccurred())
			Expect(record.CheckOut).NotTo(BeNil())
			Expect(record.CheckOut.Hour()).To(Equal(17))
		})

		It("rejects a second check-out", func() {
			out := at(17, 0)()
			repo.today = &attendanceDatamodel.AttendanceRecord{
				ID:       "rec-1",
				UserID:   user.ID,
				CheckOut: &out,
			}

			_, err := service.WithClock(at(18, 0)).CheckOut(ctx, user)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})
	})

	Describe("History", func() {
		It("caps the limit at the default", func() {
			_, err := service.History(ctx, user.ID, 500)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastLimit).To(Equal(attendance.HistoryLimit))
		})

		It("wraps repository failures as retrieval errors", func() {
			repo.listErr = errors.New("timeout")

			_, err := service.History(ctx, user.ID, 10)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeRetrieval))
		})
	})
})
