package postgres_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	leaveDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/leave"
	userDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/user"
	"github.com/civicgrid/hr-management/internal/leave"
	leavePostgres "github.com/civicgrid/hr-management/internal/leave/postgres"
)

func TestLeavePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Leave Postgres Suite")
}

var _ = Describe("Leave PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo *leavePostgres.Repository
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		// SQLite in-memory stands in for Postgres in these specs.
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&leaveDatamodel.LeaveRequest{}, &userDatamodel.User{})
		Expect(err).NotTo(HaveOccurred())

		repo = leavePostgres.NewRepository(db)
		ctx = context.Background()
	})

	newRequest := func(userID string) *leaveDatamodel.LeaveRequest {
		return &leaveDatamodel.LeaveRequest{
			UserID:    userID,
			LeaveType: leave.TypeCasual,
			StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC),
			Reason:    "family function",
			Status:    leave.StatusPending,
		}
	}

	Describe("Create and GetByID", func() {
		It("persists a pending request with a generated id", func() {
			request := newRequest("00000000-0000-0000-0000-000000000001")

			err := repo.Create(ctx, request)
			Expect(err).NotTo(HaveOccurred())
			Expect(request.ID).NotTo(BeEmpty())

			loaded, err := repo.GetByID(ctx, request.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).NotTo(BeNil())
			Expect(loaded.Status).To(Equal(leave.StatusPending))
		})

		It("returns nil for an unknown id", func() {
			loaded, err := repo.GetByID(ctx, "00000000-0000-0000-0000-00000000dead")
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(BeNil())
		})
	})

	Describe("UpdateDecision", func() {
		It("stamps the reviewer on a pending request", func() {
			request := newRequest("00000000-0000-0000-0000-000000000001")
			Expect(repo.Create(ctx, request)).To(Succeed())

			reviewedAt := time.Now()
			err := repo.UpdateDecision(ctx, request.ID, leave.StatusApproved, "00000000-0000-0000-0000-000000000002", reviewedAt)
			Expect(err).NotTo(HaveOccurred())

			loaded, err := repo.GetByID(ctx, request.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Status).To(Equal(leave.StatusApproved))
			Expect(loaded.ReviewedBy).NotTo(BeNil())
		})

		It("refuses to touch an already decided request", func() {
			request := newRequest("00000000-0000-0000-0000-000000000001")
			Expect(repo.Create(ctx, request)).To(Succeed())
			Expect(repo.UpdateDecision(ctx, request.ID, leave.StatusApproved, "00000000-0000-0000-0000-000000000002", time.Now())).To(Succeed())

			err := repo.UpdateDecision(ctx, request.ID, leave.StatusRejected, "00000000-0000-0000-0000-000000000003", time.Now())
			Expect(err).To(HaveOccurred())

			loaded, _ := repo.GetByID(ctx, request.ID)
			Expect(loaded.Status).To(Equal(leave.StatusApproved))
			Expect(*loaded.ReviewedBy).To(Equal("00000000-0000-0000-0000-000000000002"))
		})
	})

	Describe("ListAll", func() {
		It("joins requester names and leaves unknown users blank", func() {
			Expect(db.Create(&userDatamodel.User{
				ID:           "00000000-0000-0000-0000-000000000001",
				Email:        "bob@city.gov",
				FullName:     "Bob Clerk",
				PasswordHash: "x",
			}).Error).To(Succeed())

			Expect(repo.Create(ctx, newRequest("00000000-0000-0000-0000-000000000001"))).To(Succeed())
			Expect(repo.Create(ctx, newRequest("00000000-0000-0000-0000-00000000dead"))).To(Succeed())

			requests, err := repo.ListAll(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(requests).To(HaveLen(2))

			names := map[string]bool{}
			for _, request := range requests {
				names[request.RequesterName] = true
			}
			Expect(names).To(HaveKey("Bob Clerk"))
			Expect(names).To(HaveKey(""))
		})
	})

	Describe("ListByUser", func() {
		It("returns only the given user's requests", func() {
			Expect(repo.Create(ctx, newRequest("00000000-0000-0000-0000-000000000001"))).To(Succeed())
			Expect(repo.Create(ctx, newRequest("00000000-0000-0000-0000-000000000002"))).To(Succeed())

			requests, err := repo.ListByUser(ctx, "00000000-0000-0000-0000-000000000001")

			Expect(err).NotTo(HaveOccurred())
			Expect(requests).To(HaveLen(1))
		})
	})
})
