package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	roleDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/role"
	"github.com/civicgrid/hr-management/internal/role"
	rolePostgres "github.com/civicgrid/hr-management/internal/role/postgres"
)

func TestRolePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Role Postgres Suite")
}

var _ = Describe("Role PostgreSQL Repository", func() {
	var (
		mock sqlmock.Sqlmock
		repo *rolePostgres.Repository
		ctx  context.Context
	)

	BeforeEach(func() {
		sqlDB, sqlMock, err := sqlmock.New()
		Expect(err).NotTo(HaveOccurred())
		mock = sqlMock

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB}), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		repo = rolePostgres.NewRepository(db)
		ctx = context.Background()
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})

	Describe("ListUsersWithRoles", func() {
		It("defaults users without an assignment row to employee", func() {
			rows := sqlmock.NewRows([]string{
				"user_id", "assignment_id", "full_name", "email", "department", "designation", "role", "is_active",
			}).
				AddRow("u1", "a1", "Alice Admin", "alice@city.gov", "IT", "Head", "admin", true).
				AddRow("u2", "", "Bob Clerk", "bob@city.gov", nil, nil, "employee", true)

			mock.ExpectQuery(`SELECT u\.id AS user_id`).WillReturnRows(rows)

			users, err := repo.ListUsersWithRoles(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
			Expect(users[1].Role).To(Equal(role.RoleEmployee))
			Expect(users[1].AssignmentID).To(BeEmpty())
		})
	})

	Describe("UpsertAssignment", func() {
		It("inserts with a conflict clause on user_id", func() {
			mock.ExpectExec(`INSERT INTO user_roles .* ON CONFLICT \(user_id\) DO UPDATE`).
				WithArgs(sqlmock.AnyArg(), "u2", "hr_officer").
				WillReturnResult(sqlmock.NewResult(0, 1))

			err := repo.UpsertAssignment(ctx, "u2", role.RoleHROfficer)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("AppendAudit", func() {
		It("inserts a single audit row", func() {
			changedAt := time.Now()
			mock.ExpectExec(`INSERT INTO role_audit_log`).
				WithArgs(sqlmock.AnyArg(), "u2", "u1", "employee", "hr_officer", changedAt).
				WillReturnResult(sqlmock.NewResult(0, 1))

			err := repo.AppendAudit(ctx, &roleDatamodel.RoleAuditLog{
				TargetUserID:    "u2",
				ChangedByUserID: "u1",
				OldRole:         "employee",
				NewRole:         "hr_officer",
				ChangedAt:       changedAt,
			})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("ListAudit", func() {
		It("passes the limit through and scans joined names", func() {
			changedAt := time.Now()
			rows := sqlmock.NewRows([]string{
				"id", "target_user_id", "target_user_name", "changed_by_user_id", "changed_by_user_name", "old_role", "new_role", "changed_at",
			}).
				AddRow("l1", "u2", "Bob Clerk", "u1", "Alice Admin", "employee", "hr_officer", changedAt).
				AddRow("l2", "ghost", "", "u1", "Alice Admin", "employee", "admin", changedAt)

			mock.ExpectQuery(`FROM role_audit_log l`).WithArgs(50).WillReturnRows(rows)

			entries, err := repo.ListAudit(ctx, 50)

			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].TargetUserName).To(Equal("Bob Clerk"))
			Expect(entries[1].TargetUserName).To(BeEmpty())
		})
	})

	Describe("CountStats", func() {
		It("scans the three counters", func() {
			rows := sqlmock.NewRows([]string{"total_users", "admins", "hr_staff"}).
				AddRow(42, 2, 5)

			mock.ExpectQuery(`SELECT`).WillReturnRows(rows)

			stats, err := repo.CountStats(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalUsers).To(Equal(int64(42)))
			Expect(stats.Admins).To(Equal(int64(2)))
			Expect(stats.HRStaff).To(Equal(int64(5)))
		})
	})
})
