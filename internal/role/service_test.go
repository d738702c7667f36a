package role_test

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
	"github.com/civicgrid/hr-management/internal/auth"
	roleDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/role"
	"github.com/civicgrid/hr-management/internal/core/events"
	"github.com/civicgrid/hr-management/internal/role"
)

func TestRole(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Role Suite")
}

type mockRepository struct {
	users     []role.UserWithRole
	auditRows []role.AuditEntry
	names     map[string]string
	stats     role.Stats

	listErr   error
	upsertErr error
	auditErr  error

	upsertCalls  int
	auditCalls   int
	lastUpserted role.Role
	lastAudit    *roleDatamodel.RoleAuditLog
	lastLimit    int
}

func (m *mockRepository) ListUsersWithRoles(ctx context.Context) ([]role.UserWithRole, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.users, nil
}

func (m *mockRepository) UpsertAssignment(ctx context.Context, userID string, newRole role.Role) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upsertCalls++
	m.lastUpserted = newRole
	return nil
}

func (m *mockRepository) AppendAudit(ctx context.Context, entry *roleDatamodel.RoleAuditLog) error {
	if m.auditErr != nil {
		return m.auditErr
	}
	m.auditCalls++
	m.lastAudit = entry
	return nil
}

func (m *mockRepository) ListAudit(ctx context.Context, limit int) ([]role.AuditEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.lastLimit = limit
	return m.auditRows, nil
}

func (m *mockRepository) GetUserName(ctx context.Context, userID string) (string, error) {
	if name, ok := m.names[userID]; ok {
		return name, nil
	}
	return "", nil
}

func (m *mockRepository) CountStats(ctx context.Context) (role.Stats, error) {
	if m.listErr != nil {
		return role.Stats{}, m.listErr
	}
	return m.stats, nil
}

type spyPublisher struct {
	published []events.Event
}

func (s *spyPublisher) Publish(ctx context.Context, event events.Event) {
	s.published = append(s.published, event)
}

var _ = Describe("Role Service", func() {
	var (
		repo      *mockRepository
		publisher *spyPublisher
		service   *role.Service
		actor     *auth.SessionUser
		ctx       context.Context
	)

	BeforeEach(func() {
		repo = &mockRepository{names: map[string]string{}}
		publisher = &spyPublisher{}
		testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = role.NewService(repo, publisher, testLogger)
		actor = &auth.SessionUser{ID: "admin-1", Email: "admin@city.gov", Name: "Alice Admin", Role: auth.RoleAdmin}
		ctx = context.Background()
	})

	Describe("ChangeRole", func() {
		It("succeeds without any mutation when old and new role are equal", func() {
			dto := role.ChangeRoleDTO{
				TargetUserID: "user-1",
				OldRole:      "hr_officer",
				NewRole:      "hr_officer",
			}

			err := service.ChangeRole(ctx, actor, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(repo.upsertCalls).To(BeZero())
			Expect(repo.auditCalls).To(BeZero())
			Expect(publisher.published).To(BeEmpty())
		})

		It("updates the assignment, appends an audit entry and publishes an event", func() {
			repo.names["user-1"] = "Bob Clerk"
			dto := role.ChangeRoleDTO{
				TargetUserID: "user-1",
				OldRole:      "employee",
				NewRole:      "department_head",
			}

			before := time.Now()
			err := service.ChangeRole(ctx, actor, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(repo.upsertCalls).To(Equal(1))
			Expect(repo.lastUpserted).To(Equal(role.RoleDepartmentHead))
			Expect(repo.auditCalls).To(Equal(1))
			Expect(repo.lastAudit.ChangedByUserID).To(Equal("admin-1"))
			Expect(repo.lastAudit.OldRole).To(Equal("employee"))
			Expect(repo.lastAudit.NewRole).To(Equal("department_head"))
			Expect(repo.lastAudit.ChangedAt).To(BeTemporally(">=", before))

			Expect(publisher.published).To(HaveLen(1))
			Expect(publisher.published[0].EventType()).To(Equal(events.EventTypeRoleChanged))
		})

		It("keeps the role change when the audit append fails", func() {
			repo.auditErr = errors.New("audit table unavailable")
			dto := role.ChangeRoleDTO{
				TargetUserID: "user-1",
				OldRole:      "employee",
				NewRole:      "hr_manager",
			}

			err := service.ChangeRole(ctx, actor, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(repo.upsertCalls).To(Equal(1))
			Expect(repo.auditCalls).To(BeZero())
			Expect(publisher.published).To(HaveLen(1))
		})

		It("rejects a role outside the closed set", func() {
			dto := role.ChangeRoleDTO{
				TargetUserID: "user-1",
				OldRole:      "employee",
				NewRole:      "superuser",
			}

			err := service.ChangeRole(ctx, actor, dto)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(repo.upsertCalls).To(BeZero())
			Expect(repo.auditCalls).To(BeZero())
		})

		It("surfaces a mutation error when the assignment update fails", func() {
			repo.upsertErr = errors.New("connection reset")
			dto := role.ChangeRoleDTO{
				TargetUserID: "user-1",
				OldRole:      "employee",
				NewRole:      "admin",
			}

			err := service.ChangeRole(ctx, actor, dto)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeMutation))
			Expect(repo.auditCalls).To(BeZero())
			Expect(publisher.published).To(BeEmpty())
		})
	})

	Describe("ListAuditLog", func() {
		It("substitutes the unknown user name for unresolved ids", func() {
			repo.auditRows = []role.AuditEntry{
				{ID: "a1", TargetUserID: "ghost", TargetUserName: "", ChangedByUserID: "admin-1", ChangedByUserName: "Alice Admin"},
			}

			entries, err := service.ListAuditLog(ctx, 10)

			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].TargetUserName).To(Equal(role.UnknownUserName))
			Expect(entries[0].ChangedByUserName).To(Equal("Alice Admin"))
		})

		It("caps the limit at the default", func() {
			_, err := service.ListAuditLog(ctx, 500)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastLimit).To(Equal(role.DefaultAuditLimit))

			_, err = service.ListAuditLog(ctx, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastLimit).To(Equal(role.DefaultAuditLimit))
		})

		It("wraps repository failures as retrieval errors", func() {
			repo.listErr = errors.New("timeout")

			_, err := service.ListAuditLog(ctx, 10)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeRetrieval))
		})
	})

	Describe("ListUsersWithRoles", func() {
		It("returns users with their roles", func() {
			repo.users = []role.UserWithRole{
				{UserID: "u1", FullName: "Bob Clerk", Role: role.RoleEmployee},
				{UserID: "u2", FullName: "Carol Head", Role: role.RoleDepartmentHead},
			}

			users, err := service.ListUsersWithRoles(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
		})

		It("wraps repository failures as retrieval errors", func() {
			repo.listErr = errors.New("timeout")

			_, err := service.ListUsersWithRoles(ctx)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeRetrieval))
		})
	})

	Describe("Stats", func() {
		It("returns the repository counts", func() {
			repo.stats = role.Stats{TotalUsers: 42, Admins: 2, HRStaff: 5}

			stats, err := service.Stats(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalUsers).To(Equal(int64(42)))
			Expect(stats.Admins).To(Equal(int64(2)))
			Expect(stats.HRStaff).To(Equal(int64(5)))
		})
	})
})
