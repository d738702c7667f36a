package employee_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/civicgrid/hr-management/internal"
	userDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/user"
	"github.com/civicgrid/hr-management/internal/core/events"
	"github.com/civicgrid/hr-management/internal/employee"
)

func TestEmployeeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Service Suite")
}

type mockRepository struct {
	byID    map[string]*userDatamodel.User
	byEmail map[string]*userDatamodel.User
	listed  []*userDatamodel.User

	created      []*userDatamodel.User
	provisioned  []string
	updates      map[string]interface{}
	lastFilter   employee.ListFilter
	lastLimit    int
	lastOffset   int
	createErr    error
	provisionErr error
	updateErr    error
	listErr      error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		byID:    map[string]*userDatamodel.User{},
		byEmail: map[string]*userDatamodel.User{},
	}
}

func (m *mockRepository) List(ctx context.Context, filter employee.ListFilter, limit, offset int) ([]*userDatamodel.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.lastFilter = filter
	m.lastLimit = limit
	m.lastOffset = offset
	return m.listed, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*userDatamodel.User, error) {
	return m.byID[id], nil
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	return m.byEmail[email], nil
}

func (m *mockRepository) Create(ctx context.Context, user *userDatamodel.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = "generated-id"
	m.created = append(m.created, user)
	return nil
}

func (m *mockRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates = updates
	return nil
}

func (m *mockRepository) ProvisionDefaultRole(ctx context.Context, userID string) error {
	if m.provisionErr != nil {
		return m.provisionErr
	}
	m.provisioned = append(m.provisioned, userID)
	return nil
}

type stubHasher struct {
	err error
}

func (s stubHasher) HashPassword(plain string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "hashed:" + plain, nil
}

type spyPublisher struct {
	published []events.Event
}

func (s *spyPublisher) Publish(ctx context.Context, event events.Event) {
	s.published = append(s.published, event)
}

// stubDepartments accepts every name in the known set.
type stubDepartments struct {
	known map[string]bool
}

func (s stubDepartments) IsValidDepartment(ctx context.Context, name string) bool {
	return s.known[name]
}

var _ = Describe("Employee Service", func() {
	var (
		repo      *mockRepository
		publisher *spyPublisher
		service   *employee.Service
		ctx       context.Context
	)

	BeforeEach(func() {
		repo = newMockRepository()
		publisher = &spyPublisher{}
		departments := stubDepartments{known: map[string]bool{"Sanitation": true, "Revenue": true}}
		testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = employee.NewService(repo, stubHasher{}, departments, publisher, testLogger)
		ctx = context.Background()
	})

	Describe("Create", func() {
		dept := "Sanitation"
		validDTO := employee.CreateEmployeeDTO{
			Email:             "New.Hire@city.gov",
			FullName:          "New Hire",
			TemporaryPassword: "changeme123",
			Department:        &dept,
		}

		It("hashes the password, provisions the default role and publishes an event", func() {
			profile, err := service.Create(ctx, validDTO)

			Expect(err).NotTo(HaveOccurred())
			Expect(profile.Email).To(Equal("new.hire@city.gov"))
			Expect(repo.created).To(HaveLen(1))
			Expect(repo.created[0].PasswordHash).To(Equal("hashed:changeme123"))
			Expect(repo.created[0].EmploymentStatus).To(Equal(employee.StatusActive))
			Expect(repo.provisioned).To(ConsistOf("generated-id"))

			Expect(publisher.published).To(HaveLen(1))
			Expect(publisher.published[0].EventType()).To(Equal(events.EventTypeEmployeeOnboarded))
		})

		It("rejects a duplicate email", func() {
			repo.byEmail["new.hire@city.gov"] = &userDatamodel.User{ID: "u-1"}

			_, err := service.Create(ctx, validDTO)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateEmail))
			Expect(repo.created).To(BeEmpty())
		})

		It("rejects a short temporary password", func() {
			dto := validDTO
			dto.TemporaryPassword = "short"

			_, err := service.Create(ctx, dto)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("rejects an unknown department", func() {
			dto := validDTO
			unknown := "Sewage"
			dto.Department = &unknown

			_, err := service.Create(ctx, dto)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(repo.created).To(BeEmpty())
		})

		It("keeps the profile when role provisioning fails", func() {
			repo.provisionErr = errors.New("conflict")

			profile, err := service.Create(ctx, validDTO)

			Expect(err).NotTo(HaveOccurred())
			Expect(profile).NotTo(BeNil())
			Expect(repo.created).To(HaveLen(1))
		})
	})

	Describe("List", func() {
		It("applies defaults and passes the filter through", func() {
			repo.listed = []*userDatamodel.User{{ID: "u-1", FullName: "Bob Clerk"}}

			profiles, err := service.List(ctx, employee.ListFilter{Query: "bob"}, 0, -5)

			Expect(err).NotTo(HaveOccurred())
			Expect(profiles).To(HaveLen(1))
			Expect(repo.lastFilter.Query).To(Equal("bob"))
			Expect(repo.lastLimit).To(Equal(20))
			Expect(repo.lastOffset).To(Equal(0))
		})
	})

	Describe("Update", func() {
		It("fails with not found for an unknown employee", func() {
			name := "Renamed"
			_, err := service.Update(ctx, "ghost", employee.UpdateEmployeeDTO{FullName: &name})

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
		})

		It("only touches the provided fields", func() {
			repo.byID["u-1"] = &userDatamodel.User{ID: "u-1", FullName: "Bob Clerk", EmploymentStatus: employee.StatusActive}
			status := employee.StatusOnLeave

			profile, err := service.Update(ctx, "u-1", employee.UpdateEmployeeDTO{EmploymentStatus: &status})

			Expect(err).NotTo(HaveOccurred())
			Expect(profile.EmploymentStatus).To(Equal(employee.StatusOnLeave))
			Expect(profile.FullName).To(Equal("Bob Clerk"))
			Expect(repo.updates).To(HaveKey("employment_status"))
			Expect(repo.updates).NotTo(HaveKey("full_name"))
		})

		It("rejects an unknown employment status", func() {
			repo.byID["u-1"] = &userDatamodel.User{ID: "u-1"}
			status := "retired"

			_, err := service.Update(ctx, "u-1", employee.UpdateEmployeeDTO{EmploymentStatus: &status})

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("Deactivate", func() {
		It("disables the account and marks the status", func() {
			repo.byID["u-1"] = &userDatamodel.User{ID: "u-1", IsActive: true}

			err := service.Deactivate(ctx, "u-1")

			Expect(err).NotTo(HaveOccurred())
			Expect(repo.updates["is_active"]).To(Equal(false))
			Expect(repo.updates["employment_status"]).To(Equal(employee.StatusResigned))
		})

		It("fails with not found for an unknown employee", func() {
			err := service.Deactivate(ctx, "ghost")

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
		})
	})
})
