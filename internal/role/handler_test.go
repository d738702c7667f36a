package role_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/civicgrid/hr-management/internal/auth"
	"github.com/civicgrid/hr-management/internal/role"
	"github.com/civicgrid/hr-management/pkg/logger"
)

// spyService records whether any role operation was reached.
type spyService struct {
	invoked bool
}

func (s *spyService) ListUsersWithRoles(ctx context.Context) ([]role.UserWithRole, error) {
	s.invoked = true
	return nil, nil
}

func (s *spyService) ChangeRole(ctx context.Context, actor *auth.SessionUser, dto role.ChangeRoleDTO) error {
	s.invoked = true
	return nil
}

func (s *spyService) ListAuditLog(ctx context.Context, limit int) ([]role.AuditEntry, error) {
	s.invoked = true
	return nil, nil
}

func (s *spyService) Stats(ctx context.Context) (role.Stats, error) {
	s.invoked = true
	return role.Stats{}, nil
}

// sessionInjector plants a session user the way the auth middleware would.
func sessionInjector(user *auth.SessionUser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user != nil {
				r = r.WithContext(auth.ContextWithSession(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

var _ = Describe("Role Handler authorization", func() {
	var (
		service *spyService
		rbac    *auth.RoleAuthorization
	)

	newRouter := func(user *auth.SessionUser) http.Handler {
		handler := role.NewHandler(service)
		r := chi.NewRouter()
		r.Group(func(r chi.Router) {
			r.Use(sessionInjector(user))
			r.Use(rbac.RequireRoleManagement())
			r.Get("/admin/users", handler.ListUsers)
			r.Patch("/admin/users/{id}/role", handler.ChangeUserRole)
		})
		return r
	}

	BeforeEach(func() {
		service = &spyService{}
		rbac = auth.NewRoleAuthorization(logger.L())
	})

	It("blocks an hr_officer before the service is reached", func() {
		officer := &auth.SessionUser{ID: "u-2", Email: "officer@city.gov", Name: "Olive Officer", Role: auth.RoleHROfficer}
		router := newRouter(officer)

		body := strings.NewReader(`{"old_role":"employee","new_role":"admin"}`)
		req := httptest.NewRequest(http.MethodPatch, "/admin/users/u-9/role", body)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusForbidden))
		Expect(service.invoked).To(BeFalse())
	})

	It("rejects requests without a session", func() {
		router := newRouter(nil)

		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(service.invoked).To(BeFalse())
	})

	It("lets an admin through to the service", func() {
		admin := &auth.SessionUser{ID: "u-1", Email: "admin@city.gov", Name: "Alice Admin", Role: auth.RoleAdmin}
		router := newRouter(admin)

		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(service.invoked).To(BeTrue())
	})
})
