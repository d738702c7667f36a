package rest

import (
	"net/http"

	"github.com/go-chi/chi"

	internal "github.com/civicgrid/hr-management/internal"
	"github.com/civicgrid/hr-management/internal/attendance"
	"github.com/civicgrid/hr-management/internal/auth"
	"github.com/civicgrid/hr-management/internal/dashboard"
	"github.com/civicgrid/hr-management/internal/department"
	"github.com/civicgrid/hr-management/internal/employee"
	"github.com/civicgrid/hr-management/internal/leave"
	"github.com/civicgrid/hr-management/internal/role"
	"github.com/civicgrid/hr-management/internal/transport/middleware"
	"github.com/civicgrid/hr-management/internal/transport/swagger"
	"github.com/civicgrid/hr-management/pkg/logger"
)

// RouterDeps carries everything the route tree needs.
type RouterDeps struct {
	Config      *internal.Config
	Health      *HealthHandler
	Auth        *auth.Handler
	RBAC        *auth.RoleAuthorization
	Role        *role.Handler
	Attendance  *attendance.Handler
	Leave       *leave.Handler
	Employee    *employee.Handler
	Department  *department.Handler
	Dashboard   *dashboard.Handler
	OpenAPIPath string
}

// RegisterRoutes mounts the full API route tree on the router.
func RegisterRoutes(r *chi.Mux, deps RouterDeps) {
	lg := logger.L()

	r.Use(middleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(lg))
	r.Use(middleware.LoggingMiddleware(lg))
	r.Use(middleware.CORS(deps.Config.Server.AllowedOrigins))

	// Operational endpoints stay outside the API prefix.
	r.Get("/ping", deps.Health.pingHandler)
	r.Get("/health", deps.Health.healthCheckHandler)

	if deps.OpenAPIPath != "" {
		r.Get("/openapi.yml", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, deps.OpenAPIPath)
		})
		r.Mount("/swagger", swagger.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints; login is rate limited per client IP.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(deps.Config.Server.LoginRatePerMin, lg))
			r.Post("/auth/login", deps.Auth.Login)
		})
		r.Post("/auth/refresh", deps.Auth.RefreshToken)

		// Everything below requires a valid session.
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.AuthMiddleware)

			r.Post("/auth/logout", deps.Auth.Logout)
			r.Get("/users/me", deps.Auth.Me)

			r.Get("/dashboard/stats", deps.Dashboard.GetStats)
			r.Get("/dashboard/departments", deps.Dashboard.GetDepartmentOverview)
			r.Get("/dashboard/activity", deps.Dashboard.GetRecentActivity)

			r.Post("/attendance/check-in", deps.Attendance.CheckIn)
			r.Post("/attendance/check-out", deps.Attendance.CheckOut)
			r.Get("/attendance/history", deps.Attendance.History)

			r.Post("/leave", deps.Leave.SubmitLeave)
			r.Get("/leave", deps.Leave.ListLeave)

			r.Get("/employees", deps.Employee.List)
			r.Get("/employees/{id}", deps.Employee.Get)

			r.Get("/departments", deps.Department.GetDepartments)

			// HR staff only.
			r.Group(func(r chi.Router) {
				r.Use(deps.RBAC.RequireHRStaff())

				r.Patch("/leave/{id}/decision", deps.Leave.DecideLeave)
				r.Post("/employees", deps.Employee.Create)
				r.Put("/employees/{id}", deps.Employee.Update)

				r.Post("/departments", deps.Department.CreateDepartment)
				r.Put("/departments/{id}", deps.Department.UpdateDepartment)
				r.Patch("/departments/{id}/activate", deps.Department.ActivateDepartment)
				r.Patch("/departments/{id}/deactivate", deps.Department.DeactivateDepartment)
			})

			// Admin only.
			r.Group(func(r chi.Router) {
				r.Use(deps.RBAC.RequireRoleManagement())

				r.Delete("/employees/{id}", deps.Employee.Deactivate)
				r.Get("/admin/users", deps.Role.ListUsers)
				r.Patch("/admin/users/{id}/role", deps.Role.ChangeUserRole)
				r.Get("/admin/audit-log", deps.Role.GetAuditLog)
				r.Get("/admin/stats", deps.Role.GetStats)
			})
		})
	})
}
