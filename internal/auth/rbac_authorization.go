package auth

import (
	"log/slog"
	"net/http"
)

// RoleAuthorization gates routes on the session user's role. It runs at the
// transport boundary, before any workflow service is invoked.
type RoleAuthorization struct {
	logger *slog.Logger
}

func NewRoleAuthorization(logger *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{logger: logger}
}

// RequireAnyRole builds a middleware admitting only the named roles.
func (ra *RoleAuthorization) RequireAnyRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := SessionFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if user.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			ra.logger.WarnContext(r.Context(), "access denied: insufficient role",
				"user_id", user.ID,
				"user_role", user.Role,
				"required_roles", roles)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		})
	}
}

// RequireRoleManagement admits administrators only: role assignments and the
// audit trail are admin territory.
func (ra *RoleAuthorization) RequireRoleManagement() func(http.Handler) http.Handler {
	return ra.RequireAnyRole(RoleAdmin)
}

// RequireHRStaff admits the actors who arbitrate leave and manage the
// directory.
func (ra *RoleAuthorization) RequireHRStaff() func(http.Handler) http.Handler {
	return ra.RequireAnyRole(RoleAdmin, RoleHRManager, RoleHROfficer)
}
