package middleware

import (
	"net/http"

	"github.com/hamzasiddiqui/bazaarline-backend/api/responses"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/enums"
	pkgerrors "github.com/hamzasiddiqui/bazaarline-backend/pkg/errors"
	"github.com/hamzasiddiqui/bazaarline-backend/pkg/logger"
)

func RequireSuperAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return RequireRole(logg, enums.RoleSuperAdmin)
}

// RequireRole gates a route on the actor holding one of the given roles.
// It assumes AdminAuth already ran and seeded the role into the context.
func RequireRole(logg *logger.Logger, roles ...enums.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actual := RoleFromContext(r.Context())
			for _, role := range roles {
				if actual == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
		})
	}
}
