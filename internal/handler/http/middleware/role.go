package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/jwtauth/v5"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/auth"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/user"
	"github.com/pmjgroup/rental-hr-backend-go/internal/handler/http/response"
)

// RequireRole allows the request through only when the token role is one of roles.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok || !slices.Contains(roles, user.Role(roleStr)) {
				response.HandleError(w, user.ErrAdminPrivilegeRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireManager requires the admin or manager role
var RequireManager = RequireRole(user.RoleAdmin, user.RoleManager)
