package auth

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/user"
)

// Claims is the subset of the access token this service relies on.
// user_id is the employee id: every back-office user is an employee.
type Claims struct {
	UserID string
	Name   string
	Role   user.Role
}

// FromContext extracts the verified claims placed by jwtauth.Verifier.
func FromContext(ctx context.Context) (Claims, error) {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := raw["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, fmt.Errorf("user_id: %w", ErrMissingClaim)
	}

	role, _ := raw["role"].(string)
	name, _ := raw["name"].(string)

	return Claims{
		UserID: userID,
		Name:   name,
		Role:   user.Role(role),
	}, nil
}

// NewContext stores claims the way jwtauth.Verifier does, for callers that
// act without an HTTP request such as jobs and tests.
func NewContext(ctx context.Context, claims Claims) context.Context {
	token := jwt.New()
	_ = token.Set("user_id", claims.UserID)
	_ = token.Set("name", claims.Name)
	_ = token.Set("role", string(claims.Role))
	return jwtauth.NewContext(ctx, token, nil)
}
