package claims

import (
	"context"
	"errors"
)

// Exactly one role per user. Students are the default; promotion to the
// other two happens through the role endpoints.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

type Claims struct {
	Email string
	Role  string
}

type ctxKey int

const claimsKey ctxKey = 1

func Set(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func Get(ctx context.Context) (Claims, error) {
	v, ok := ctx.Value(claimsKey).(Claims)
	if !ok {
		return Claims{}, errors.New("claim value missing from context")
	}
	return v, nil
}

func IsAdmin(ctx context.Context) bool {
	c, err := Get(ctx)
	if err != nil {
		return false
	}

	return c.Role == RoleAdmin
}

// IsOwner reports whether the request was made by the user owning email.
// Admins own everything.
func IsOwner(ctx context.Context, email string) bool {
	c, err := Get(ctx)
	if err != nil {
		return false
	}

	return c.Email == email || c.Role == RoleAdmin
}
