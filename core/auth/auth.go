package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goldenpeaks/academy/api/web"
	"github.com/goldenpeaks/academy/api/weberr"
	"github.com/goldenpeaks/academy/core/claims"
	"github.com/goldenpeaks/academy/core/token"
)

func fromRequest(cfg token.Config, r *http.Request) (claims.Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return claims.Claims{}, errors.New("authorization header missing")
	}

	signed := strings.TrimPrefix(header, "Bearer ")

	clm, err := token.Verify(cfg, signed)
	if err != nil {
		return claims.Claims{}, err
	}

	return claims.Claims{Email: clm.Email, Role: clm.Role}, nil
}

// Authenticate rejects requests without a valid bearer token and stores the
// token claims in the context for downstream handlers.
func Authenticate(cfg token.Config) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			clm, err := fromRequest(cfg, r)
			if err != nil {
				return weberr.NotAuthorized(err)
			}

			ctx = claims.Set(ctx, clm)
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

// Admin authenticates and additionally requires the admin role.
func Admin(cfg token.Config) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			clm, err := fromRequest(cfg, r)
			if err != nil {
				return weberr.NotAuthorized(err)
			}

			if clm.Role != claims.RoleAdmin {
				return weberr.Forbidden(errors.New("admin role required"))
			}

			ctx = claims.Set(ctx, clm)
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
