package token

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/goldenpeaks/academy/api/web"
	"github.com/goldenpeaks/academy/api/weberr"
	"github.com/goldenpeaks/academy/core/claims"
	"github.com/goldenpeaks/academy/core/user"
	"github.com/goldenpeaks/academy/validate"
	"github.com/jmoiron/sqlx"
)

type TokenNew struct {
	Email string `json:"email" validate:"required,email"`
}

type Token struct {
	Token string `json:"token"`
}

// HandleIssue signs a session token for the posted identity. The role baked
// into the token is whatever the user currently holds; identities never seen
// before are issued student tokens.
func HandleIssue(db *sqlx.DB, cfg Config) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var tn TokenNew
		if err := web.Decode(w, r, &tn); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding token request: %w", err))
		}

		if err := validate.Check(tn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		role := claims.RoleStudent
		usr, err := user.FetchByEmail(ctx, db, tn.Email)
		switch {
		case err == nil:
			role = usr.Role
		case errors.Is(err, sql.ErrNoRows):
		default:
			return fmt.Errorf("fetching user[%s]: %w", tn.Email, err)
		}

		signed, err := Sign(cfg, tn.Email, role)
		if err != nil {
			return fmt.Errorf("issuing token for user[%s]: %w", tn.Email, err)
		}

		return web.Respond(ctx, w, Token{Token: signed}, http.StatusOK)
	}
}
