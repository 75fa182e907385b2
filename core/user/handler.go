package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goldenpeaks/academy/api/web"
	"github.com/goldenpeaks/academy/api/weberr"
	"github.com/goldenpeaks/academy/core/claims"
	"github.com/goldenpeaks/academy/validate"
	"github.com/jmoiron/sqlx"
)

// HandleCreate registers an identity the first time it is seen. Posting an
// email that already exists is answered with the literal "User Exist"
// message the frontend expects, not an error.
func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var un UserNew
		if err := web.Decode(w, r, &un); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding user: %w", err))
		}

		if err := validate.Check(un); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		_, err := FetchByEmail(ctx, db, un.Email)
		if err == nil {
			return web.Respond(ctx, w, "User Exist", http.StatusOK)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("fetching user[%s]: %w", un.Email, err)
		}

		usr := User{
			ID:        validate.GenerateID(),
			Email:     un.Email,
			Name:      un.Name,
			Image:     un.Image,
			Role:      claims.RoleStudent,
			CreatedAt: time.Now().UTC(),
		}

		if err := Create(ctx, db, usr); err != nil {
			return fmt.Errorf("creating user[%s]: %w", un.Email, err)
		}

		return web.Respond(ctx, w, usr, http.StatusCreated)
	}
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		usrs, err := FetchAll(ctx, db)
		if err != nil {
			return fmt.Errorf("fetching users: %w", err)
		}

		return web.Respond(ctx, w, usrs, http.StatusOK)
	}
}

// HandlePromote sets the role of the user identified by the path id. The
// operation is idempotent: promoting twice succeeds twice.
func HandlePromote(db *sqlx.DB, role string) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		found, err := UpdateRole(ctx, db, id, role)
		if err != nil {
			return fmt.Errorf("promoting user[%s] to %s: %w", id, role, err)
		}

		if !found {
			return weberr.NotFound(fmt.Errorf("user[%s] does not exist", id))
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

// HandleRoleCheck answers {admin:bool} or {instructor:bool} for the email in
// the path. Unknown users are simply "false", never an error.
func HandleRoleCheck(db *sqlx.DB, role string) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		email := web.Param(r, "email")

		held := ""
		usr, err := FetchByEmail(ctx, db, email)
		switch {
		case err == nil:
			held = usr.Role
		case errors.Is(err, sql.ErrNoRows):
		default:
			return fmt.Errorf("fetching user[%s]: %w", email, err)
		}

		has := held == role

		var check RoleCheck
		switch role {
		case claims.RoleAdmin:
			check.Admin = &has
		case claims.RoleInstructor:
			check.Instructor = &has
		}

		return web.Respond(ctx, w, check, http.StatusOK)
	}
}
