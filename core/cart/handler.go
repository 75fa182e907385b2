package cart

import (
	"context"
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

func HandleCreateItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding cart item: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if !claims.IsOwner(ctx, in.Email) {
			return weberr.Forbidden(errors.New("cannot add items to another user's cart"))
		}

		it := Item{
			ID:              validate.GenerateID(),
			Email:           in.Email,
			ClassID:         in.ClassID,
			ClassName:       in.ClassName,
			ClassImage:      in.ClassImage,
			InstructorName:  in.InstructorName,
			InstructorEmail: in.InstructorEmail,
			Price:           in.Price,
			CreatedAt:       time.Now().UTC(),
		}

		if err := CreateItem(ctx, db, it); err != nil {
			return fmt.Errorf("creating cart item: %w", err)
		}

		return web.Respond(ctx, w, it, http.StatusCreated)
	}
}

func HandleListItems(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		email := web.QueryParam(r, "email")
		if email == "" {
			return weberr.BadRequest(errors.New("email query parameter is required"))
		}

		if !claims.IsOwner(ctx, email) {
			return weberr.Forbidden(errors.New("cannot list another user's cart"))
		}

		its, err := FetchItems(ctx, db, email)
		if err != nil {
			return fmt.Errorf("fetching cart items: %w", err)
		}

		return web.Respond(ctx, w, its, http.StatusOK)
	}
}

func HandleDeleteItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if err := DeleteItem(ctx, db, id); err != nil {
			return fmt.Errorf("deleting cart item[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
