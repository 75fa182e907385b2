package class

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goldenpeaks/academy/api/web"
	"github.com/goldenpeaks/academy/api/weberr"
	"github.com/goldenpeaks/academy/validate"
	"github.com/jmoiron/sqlx"
)

// HandleList serves the public catalogue sorted by popularity.
func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clss, err := FetchAll(ctx, db)
		if err != nil {
			return fmt.Errorf("fetching classes: %w", err)
		}

		return web.Respond(ctx, w, clss, http.StatusOK)
	}
}

func HandleListByInstructor(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		email := web.QueryParam(r, "email")
		if email == "" {
			return weberr.BadRequest(errors.New("email query parameter is required"))
		}

		clss, err := FetchByInstructor(ctx, db, email)
		if err != nil {
			return fmt.Errorf("fetching classes of instructor[%s]: %w", email, err)
		}

		return web.Respond(ctx, w, clss, http.StatusOK)
	}
}

// HandleCreate stores an instructor's class submission in pending status.
func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var cn ClassNew
		if err := web.Decode(w, r, &cn); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding class: %w", err))
		}

		if err := validate.Check(cn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		now := time.Now().UTC()
		cls := Class{
			ID:              validate.GenerateID(),
			Name:            cn.Name,
			Image:           cn.Image,
			InstructorName:  cn.InstructorName,
			InstructorEmail: cn.InstructorEmail,
			Price:           cn.Price,
			AvailableSeats:  cn.AvailableSeats,
			Status:          Pending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if err := Create(ctx, db, cls); err != nil {
			return fmt.Errorf("creating class: %w", err)
		}

		return web.Respond(ctx, w, cls, http.StatusCreated)
	}
}

// HandleUpsert rewrites the class under the path id, creating it if absent.
func HandleUpsert(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var cu ClassUp
		if err := web.Decode(w, r, &cu); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding class: %w", err))
		}

		if err := validate.Check(cu); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		status := cu.Status
		if status == "" {
			status = Pending
		}

		now := time.Now().UTC()
		cls := Class{
			ID:               id,
			Name:             cu.Name,
			Image:            cu.Image,
			InstructorName:   cu.InstructorName,
			InstructorEmail:  cu.InstructorEmail,
			Price:            cu.Price,
			AvailableSeats:   cu.AvailableSeats,
			NumberOfStudents: cu.NumberOfStudents,
			Status:           status,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		if err := Upsert(ctx, db, cls); err != nil {
			return fmt.Errorf("upserting class[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, cls, http.StatusOK)
	}
}

// HandleReview records the admin's approve/deny decision. Empty feedback is
// stored with the frontend's placeholder text.
func HandleReview(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var ru ReviewUp
		if err := web.Decode(w, r, &ru); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding review: %w", err))
		}

		if err := validate.Check(ru); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		feedback := ru.Feedback
		if feedback == "" {
			feedback = "No Feedback!"
		}

		found, err := UpdateReview(ctx, db, id, ru.Status, feedback)
		if err != nil {
			return fmt.Errorf("reviewing class[%s]: %w", id, err)
		}

		if !found {
			return weberr.NotFound(fmt.Errorf("class[%s] does not exist", id))
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
