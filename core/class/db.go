package class

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, cls Class) error {
	const q = `
	INSERT INTO classes
		(class_id, name, image, instructor_name, instructor_email, price,
		available_seats, number_of_students, status, feedback, created_at, updated_at)
	VALUES
		(:class_id, :name, :image, :instructor_name, :instructor_email, :price,
		:available_seats, :number_of_students, :status, :feedback, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, cls); err != nil {
		return fmt.Errorf("inserting class: %w", err)
	}

	return nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Class, error) {
	const q = `SELECT * FROM classes WHERE class_id = $1`

	var cls Class
	if err := sqlx.GetContext(ctx, db, &cls, q, id); err != nil {
		return Class{}, err
	}

	return cls, nil
}

// FetchAll returns every class, most popular first.
func FetchAll(ctx context.Context, db sqlx.ExtContext) ([]Class, error) {
	const q = `SELECT * FROM classes ORDER BY number_of_students DESC`

	clss := []Class{}
	if err := sqlx.SelectContext(ctx, db, &clss, q); err != nil {
		return nil, fmt.Errorf("selecting classes: %w", err)
	}

	return clss, nil
}

func FetchByInstructor(ctx context.Context, db sqlx.ExtContext, email string) ([]Class, error) {
	const q = `SELECT * FROM classes WHERE instructor_email = $1 ORDER BY created_at`

	clss := []Class{}
	if err := sqlx.SelectContext(ctx, db, &clss, q, email); err != nil {
		return nil, fmt.Errorf("selecting classes of instructor[%s]: %w", email, err)
	}

	return clss, nil
}

// Upsert writes the full class record under the given id, inserting it if
// the id was never seen before.
func Upsert(ctx context.Context, db sqlx.ExtContext, cls Class) error {
	const q = `
	INSERT INTO classes
		(class_id, name, image, instructor_name, instructor_email, price,
		available_seats, number_of_students, status, feedback, created_at, updated_at)
	VALUES
		(:class_id, :name, :image, :instructor_name, :instructor_email, :price,
		:available_seats, :number_of_students, :status, :feedback, :created_at, :updated_at)
	ON CONFLICT (class_id) DO UPDATE SET
		name = EXCLUDED.name,
		image = EXCLUDED.image,
		instructor_name = EXCLUDED.instructor_name,
		instructor_email = EXCLUDED.instructor_email,
		price = EXCLUDED.price,
		available_seats = EXCLUDED.available_seats,
		number_of_students = EXCLUDED.number_of_students,
		status = EXCLUDED.status,
		updated_at = EXCLUDED.updated_at`

	if _, err := sqlx.NamedExecContext(ctx, db, q, cls); err != nil {
		return fmt.Errorf("upserting class[%s]: %w", cls.ID, err)
	}

	return nil
}

// UpdateReview stores the admin's status decision and feedback, reporting
// whether the class existed.
func UpdateReview(ctx context.Context, db sqlx.ExtContext, id string, status Status, feedback string) (bool, error) {
	const q = `
	UPDATE classes SET status = $2, feedback = $3, updated_at = now()
	WHERE class_id = $1`

	res, err := db.ExecContext(ctx, q, id, status, feedback)
	if err != nil {
		return false, fmt.Errorf("reviewing class[%s]: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking affected rows: %w", err)
	}

	return n > 0, nil
}

// FetchSummaries resolves a set of class ids to their display projections.
// Ids that resolve to nothing are silently absent from the result.
func FetchSummaries(ctx context.Context, db sqlx.ExtContext, ids []string) ([]Summary, error) {
	const q = `
	SELECT class_id, name, image, instructor_name, instructor_email
	FROM classes WHERE class_id IN (?)`

	query, args, err := sqlx.In(q, ids)
	if err != nil {
		return nil, fmt.Errorf("binding class ids: %w", err)
	}

	sums := []Summary{}
	if err := sqlx.SelectContext(ctx, db, &sums, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("selecting class summaries: %w", err)
	}

	return sums, nil
}
