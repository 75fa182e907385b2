package instructor

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, ins Instructor) error {
	const q = `
	INSERT INTO instructors (instructor_id, name, email, image, number_of_students)
	VALUES (:instructor_id, :name, :email, :image, :number_of_students)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, ins); err != nil {
		return fmt.Errorf("inserting instructor: %w", err)
	}

	return nil
}

// FetchAll returns every instructor, most followed first.
func FetchAll(ctx context.Context, db sqlx.ExtContext) ([]Instructor, error) {
	const q = `SELECT * FROM instructors ORDER BY number_of_students DESC`

	inss := []Instructor{}
	if err := sqlx.SelectContext(ctx, db, &inss, q); err != nil {
		return nil, fmt.Errorf("selecting instructors: %w", err)
	}

	return inss, nil
}
