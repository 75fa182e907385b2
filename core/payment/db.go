package payment

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, pay Payment) error {
	const q = `
	INSERT INTO payments (payment_id, email, class_id, amount, transaction_id, date)
	VALUES (:payment_id, :email, :class_id, :amount, :transaction_id, :date)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, pay); err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}

	return nil
}

// FetchByEmail returns a user's payments, newest first.
func FetchByEmail(ctx context.Context, db sqlx.ExtContext, email string) ([]Payment, error) {
	const q = `SELECT * FROM payments WHERE email = $1 ORDER BY date DESC`

	pays := []Payment{}
	if err := sqlx.SelectContext(ctx, db, &pays, q, email); err != nil {
		return nil, fmt.Errorf("selecting payments of [%s]: %w", email, err)
	}

	return pays, nil
}

// ReserveSeat moves the class counters by one enrollment: seats down,
// students up. The guard on available_seats makes concurrent reconciliations
// against the same class serialize on the row and prevents overselling; a
// false return means the class was full.
func ReserveSeat(ctx context.Context, db sqlx.ExtContext, classID string) (bool, error) {
	const q = `
	UPDATE classes SET
		available_seats = available_seats - 1,
		number_of_students = number_of_students + 1,
		updated_at = now()
	WHERE class_id = $1 AND available_seats > 0`

	res, err := db.ExecContext(ctx, q, classID)
	if err != nil {
		return false, fmt.Errorf("reserving seat on class[%s]: %w", classID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking affected rows: %w", err)
	}

	return n > 0, nil
}
