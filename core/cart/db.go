package cart

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func CreateItem(ctx context.Context, db sqlx.ExtContext, it Item) error {
	const q = `
	INSERT INTO cart_items
		(item_id, email, class_id, class_name, class_image,
		instructor_name, instructor_email, price, created_at)
	VALUES
		(:item_id, :email, :class_id, :class_name, :class_image,
		:instructor_name, :instructor_email, :price, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, it); err != nil {
		return fmt.Errorf("inserting cart item: %w", err)
	}

	return nil
}

func FetchItems(ctx context.Context, db sqlx.ExtContext, email string) ([]Item, error) {
	const q = `SELECT * FROM cart_items WHERE email = $1 ORDER BY created_at`

	its := []Item{}
	if err := sqlx.SelectContext(ctx, db, &its, q, email); err != nil {
		return nil, fmt.Errorf("selecting cart items of [%s]: %w", email, err)
	}

	return its, nil
}

// DeleteItem removes the item by id. Deleting an id that does not exist is a
// successful no-op, so the operation is idempotent.
func DeleteItem(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM cart_items WHERE item_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting cart item[%s]: %w", id, err)
	}

	return nil
}

// DeleteByClass removes at most one item matching (email, class id) and
// reports how many rows went away. Zero is not an error: the caller decides
// whether a missing item is an anomaly.
func DeleteByClass(ctx context.Context, db sqlx.ExtContext, email string, classID string) (int64, error) {
	const q = `
	DELETE FROM cart_items WHERE item_id IN (
		SELECT item_id FROM cart_items
		WHERE email = $1 AND class_id = $2
		ORDER BY created_at
		LIMIT 1
	)`

	res, err := db.ExecContext(ctx, q, email, classID)
	if err != nil {
		return 0, fmt.Errorf("deleting cart item of [%s] for class[%s]: %w", email, classID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking affected rows: %w", err)
	}

	return n, nil
}
