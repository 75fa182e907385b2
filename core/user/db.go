package user

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, usr User) error {
	const q = `
	INSERT INTO users (user_id, email, name, image, role, created_at)
	VALUES (:user_id, :email, :name, :image, :role, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, usr); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

func FetchByEmail(ctx context.Context, db sqlx.ExtContext, email string) (User, error) {
	const q = `SELECT * FROM users WHERE email = $1`

	var usr User
	if err := sqlx.GetContext(ctx, db, &usr, q, email); err != nil {
		return User{}, err
	}

	return usr, nil
}

func FetchAll(ctx context.Context, db sqlx.ExtContext) ([]User, error) {
	const q = `SELECT * FROM users ORDER BY created_at`

	usrs := []User{}
	if err := sqlx.SelectContext(ctx, db, &usrs, q); err != nil {
		return nil, fmt.Errorf("selecting users: %w", err)
	}

	return usrs, nil
}

// UpdateRole sets the user's role and reports whether the user existed.
// Setting a role the user already holds is a successful no-op.
func UpdateRole(ctx context.Context, db sqlx.ExtContext, id string, role string) (bool, error) {
	const q = `UPDATE users SET role = $2 WHERE user_id = $1`

	res, err := db.ExecContext(ctx, q, id, role)
	if err != nil {
		return false, fmt.Errorf("updating role of user[%s]: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking affected rows: %w", err)
	}

	return n > 0, nil
}
