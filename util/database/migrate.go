package database

import (
	"context"
	"fmt"
)

type migration struct {
	name string
	stmt string
}

// Ordered; every statement is idempotent so Migrate can run on each boot.
var migrations = []migration{
	{
		name: "create_books",
		stmt: `
CREATE TABLE IF NOT EXISTS books (
	id           uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	name         text NOT NULL,
	category     text NOT NULL,
	rent_per_day numeric NOT NULL CHECK (rent_per_day > 0),
	created_at   timestamptz NOT NULL DEFAULT now(),
	updated_at   timestamptz NOT NULL DEFAULT now()
)`,
	},
	{
		// Case-insensitive uniqueness lives in the index, not in app code.
		name: "books_name_lower_key",
		stmt: `CREATE UNIQUE INDEX IF NOT EXISTS books_name_lower_key ON books (lower(name))`,
	},
	{
		name: "create_users",
		stmt: `
CREATE TABLE IF NOT EXISTS users (
	id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	name       text NOT NULL,
	email      text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
)`,
	},
	{
		name: "users_email_key",
		stmt: `CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email)`,
	},
	{
		name: "create_transactions",
		stmt: `
CREATE TABLE IF NOT EXISTS transactions (
	id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	book_id     uuid NOT NULL REFERENCES books(id),
	user_id     uuid NOT NULL REFERENCES users(id),
	issue_date  timestamptz NOT NULL,
	return_date timestamptz,
	rent_amount double precision,
	created_at  timestamptz NOT NULL DEFAULT now(),
	updated_at  timestamptz NOT NULL DEFAULT now()
)`,
	},
	{
		name: "transactions_book_id_idx",
		stmt: `CREATE INDEX IF NOT EXISTS transactions_book_id_idx ON transactions (book_id)`,
	},
	{
		name: "transactions_user_id_idx",
		stmt: `CREATE INDEX IF NOT EXISTS transactions_user_id_idx ON transactions (user_id)`,
	},
	{
		name: "transactions_issue_date_idx",
		stmt: `CREATE INDEX IF NOT EXISTS transactions_issue_date_idx ON transactions (issue_date)`,
	},
}

// Migrate brings the schema up to date.
func (d *DB) Migrate(ctx context.Context) error {
	for _, m := range migrations {
		if _, err := d.Pool.Exec(ctx, m.stmt); err != nil {
			return fmt.Errorf("migration %s: %w", m.name, err)
		}
	}
	return nil
}
