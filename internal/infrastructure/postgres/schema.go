package postgres

import (
	"context"
	"fmt"
)

// schemaStatements crea las tablas si no existen. El CHECK de users garantiza que el token
// de reset y su expiración estén ambos presentes o ambos ausentes.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                    uuid PRIMARY KEY,
		name                  varchar(30) NOT NULL,
		email                 text NOT NULL,
		password_hash         text NOT NULL,
		role                  text NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
		avatar_public_id      text NOT NULL DEFAULT '',
		avatar_url            text NOT NULL DEFAULT '',
		reset_password_token  text,
		reset_password_expire timestamptz,
		created_at            timestamptz NOT NULL DEFAULT now(),
		CONSTRAINT users_reset_pair CHECK ((reset_password_token IS NULL) = (reset_password_expire IS NULL))
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (lower(email))`,
	`CREATE INDEX IF NOT EXISTS users_reset_token_idx ON users (reset_password_token) WHERE reset_password_token IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS products (
		id             uuid PRIMARY KEY,
		name           text NOT NULL,
		description    text NOT NULL,
		price          numeric(10, 2) NOT NULL,
		rating         double precision NOT NULL DEFAULT 0,
		images         jsonb NOT NULL DEFAULT '[]',
		category       text NOT NULL,
		stock          integer NOT NULL DEFAULT 1 CHECK (stock BETWEEN 0 AND 9999),
		num_of_reviews integer NOT NULL DEFAULT 0,
		reviews        jsonb NOT NULL DEFAULT '[]',
		user_id        uuid,
		created_at     timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS products_category_idx ON products (category)`,
}

// EnsureSchema aplica el esquema de forma idempotente al arrancar.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("aplicar esquema: %w", err)
		}
	}
	return nil
}
