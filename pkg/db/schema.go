package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL CHECK (length(title) <= 200),
	description TEXT,
	completed BOOLEAN NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos(created_at);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS todos (
	id BIGSERIAL PRIMARY KEY,
	title VARCHAR(200) NOT NULL,
	description TEXT,
	completed BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos(created_at);
`

// EnsureSchema creates the todos table and its index if absent. It is
// idempotent and runs once during process initialization.
func EnsureSchema(ctx context.Context, pool *Pool) error {
	var ddl string
	switch pool.Driver() {
	case "sqlite3":
		ddl = sqliteSchema
	case "postgres":
		ddl = postgresSchema
	default:
		return &Error{Code: "UNSUPPORTED_DRIVER", Message: fmt.Sprintf("no schema for driver %q", pool.Driver())}
	}

	if _, err := pool.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Rebind converts ?-style placeholders to the $N form used by postgres.
// Queries are written with ? throughout; sqlite takes them as-is.
func Rebind(driver, query string) string {
	if driver != "postgres" {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
