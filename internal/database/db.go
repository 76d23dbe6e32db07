package database

import (
	"context"
	"database/sql"
)

// DB is the process-wide connection handle. It is opened once at startup and
// closed at shutdown; repositories receive the ORM view of it, never the pool.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Query(ctx context.Context, query string, args ...any) (Rows, error)

	SQLDB() *sql.DB
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}
