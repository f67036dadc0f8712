package store

import (
	"context"
	"database/sql"
)

// The stores accept the narrowest interface each query needs, so the same
// method runs against the pool or against the reconciler's transaction.

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Getter interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

type Selecter interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// DB is what a store holds for its own non-transactional reads.
type DB interface {
	Execer
	Getter
	Selecter
}
