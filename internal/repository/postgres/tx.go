package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// conn returns the transaction carried by ctx, or the pool.
func conn(ctx context.Context, db *pgxpool.Pool) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db
}

type Transactor interface {
	// WithinTx runs fn in one transaction. Repository calls made with the
	// ctx passed to fn join it; fn returning an error rolls it back.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type transactor struct {
	db *pgxpool.Pool
}

func newTransactor(db *pgxpool.Pool) Transactor {
	return &transactor{
		db: db,
	}
}

func (t *transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	return pgx.BeginFunc(ctx, t.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// WithoutTx detaches ctx from any transaction it carries, so writes made
// with it commit on their own.
func WithoutTx(ctx context.Context) context.Context {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); !ok {
		return ctx
	}
	return context.WithValue(ctx, txKey{}, nil)
}
