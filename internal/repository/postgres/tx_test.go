package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

type stubTx struct {
	pgx.Tx
}

func TestConnFollowsContext(t *testing.T) {
	pool := &pgxpool.Pool{}
	tx := &stubTx{}

	ctx := context.Background()
	assert.Same(t, pool, conn(ctx, pool))
	assert.Equal(t, ctx, WithoutTx(ctx))

	txCtx := context.WithValue(ctx, txKey{}, pgx.Tx(tx))
	assert.Same(t, tx, conn(txCtx, pool))
	assert.Same(t, pool, conn(WithoutTx(txCtx), pool))
}

func TestWithinTxJoinsOuterTransaction(t *testing.T) {
	tx := &stubTx{}
	txCtx := context.WithValue(context.Background(), txKey{}, pgx.Tx(tx))

	var inner context.Context
	err := newTransactor(nil).WithinTx(txCtx, func(ctx context.Context) error {
		inner = ctx
		return nil
	})

	assert.NoError(t, err)
	assert.Same(t, tx, conn(inner, nil))
}
