package postgres

import (
	"context"
	"testing"

	"github.com/billfold/billfold/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func TestTxFromContext(t *testing.T) {
	c := &Client{}

	assert.Nil(t, c.TxFromContext(context.Background()))

	tx := &sqlx.Tx{}
	ctx := context.WithValue(context.Background(), types.CtxDBTransaction, tx)
	assert.Same(t, tx, c.TxFromContext(ctx))
}

func TestQuerierPrefersContextTx(t *testing.T) {
	db := &sqlx.DB{}
	c := &Client{DB: db}

	// outside a transaction queries go to the pool
	assert.Same(t, db, c.Querier(context.Background()))

	// inside a transaction every query runs on the tx
	tx := &sqlx.Tx{}
	ctx := context.WithValue(context.Background(), types.CtxDBTransaction, tx)
	assert.Same(t, tx, c.Querier(ctx))
}
