package tx

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromWithoutTx(t *testing.T) {
	tx, ok := From(context.Background())
	assert.False(t, ok)
	assert.Nil(t, tx)
}

func TestWithTxIgnoresNil(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, WithTx(ctx, nil))
}

func TestRunJoinsExistingTx(t *testing.T) {
	outer := &sql.Tx{}
	ctx := WithTx(context.Background(), outer)

	var got *sql.Tx
	err := Run(ctx, nil, func(_ context.Context, tx *sql.Tx) error {
		got = tx
		return nil
	})

	assert.NoError(t, err)
	assert.Same(t, outer, got)
}
