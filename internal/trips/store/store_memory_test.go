package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitmap/internal/trips/models"
)

func TestInMemoryReplaceAndList(t *testing.T) {
	ctx := context.Background()
	st := NewInMemory(models.Trip{ID: "seed", CountryCodes: []string{"FR"}, StartDate: "2020-01-01"})

	trips, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 1)

	next := []models.Trip{
		{ID: "t1", CountryCodes: []string{"IT"}, StartDate: "2021-05-01", EndDate: "2021-05-10"},
		{ID: "t2", CountryCodes: []string{"ES", "PT"}, StartDate: "2022-07-01"},
	}
	require.NoError(t, st.Replace(ctx, next))

	next[1].CountryCodes[0] = "XX"

	trips, err = st.List(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, []string{"ES", "PT"}, trips[1].CountryCodes)
}

func TestInMemoryListEmpty(t *testing.T) {
	trips, err := NewInMemory().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, trips)
	assert.Empty(t, trips)
}
