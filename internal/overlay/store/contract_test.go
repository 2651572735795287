package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitmap/internal/overlay/models"
	"visitmap/pkg/platform/sentinel"
)

func ptr[T any](v T) *T { return &v }

// exerciseStore runs the behaviour every backend must share against an empty
// store.
func exerciseStore(t *testing.T, st Store) {
	ctx := context.Background()

	t.Run("empty load returns empty list", func(t *testing.T) {
		list, err := st.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	visited := models.NewVisitedOverlay(models.VisitedCountriesID, "#2e86ab")
	visited.Countries = []string{"FR", "IT"}
	wishlist := models.Overlay{
		ID:        "wishlist",
		Name:      "Wishlist",
		Color:     "rgba(255, 0, 0, 0.5)",
		Countries: []string{"JP"},
		Visible:   true,
		Order:     ptr(2),
		Tooltip:   ptr("someday"),
	}

	t.Run("save then load preserves order and fields", func(t *testing.T) {
		require.NoError(t, st.Save(ctx, []models.Overlay{visited, wishlist}))

		list, err := st.Load(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, visited, list[0])
		assert.Equal(t, wishlist, list[1])
	})

	t.Run("add appends and rejects duplicates", func(t *testing.T) {
		extra := models.Overlay{ID: "work", Name: "Work", Color: "#000", Countries: []string{}, Visible: false}
		require.NoError(t, st.Add(ctx, extra))

		err := st.Add(ctx, extra)
		assert.ErrorIs(t, err, sentinel.ErrConflict)

		list, err := st.Load(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "work", list[2].ID)
	})

	t.Run("edit replaces by id", func(t *testing.T) {
		edited := wishlist.Clone()
		edited.Visible = false
		edited.Countries = []string{"JP", "KR"}
		require.NoError(t, st.Edit(ctx, edited))

		list, err := st.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, edited, list[1])
	})

	t.Run("edit unknown id is not found", func(t *testing.T) {
		err := st.Edit(ctx, models.Overlay{ID: "missing"})
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("remove drops by id", func(t *testing.T) {
		require.NoError(t, st.Remove(ctx, "wishlist"))
		assert.ErrorIs(t, st.Remove(ctx, "wishlist"), sentinel.ErrNotFound)

		list, err := st.Load(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, models.VisitedCountriesID, list[0].ID)
		assert.Equal(t, "work", list[1].ID)
	})
}
