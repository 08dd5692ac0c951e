package gormlibrary_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/theplant/animefilter"
	"github.com/theplant/animefilter/expression"
	"github.com/theplant/animefilter/gormlibrary"
	"github.com/theplant/animefilter/sorting"
)

func TestPresetStore(t *testing.T) {
	forEachDriver(t, testPresetStore)
}

func testPresetStore(t *testing.T, db *gorm.DB) {
	store := gormlibrary.NewPresetStore(db)
	ctx := context.Background()

	dir := &animefilter.Preset{Name: "Seasonal", Directory: true, Locked: true}
	require.NoError(t, store.Save(ctx, dir))
	require.NotZero(t, dir.ID)

	airing := &animefilter.Preset{
		Name: "Airing mecha",
		Expression: expression.And{
			Left:  expression.IsAiring{},
			Right: expression.HasTag{Tag: "Mecha"},
		},
		Sorting: sorting.Criteria{
			sorting.Desc(expression.AirDate{}),
			sorting.Asc(expression.Name{}),
		},
		ApplyAtSeriesLevel: true,
		ParentID:           lo.ToPtr(dir.ID),
	}
	require.NoError(t, store.Save(ctx, airing))

	got, err := store.Get(ctx, airing.ID)
	require.NoError(t, err)
	assert.Equal(t, airing.Name, got.Name)
	assert.Equal(t, airing.ParentID, got.ParentID)
	assert.True(t, got.ApplyAtSeriesLevel)
	assert.True(t, expression.Equal(airing.Expression, got.Expression))
	assert.True(t, sorting.Equal(airing.Sorting, got.Sorting))

	t.Run("nil expression and sorting round trip", func(t *testing.T) {
		got, err := store.Get(ctx, dir.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Expression)
		assert.Empty(t, got.Sorting)
		assert.True(t, got.Directory)
	})

	t.Run("update keeps the id", func(t *testing.T) {
		airing.Name = "Airing robots"
		require.NoError(t, store.Save(ctx, airing))
		got, err := store.FindByName(ctx, "Airing robots")
		require.NoError(t, err)
		assert.Equal(t, airing.ID, got.ID)
	})

	t.Run("list and children", func(t *testing.T) {
		all, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{dir.ID, airing.ID}, lo.Map(all, func(p *animefilter.Preset, _ int) int { return p.ID }))

		children, err := store.Children(ctx, dir.ID)
		require.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, airing.ID, children[0].ID)
	})

	t.Run("invalid preset is refused", func(t *testing.T) {
		err := store.Save(ctx, &animefilter.Preset{Name: "broken", Expression: expression.Not{}})
		require.Error(t, err)
	})

	t.Run("locked preset cannot be deleted", func(t *testing.T) {
		err := store.Delete(ctx, dir.ID)
		assert.True(t, errors.Is(err, gormlibrary.ErrLocked))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, airing.ID))
		_, err := store.Get(ctx, airing.ID)
		assert.True(t, gormlibrary.IsNotFound(err))
	})
}
