package filterable

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeMemoization(t *testing.T) {
	calls := 0
	f := New(1)
	Tags.Set(f, func() ([]string, error) {
		calls++
		return []string{"Mecha"}, nil
	})

	for i := 0; i < 3; i++ {
		tags, err := Tags.Get(f)
		require.NoError(t, err)
		assert.Equal(t, []string{"Mecha"}, tags)
	}
	assert.Equal(t, 1, calls)

	// an independent bag computes on its own
	other := New(2)
	Tags.Set(other, func() ([]string, error) {
		calls++
		return nil, nil
	})
	_, err := Tags.Get(other)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestAttributeErrorIsMemoized(t *testing.T) {
	calls := 0
	f := New(1)
	SeriesCount.Set(f, func() (int, error) {
		calls++
		return 0, errors.New("boom")
	})

	_, err := SeriesCount.Get(f)
	require.EqualError(t, err, "boom")
	_, err = SeriesCount.Get(f)
	require.EqualError(t, err, "boom")
	assert.Equal(t, 1, calls)
}

func TestMissingAttributePanics(t *testing.T) {
	f := New(1)
	Name.SetValue(f, "Cowboy Bebop")
	assert.True(t, Supplies(f, Name))
	assert.False(t, Supplies(f, SortingName))

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(*MissingAttributeError)
		require.True(t, ok)
		assert.Equal(t, "SortingName", err.Attribute)
		assert.False(t, err.User)
	}()
	_, _ = SortingName.Get(f)
}

func TestUserInfo(t *testing.T) {
	u := NewUserInfo(10, 3)
	IsFavorite.SetValue(u, true)
	var nilDate *time.Time
	LastWatchedDate.SetValue(u, nilDate)

	fav, err := IsFavorite.Get(u)
	require.NoError(t, err)
	assert.True(t, fav)

	date, err := LastWatchedDate.Get(u)
	require.NoError(t, err)
	assert.Nil(t, date)

	assert.True(t, SuppliesUser(u, IsFavorite))
	assert.False(t, SuppliesUser(u, HasVotes))

	assert.PanicsWithError(t, "filterable: user attribute HasVotes was not supplied", func() {
		_, _ = HasVotes.Get(u)
	})
}

func TestAttributeNames(t *testing.T) {
	names := AttributeNames()
	assert.Equal(t, "Name", names[0])
	assert.Contains(t, names, "LastAddedDate")
	assert.Len(t, names, 35)

	userNames := UserAttributeNames()
	assert.Equal(t, "IsFavorite", userNames[0])
	assert.Len(t, userNames, 10)
}

func TestSeasons(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("season of", func(t *testing.T) {
		assert.Equal(t, SeasonWinter, SeasonOf(date(2024, time.January, 5)))
		assert.Equal(t, SeasonWinter, SeasonOf(date(2024, time.March, 31)))
		assert.Equal(t, SeasonSpring, SeasonOf(date(2024, time.April, 1)))
		assert.Equal(t, SeasonSummer, SeasonOf(date(2024, time.August, 1)))
		assert.Equal(t, SeasonFall, SeasonOf(date(2024, time.December, 31)))
	})

	t.Run("parse", func(t *testing.T) {
		s, err := ParseSeason(" summer ")
		require.NoError(t, err)
		assert.Equal(t, SeasonSummer, s)

		s, err = ParseSeason("Autumn")
		require.NoError(t, err)
		assert.Equal(t, SeasonFall, s)

		_, err = ParseSeason("Monsoon")
		require.Error(t, err)
	})

	t.Run("between", func(t *testing.T) {
		got := SeasonsBetween(date(2023, time.November, 1), date(2024, time.May, 1))
		assert.Equal(t, []YearSeason{
			{Year: 2023, Season: SeasonFall},
			{Year: 2024, Season: SeasonWinter},
			{Year: 2024, Season: SeasonSpring},
		}, got)

		assert.Equal(t, []int{2022, 2023, 2024}, YearsBetween(date(2024, 1, 1), date(2022, 6, 1)))
	})
}

func TestSetHelpers(t *testing.T) {
	assert.True(t, ContainsFold([]string{"Mecha", "Comedy"}, "mecha"))
	assert.False(t, ContainsFold([]string{"Mecha"}, "Drama"))

	assert.Equal(t, []string{"ja", "en", "de"}, UnionFold([]string{"ja", "en"}, []string{"EN", "de"}))
	assert.Equal(t, []string{"en"}, IntersectFold([]string{"ja", "en"}, []string{"EN", "de"}, []string{"en"}))
	assert.Nil(t, IntersectFold())
}
