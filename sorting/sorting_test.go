package sorting

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theplant/animefilter/expression"
	"github.com/theplant/animefilter/filterable"
)

type entity struct {
	id      int
	name    string
	rating  float64
	episode int
	aired   *time.Time
}

func envOf(e entity) *expression.Env {
	f := filterable.New(e.id)
	filterable.SortingName.SetValue(f, e.name)
	filterable.HighestAniDBRating.SetValue(f, e.rating)
	filterable.EpisodeCount.SetValue(f, e.episode)
	filterable.AirDate.SetValue(f, e.aired)
	return &expression.Env{Filterable: f}
}

func ids(items []entity) []int {
	return lo.Map(items, func(e entity, _ int) int { return e.id })
}

func TestOrderDefaultsToSortingName(t *testing.T) {
	items := []entity{{id: 1, name: "trigun"}, {id: 2, name: "Akira"}, {id: 3, name: "Monster"}}

	got, err := Order(nil, items, envOf)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, ids(got))
}

func TestOrderIsStable(t *testing.T) {
	items := []entity{
		{id: 1, rating: 8, episode: 12},
		{id: 2, rating: 9, episode: 24},
		{id: 3, rating: 8, episode: 12},
		{id: 4, rating: 8, episode: 26},
		{id: 5, rating: 9, episode: 24},
	}
	criteria := Criteria{
		Desc(expression.HighestAniDBRating{}),
		Asc(expression.EpisodeCount{}),
	}

	got, err := Order(criteria, items, envOf)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 1, 3, 4}, ids(got))
}

func TestOrderEvaluatesEachKeyOncePerItem(t *testing.T) {
	calls := map[int]int{}
	items := []int{3, 1, 2}
	got, err := Order(Criteria{Asc(expression.EpisodeCount{})}, items, func(id int) *expression.Env {
		f := filterable.New(id)
		filterable.EpisodeCount.Set(f, func() (int, error) {
			calls[id]++
			return id, nil
		})
		return &expression.Env{Filterable: f}
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 1}, calls)
}

func TestOrderDates(t *testing.T) {
	early := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []entity{{id: 1, aired: &late}, {id: 2}, {id: 3, aired: &early}}

	got, err := Order(Criteria{Asc(expression.AirDate{})}, items, envOf)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, ids(got))

	got, err = Order(Criteria{Desc(expression.AirDate{})}, items, envOf)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2}, ids(got))
}

func TestOrderRequiresUserInfo(t *testing.T) {
	_, err := Order(Criteria{Desc(expression.HighestUserRating{})}, []entity{{id: 1}}, envOf)
	require.ErrorIs(t, err, expression.ErrUserInfoRequired)
}

func TestCriteria(t *testing.T) {
	base := Criteria{Asc(expression.Name{})}
	extended := base.Then(Desc(expression.AirDate{}))
	assert.Len(t, base, 1)
	assert.Len(t, extended, 2)

	assert.True(t, Equal(extended, Criteria{Asc(expression.Name{}), Desc(expression.AirDate{})}))
	assert.False(t, Equal(extended, Criteria{Asc(expression.Name{}), Asc(expression.AirDate{})}))

	assert.False(t, extended.IsUserDependent())
	assert.True(t, Criteria{Asc(expression.WatchedDate{})}.IsUserDependent())
	assert.True(t, Criteria{Asc(expression.DateDiff{Left: expression.Today{}, Right: expression.AirDate{}})}.IsTimeDependent())

	require.Error(t, Criteria{{}}.Validate())
}

func TestCodec(t *testing.T) {
	c := Criteria{
		Desc(expression.HighestAniDBRating{}),
		Asc(expression.DateSubtract{Base: expression.AirDate{}, Span: expression.Day}),
	}
	data, err := Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"Selector": {"Type": "HighestAniDBRating"}, "Descending": true},
		{"Selector": {"Type": "DateSubtract", "Base": {"Type": "AirDate"}, "Span": 86400000000000}, "Descending": false}
	]`, string(data))

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.True(t, Equal(c, decoded))

	data, err = Marshal(nil)
	require.NoError(t, err)
	decoded, err = Unmarshal(data)
	require.NoError(t, err)
	assert.Nil(t, decoded)

	_, err = Unmarshal([]byte(`[{"Descending": true}]`))
	require.Error(t, err)
	_, err = Unmarshal([]byte(`{"Selector": {"Type": "Name"}}`))
	require.Error(t, err)
}
