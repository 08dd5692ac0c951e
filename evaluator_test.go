package animefilter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theplant/animefilter"
	"github.com/theplant/animefilter/expression"
	"github.com/theplant/animefilter/filterable"
	"github.com/theplant/animefilter/sorting"
)

type fakeSeries struct {
	id        int
	group     int
	name      string
	tags      []string
	missing   int
	rating    float64
	aired     *time.Time
	unwatched int
	favorite  bool
}

type fakeSource struct {
	t      *testing.T
	series []fakeSeries
	groups map[int]string
	// seriesFactsForbidden fails the test when series facts are built.
	seriesFactsForbidden bool
}

var _ animefilter.Source = (*fakeSource)(nil)

func (s *fakeSource) Series(ctx context.Context) ([]animefilter.SeriesRef, error) {
	return lo.Map(s.series, func(fs fakeSeries, _ int) animefilter.SeriesRef {
		return animefilter.SeriesRef{SeriesID: fs.id, GroupID: fs.group}
	}), nil
}

func (s *fakeSource) Groups(ctx context.Context) ([]int, error) {
	return lo.Uniq(lo.Map(s.series, func(fs fakeSeries, _ int) int { return fs.group })), nil
}

func (s *fakeSource) SeriesByGroup(ctx context.Context, groupID int) ([]int, error) {
	return lo.FilterMap(s.series, func(fs fakeSeries, _ int) (int, bool) {
		return fs.id, fs.group == groupID
	}), nil
}

func (s *fakeSource) find(id int) (fakeSeries, error) {
	fs, ok := lo.Find(s.series, func(fs fakeSeries) bool { return fs.id == id })
	if !ok {
		return fs, errors.Errorf("series %d not found", id)
	}
	return fs, nil
}

func (s *fakeSource) SeriesFilterable(ctx context.Context, seriesID int) (*filterable.Filterable, error) {
	if s.seriesFactsForbidden {
		s.t.Errorf("series %d facts were consulted", seriesID)
	}
	fs, err := s.find(seriesID)
	if err != nil {
		return nil, err
	}
	f := filterable.New(seriesID)
	filterable.Name.SetValue(f, fs.name)
	filterable.SortingName.SetValue(f, fs.name)
	filterable.SeriesCount.SetValue(f, 1)
	filterable.Tags.SetValue(f, fs.tags)
	filterable.MissingEpisodes.SetValue(f, fs.missing)
	filterable.HighestAniDBRating.SetValue(f, fs.rating)
	filterable.AirDate.SetValue(f, fs.aired)
	return f, nil
}

func (s *fakeSource) SeriesUserInfo(ctx context.Context, seriesID, userID int) (*filterable.UserInfo, error) {
	fs, err := s.find(seriesID)
	if err != nil {
		return nil, err
	}
	u := filterable.NewUserInfo(seriesID, userID)
	filterable.UnwatchedEpisodes.SetValue(u, fs.unwatched)
	filterable.IsFavorite.SetValue(u, fs.favorite)
	return u, nil
}

func (s *fakeSource) GroupFilterable(ctx context.Context, groupID int) (*filterable.Filterable, error) {
	members := lo.Filter(s.series, func(fs fakeSeries, _ int) bool { return fs.group == groupID })
	f := filterable.New(groupID)
	filterable.Name.SetValue(f, s.groups[groupID])
	filterable.SortingName.SetValue(f, s.groups[groupID])
	filterable.SeriesCount.SetValue(f, len(members))
	return f, nil
}

func (s *fakeSource) GroupUserInfo(ctx context.Context, groupID, userID int) (*filterable.UserInfo, error) {
	u := filterable.NewUserInfo(groupID, userID)
	filterable.IsFavorite.SetValue(u, false)
	return u, nil
}

func TestGroupLevelRollup(t *testing.T) {
	source := &fakeSource{
		t: t,
		series: []fakeSeries{
			{id: 1, group: 1, name: "S1"},
			{id: 2, group: 1, name: "S2"},
			{id: 3, group: 2, name: "S3"},
		},
		groups:               map[int]string{1: "G1", 2: "G2"},
		seriesFactsForbidden: true,
	}

	result, err := animefilter.New(source).Evaluate(context.Background(), &animefilter.EvaluateRequest{
		Preset: &animefilter.Preset{
			Expression: expression.NumberGreaterThanEquals{
				Left:  expression.SeriesCount{},
				Right: expression.NumberValue{Value: 2},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, map[int][]int{1: {1, 2}}, result.Map())
}

func seriesScenario(t *testing.T) *fakeSource {
	return &fakeSource{
		t: t,
		series: []fakeSeries{
			{id: 1, group: 1, name: "A", tags: []string{"Mecha"}, missing: 0, rating: 8.5},
			{id: 2, group: 1, name: "B", tags: []string{"Mecha"}, missing: 2, rating: 9.0},
			{id: 3, group: 2, name: "C", tags: []string{}},
		},
	}
}

func TestSeriesLevelScenario(t *testing.T) {
	preset := &animefilter.Preset{
		ApplyAtSeriesLevel: true,
		Expression: expression.And{
			Left:  expression.HasTag{Tag: "Mecha"},
			Right: expression.Not{Expression: expression.HasMissingEpisodes{}},
		},
		Sorting: sorting.Criteria{sorting.Desc(expression.HighestAniDBRating{})},
	}

	for _, concurrency := range []int{0, 4} {
		result, err := animefilter.New(seriesScenario(t), animefilter.WithConcurrency(concurrency)).
			Evaluate(context.Background(), &animefilter.EvaluateRequest{Preset: preset})
		require.NoError(t, err)
		assert.Equal(t, []animefilter.GroupResult{{GroupID: 1, SeriesIDs: []int{1}}}, result.Groups)
	}
}

func TestDefaultSortGroupsByParent(t *testing.T) {
	source := &fakeSource{
		t: t,
		series: []fakeSeries{
			{id: 1, group: 1, name: "Trigun"},
			{id: 2, group: 2, name: "akira"},
			{id: 3, group: 1, name: "Monster"},
			{id: 4, group: 2, name: "Berserk"},
		},
	}

	result, err := animefilter.New(source).Evaluate(context.Background(), &animefilter.EvaluateRequest{
		Preset: &animefilter.Preset{ApplyAtSeriesLevel: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []animefilter.GroupResult{
		{GroupID: 2, SeriesIDs: []int{2, 4}},
		{GroupID: 1, SeriesIDs: []int{3, 1}},
	}, result.Groups)
	assert.Equal(t, []int{2, 4, 3, 1}, result.SeriesIDs())
	assert.Equal(t, []int{2, 1}, result.GroupIDs())
	assert.Equal(t, 4, result.SeriesCount())
}

func TestUserDependency(t *testing.T) {
	source := seriesScenario(t)
	source.series[0].unwatched = 3
	source.series[0].favorite = true
	source.series[1].unwatched = 1

	preset := &animefilter.Preset{
		ApplyAtSeriesLevel: true,
		Expression: expression.And{
			Left:  expression.HasUnwatchedEpisodes{},
			Right: expression.IsFavorite{},
		},
	}
	ev := animefilter.New(source)

	_, err := ev.Evaluate(context.Background(), &animefilter.EvaluateRequest{Preset: preset})
	require.ErrorIs(t, err, expression.ErrUserInfoRequired)

	result, err := ev.Evaluate(context.Background(), &animefilter.EvaluateRequest{Preset: preset, UserID: lo.ToPtr(7)})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, result.SeriesIDs())

	_, err = ev.Evaluate(context.Background(), &animefilter.EvaluateRequest{
		Preset: &animefilter.Preset{
			ApplyAtSeriesLevel: true,
			Sorting:            sorting.Criteria{sorting.Desc(expression.UnwatchedEpisodeCount{})},
		},
	})
	require.ErrorIs(t, err, expression.ErrUserInfoRequired)
}

func TestPinnedClock(t *testing.T) {
	source := seriesScenario(t)
	source.series[0].aired = lo.ToPtr(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	source.series[1].aired = lo.ToPtr(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))

	preset := &animefilter.Preset{
		ApplyAtSeriesLevel: true,
		Expression: expression.DateGreaterThanEquals{
			Left:  expression.AirDate{},
			Right: expression.DateSubtract{Base: expression.EndOfToday(), Span: 7 * expression.Day},
		},
	}

	ev := animefilter.New(source, animefilter.WithClock(func() time.Time {
		return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	}))
	result, err := ev.Evaluate(context.Background(), &animefilter.EvaluateRequest{Preset: preset})
	require.NoError(t, err)
	assert.Empty(t, result.Groups)

	ctx := animefilter.WithNow(context.Background(), time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	result, err = ev.Evaluate(ctx, &animefilter.EvaluateRequest{Preset: preset})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, result.SeriesIDs())
}

func TestEvaluateErrors(t *testing.T) {
	ev := animefilter.New(seriesScenario(t), animefilter.WithComplexityLimits(&expression.ComplexityLimits{MaxNodes: 2}))

	_, err := ev.Evaluate(context.Background(), &animefilter.EvaluateRequest{})
	require.Error(t, err)

	_, err = ev.Evaluate(context.Background(), &animefilter.EvaluateRequest{
		Preset: &animefilter.Preset{Expression: expression.And{Left: expression.IsFinished{}}},
	})
	require.ErrorContains(t, err, "And.Right is nil")

	_, err = ev.Evaluate(context.Background(), &animefilter.EvaluateRequest{
		Preset: &animefilter.Preset{Expression: expression.AllOf(
			expression.HasTag{Tag: "a"},
			expression.HasTag{Tag: "b"},
		)},
	})
	require.ErrorIs(t, err, expression.ErrComplexity)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = animefilter.New(seriesScenario(t)).Evaluate(ctx, &animefilter.EvaluateRequest{
		Preset: &animefilter.Preset{ApplyAtSeriesLevel: true},
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMiddlewares(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var order []string
	trace := func(name string) animefilter.Middleware {
		return func(next animefilter.Evaluator) animefilter.Evaluator {
			return animefilter.EvaluatorFunc(func(ctx context.Context, req *animefilter.EvaluateRequest) (*animefilter.Result, error) {
				order = append(order, name)
				return next.Evaluate(ctx, req)
			})
		}
	}

	ev := animefilter.New(seriesScenario(t), animefilter.WithMiddleware(
		trace("outer"),
		animefilter.LogEvaluations(logger),
		animefilter.EnsureSorting(sorting.Criteria{sorting.Desc(expression.HighestAniDBRating{})}),
		trace("inner"),
	))

	preset := &animefilter.Preset{ID: 42, Name: "Mecha", ApplyAtSeriesLevel: true, Expression: expression.HasTag{Tag: "Mecha"}}
	result, err := ev.Evaluate(context.Background(), &animefilter.EvaluateRequest{Preset: preset})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, result.SeriesIDs())
	assert.Empty(t, preset.Sorting)
	assert.Equal(t, []string{"outer", "inner"}, order)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "evaluate preset", line["msg"])
	assert.EqualValues(t, 42, line["preset"])
	assert.EqualValues(t, 2, line["series"])
}

func TestRejectDeprecated(t *testing.T) {
	ev := animefilter.New(seriesScenario(t), animefilter.WithMiddleware(
		animefilter.RejectDeprecated(),
		animefilter.EnsureComplexity(expression.StrictLimits),
	))

	_, err := ev.Evaluate(context.Background(), &animefilter.EvaluateRequest{
		Preset: &animefilter.Preset{Expression: expression.Not{Expression: expression.HasTvDBLink{}}},
	})
	require.ErrorIs(t, err, animefilter.ErrDeprecatedExpression)
}

func TestPresetJSON(t *testing.T) {
	preset := animefilter.Preset{
		ID:                 3,
		Name:               "Airing mecha",
		ApplyAtSeriesLevel: true,
		Expression:         expression.AllOf(expression.HasTag{Tag: "Mecha"}, expression.IsAiring{}),
		Sorting:            sorting.Criteria{sorting.Desc(expression.AirDate{})},
		ParentID:           lo.ToPtr(1),
	}
	assert.True(t, preset.IsTimeDependent())
	assert.False(t, preset.IsUserDependent())

	data, err := json.Marshal(preset)
	require.NoError(t, err)

	var decoded animefilter.Preset
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, preset.ID, decoded.ID)
	assert.Equal(t, preset.Name, decoded.Name)
	assert.Equal(t, preset.ApplyAtSeriesLevel, decoded.ApplyAtSeriesLevel)
	assert.Equal(t, preset.ParentID, decoded.ParentID)
	assert.True(t, expression.Equal(preset.Expression, decoded.Expression))
	assert.True(t, sorting.Equal(preset.Sorting, decoded.Sorting))

	var empty animefilter.Preset
	require.NoError(t, json.Unmarshal([]byte(`{"ID":1,"Expression":null,"Sorting":null}`), &empty))
	assert.Nil(t, empty.Expression)
	assert.Nil(t, empty.Sorting)
}
