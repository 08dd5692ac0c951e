package gormlibrary

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/theplant/animefilter/filterable"
)

func lazy[R, T any](load func() (R, error), fn func(R) T) func() (T, error) {
	return func() (T, error) {
		r, err := load()
		if err != nil {
			var zero T
			return zero, err
		}
		return fn(r), nil
	}
}

func tagNames(s *AnimeSeries) []string {
	return lo.Map(s.Tags, func(t Tag, _ int) string { return t.Name })
}

func seriesNames(s *AnimeSeries) []string {
	return filterable.UnionFold([]string{s.Name}, s.Titles)
}

func animeTypes(s *AnimeSeries) []string {
	if s.AnimeType == "" {
		return nil
	}
	return []string{s.AnimeType}
}

// airingSpan returns the aired range, running until now for ongoing series.
func airingSpan(s *AnimeSeries, now time.Time) (start, end time.Time, ok bool) {
	if s.AirDate == nil {
		return time.Time{}, time.Time{}, false
	}
	end = now
	if s.EndDate != nil {
		end = *s.EndDate
	}
	return *s.AirDate, end, true
}

func seriesYears(s *AnimeSeries, now time.Time) []int {
	start, end, ok := airingSpan(s, now)
	if !ok {
		return nil
	}
	return filterable.YearsBetween(start, end)
}

func seriesSeasons(s *AnimeSeries, now time.Time) []filterable.YearSeason {
	start, end, ok := airingSpan(s, now)
	if !ok {
		return nil
	}
	return filterable.SeasonsBetween(start, end)
}

func hasLink(s *AnimeSeries, provider string) bool {
	return lo.ContainsBy(s.Links, func(l ExternalLink) bool {
		return strings.EqualFold(l.Provider, provider)
	})
}

func missingLink(s *AnimeSeries, provider string) bool {
	return !hasLink(s, provider) && !filterable.ContainsFold(s.DisabledLinks, provider)
}

func isFinished(s *AnimeSeries, now time.Time) bool {
	return s.EndDate != nil && !s.EndDate.After(now)
}

func earliest(ts ...*time.Time) *time.Time {
	var result *time.Time
	for _, t := range ts {
		if t != nil && (result == nil || t.Before(*result)) {
			result = t
		}
	}
	return result
}

func latest(ts ...*time.Time) *time.Time {
	var result *time.Time
	for _, t := range ts {
		if t != nil && (result == nil || t.After(*result)) {
			result = t
		}
	}
	return result
}

func compareYearSeason(a, b filterable.YearSeason) int {
	if c := cmp.Compare(a.Year, b.Year); c != 0 {
		return c
	}
	return cmp.Compare(lo.IndexOf(filterable.AllSeasons, a.Season), lo.IndexOf(filterable.AllSeasons, b.Season))
}

func setSeriesFacts(f *filterable.Filterable, load func() (*AnimeSeries, error), now time.Time) {
	field := func(fn func(*AnimeSeries) []string) func() ([]string, error) {
		return lazy(load, fn)
	}

	filterable.Name.Set(f, lazy(load, func(s *AnimeSeries) string { return s.Name }))
	filterable.SortingName.Set(f, lazy(load, func(s *AnimeSeries) string { return s.SortingName }))

	filterable.Names.Set(f, field(seriesNames))
	filterable.Tags.Set(f, field(tagNames))
	filterable.CustomTags.Set(f, field(func(s *AnimeSeries) []string { return s.CustomTags }))
	filterable.AudioLanguages.Set(f, field(func(s *AnimeSeries) []string { return s.AudioLanguages }))
	filterable.SharedAudioLanguages.Set(f, field(func(s *AnimeSeries) []string { return s.SharedAudioLanguages }))
	filterable.SubtitleLanguages.Set(f, field(func(s *AnimeSeries) []string { return s.SubtitleLanguages }))
	filterable.SharedSubtitleLanguages.Set(f, field(func(s *AnimeSeries) []string { return s.SharedSubtitleLanguages }))
	filterable.VideoSources.Set(f, field(func(s *AnimeSeries) []string { return s.VideoSources }))
	filterable.SharedVideoSources.Set(f, field(func(s *AnimeSeries) []string { return s.SharedVideoSources }))
	filterable.AnimeTypes.Set(f, field(animeTypes))
	filterable.ReleaseGroups.Set(f, field(func(s *AnimeSeries) []string { return s.ReleaseGroups }))
	filterable.Resolutions.Set(f, field(func(s *AnimeSeries) []string { return s.Resolutions }))
	filterable.Years.Set(f, lazy(load, func(s *AnimeSeries) []int { return seriesYears(s, now) }))
	filterable.Seasons.Set(f, lazy(load, func(s *AnimeSeries) []filterable.YearSeason { return seriesSeasons(s, now) }))

	filterable.SeriesCount.SetValue(f, 1)
	filterable.EpisodeCount.Set(f, lazy(load, func(s *AnimeSeries) int { return s.EpisodeCount }))
	filterable.TotalEpisodeCount.Set(f, lazy(load, func(s *AnimeSeries) int { return s.TotalEpisodeCount }))
	filterable.MissingEpisodes.Set(f, lazy(load, func(s *AnimeSeries) int { return s.MissingEpisodes }))
	filterable.MissingEpisodesCollecting.Set(f, lazy(load, func(s *AnimeSeries) int { return s.MissingEpisodesCollecting }))

	rating := lazy(load, func(s *AnimeSeries) float64 { return s.Rating })
	filterable.LowestAniDBRating.Set(f, rating)
	filterable.HighestAniDBRating.Set(f, rating)
	filterable.AverageAniDBRating.Set(f, rating)

	link := func(provider string, missing bool) func() (bool, error) {
		return lazy(load, func(s *AnimeSeries) bool {
			if missing {
				return missingLink(s, provider)
			}
			return hasLink(s, provider)
		})
	}
	filterable.HasTvDBLink.Set(f, link(ProviderTvDB, false))
	filterable.HasMissingTvDBLink.Set(f, link(ProviderTvDB, true))
	filterable.HasTMDbLink.Set(f, link(ProviderTMDb, false))
	filterable.HasMissingTMDbLink.Set(f, link(ProviderTMDb, true))
	filterable.HasTraktLink.Set(f, link(ProviderTrakt, false))
	filterable.HasMissingTraktLink.Set(f, link(ProviderTrakt, true))
	filterable.IsFinished.Set(f, lazy(load, func(s *AnimeSeries) bool { return isFinished(s, now) }))

	filterable.AirDate.Set(f, lazy(load, func(s *AnimeSeries) *time.Time { return s.AirDate }))
	filterable.LastAirDate.Set(f, lazy(load, func(s *AnimeSeries) *time.Time { return s.EndDate }))
	filterable.AddedDate.Set(f, lazy(load, func(s *AnimeSeries) *time.Time { return lo.ToPtr(s.CreatedAt) }))
	filterable.LastAddedDate.Set(f, lazy(load, func(s *AnimeSeries) *time.Time { return s.LastEpisodeAddedAt }))
}

// setGroupFacts aggregates the member series: list facts are unions except the
// Shared* ones which intersect, counts are summed, and dates span the members.
func setGroupFacts(f *filterable.Filterable, load func() (*groupRows, error), now time.Time) {
	each := func(g *groupRows, fn func(*AnimeSeries) []string) [][]string {
		return lo.Map(g.series, func(s AnimeSeries, _ int) []string { return fn(&s) })
	}
	union := func(fn func(*AnimeSeries) []string) func() ([]string, error) {
		return lazy(load, func(g *groupRows) []string { return filterable.UnionFold(each(g, fn)...) })
	}
	intersect := func(fn func(*AnimeSeries) []string) func() ([]string, error) {
		return lazy(load, func(g *groupRows) []string { return filterable.IntersectFold(each(g, fn)...) })
	}
	sum := func(fn func(*AnimeSeries) int) func() (int, error) {
		return lazy(load, func(g *groupRows) int {
			return lo.SumBy(g.series, func(s AnimeSeries) int { return fn(&s) })
		})
	}
	ratings := func(g *groupRows) []float64 {
		return lo.Map(g.series, func(s AnimeSeries, _ int) float64 { return s.Rating })
	}
	anySeries := func(pred func(*AnimeSeries) bool) func() (bool, error) {
		return lazy(load, func(g *groupRows) bool {
			return lo.ContainsBy(g.series, func(s AnimeSeries) bool { return pred(&s) })
		})
	}
	dates := func(g *groupRows, fn func(*AnimeSeries) *time.Time) []*time.Time {
		return lo.Map(g.series, func(s AnimeSeries, _ int) *time.Time { return fn(&s) })
	}

	filterable.Name.Set(f, lazy(load, func(g *groupRows) string { return g.group.Name }))
	filterable.SortingName.Set(f, lazy(load, func(g *groupRows) string { return g.group.SortingName }))

	filterable.Names.Set(f, lazy(load, func(g *groupRows) []string {
		return filterable.UnionFold(append([][]string{{g.group.Name}}, each(g, seriesNames)...)...)
	}))
	filterable.Tags.Set(f, union(tagNames))
	filterable.CustomTags.Set(f, union(func(s *AnimeSeries) []string { return s.CustomTags }))
	filterable.AudioLanguages.Set(f, union(func(s *AnimeSeries) []string { return s.AudioLanguages }))
	filterable.SharedAudioLanguages.Set(f, intersect(func(s *AnimeSeries) []string { return s.SharedAudioLanguages }))
	filterable.SubtitleLanguages.Set(f, union(func(s *AnimeSeries) []string { return s.SubtitleLanguages }))
	filterable.SharedSubtitleLanguages.Set(f, intersect(func(s *AnimeSeries) []string { return s.SharedSubtitleLanguages }))
	filterable.VideoSources.Set(f, union(func(s *AnimeSeries) []string { return s.VideoSources }))
	filterable.SharedVideoSources.Set(f, intersect(func(s *AnimeSeries) []string { return s.SharedVideoSources }))
	filterable.AnimeTypes.Set(f, union(animeTypes))
	filterable.ReleaseGroups.Set(f, union(func(s *AnimeSeries) []string { return s.ReleaseGroups }))
	filterable.Resolutions.Set(f, union(func(s *AnimeSeries) []string { return s.Resolutions }))
	filterable.Years.Set(f, lazy(load, func(g *groupRows) []int {
		years := lo.Uniq(lo.FlatMap(g.series, func(s AnimeSeries, _ int) []int { return seriesYears(&s, now) }))
		slices.Sort(years)
		return years
	}))
	filterable.Seasons.Set(f, lazy(load, func(g *groupRows) []filterable.YearSeason {
		seasons := lo.Uniq(lo.FlatMap(g.series, func(s AnimeSeries, _ int) []filterable.YearSeason { return seriesSeasons(&s, now) }))
		slices.SortFunc(seasons, compareYearSeason)
		return seasons
	}))

	filterable.SeriesCount.Set(f, lazy(load, func(g *groupRows) int { return len(g.series) }))
	filterable.EpisodeCount.Set(f, sum(func(s *AnimeSeries) int { return s.EpisodeCount }))
	filterable.TotalEpisodeCount.Set(f, sum(func(s *AnimeSeries) int { return s.TotalEpisodeCount }))
	filterable.MissingEpisodes.Set(f, sum(func(s *AnimeSeries) int { return s.MissingEpisodes }))
	filterable.MissingEpisodesCollecting.Set(f, sum(func(s *AnimeSeries) int { return s.MissingEpisodesCollecting }))

	filterable.LowestAniDBRating.Set(f, lazy(load, func(g *groupRows) float64 { return lo.Min(ratings(g)) }))
	filterable.HighestAniDBRating.Set(f, lazy(load, func(g *groupRows) float64 { return lo.Max(ratings(g)) }))
	filterable.AverageAniDBRating.Set(f, lazy(load, func(g *groupRows) float64 {
		if len(g.series) == 0 {
			return 0
		}
		return lo.Sum(ratings(g)) / float64(len(g.series))
	}))

	filterable.HasTvDBLink.Set(f, anySeries(func(s *AnimeSeries) bool { return hasLink(s, ProviderTvDB) }))
	filterable.HasMissingTvDBLink.Set(f, anySeries(func(s *AnimeSeries) bool { return missingLink(s, ProviderTvDB) }))
	filterable.HasTMDbLink.Set(f, anySeries(func(s *AnimeSeries) bool { return hasLink(s, ProviderTMDb) }))
	filterable.HasMissingTMDbLink.Set(f, anySeries(func(s *AnimeSeries) bool { return missingLink(s, ProviderTMDb) }))
	filterable.HasTraktLink.Set(f, anySeries(func(s *AnimeSeries) bool { return hasLink(s, ProviderTrakt) }))
	filterable.HasMissingTraktLink.Set(f, anySeries(func(s *AnimeSeries) bool { return missingLink(s, ProviderTrakt) }))
	filterable.IsFinished.Set(f, lazy(load, func(g *groupRows) bool {
		return len(g.series) > 0 && lo.EveryBy(g.series, func(s AnimeSeries) bool { return isFinished(&s, now) })
	}))

	filterable.AirDate.Set(f, lazy(load, func(g *groupRows) *time.Time {
		return earliest(dates(g, func(s *AnimeSeries) *time.Time { return s.AirDate })...)
	}))
	filterable.LastAirDate.Set(f, lazy(load, func(g *groupRows) *time.Time {
		return latest(dates(g, func(s *AnimeSeries) *time.Time { return s.EndDate })...)
	}))
	filterable.AddedDate.Set(f, lazy(load, func(g *groupRows) *time.Time {
		if len(g.series) == 0 {
			return lo.ToPtr(g.group.CreatedAt)
		}
		return earliest(dates(g, func(s *AnimeSeries) *time.Time { return lo.ToPtr(s.CreatedAt) })...)
	}))
	filterable.LastAddedDate.Set(f, lazy(load, func(g *groupRows) *time.Time {
		return latest(dates(g, func(s *AnimeSeries) *time.Time { return s.LastEpisodeAddedAt })...)
	}))
}

// seriesUser holds the series a user fact bag covers and the user's rows for them.
type seriesUser struct {
	series []AnimeSeries
	rows   *userRows
}

func (su *seriesUser) watched(seriesID uint) int {
	state, ok := lo.Find(su.rows.states, func(s UserSeries) bool { return s.SeriesID == seriesID })
	if !ok {
		return 0
	}
	return state.WatchedEpisodes
}

func (su *seriesUser) voteValues() []float64 {
	return lo.Map(su.rows.votes, func(v Vote, _ int) float64 { return v.Value })
}

func setUserFacts(u *filterable.UserInfo, load func() (*seriesUser, error), now time.Time) {
	filterable.IsFavorite.Set(u, lazy(load, func(su *seriesUser) bool { return su.rows.favorite }))
	filterable.HasVotes.Set(u, lazy(load, func(su *seriesUser) bool { return len(su.rows.votes) > 0 }))
	filterable.HasPermanentVotes.Set(u, lazy(load, func(su *seriesUser) bool {
		return lo.ContainsBy(su.rows.votes, func(v Vote) bool { return v.Permanent })
	}))
	filterable.MissingPermanentVotes.Set(u, lazy(load, func(su *seriesUser) bool {
		return lo.ContainsBy(su.series, func(s AnimeSeries) bool {
			return isFinished(&s, now) && !lo.ContainsBy(su.rows.votes, func(v Vote) bool {
				return v.Permanent && v.SeriesID == s.ID
			})
		})
	}))
	filterable.WatchedEpisodes.Set(u, lazy(load, func(su *seriesUser) int {
		return lo.SumBy(su.rows.states, func(s UserSeries) int { return s.WatchedEpisodes })
	}))
	filterable.UnwatchedEpisodes.Set(u, lazy(load, func(su *seriesUser) int {
		return lo.SumBy(su.series, func(s AnimeSeries) int {
			return max(s.EpisodeCount-su.watched(s.ID), 0)
		})
	}))
	filterable.LowestUserRating.Set(u, lazy(load, func(su *seriesUser) float64 { return lo.Min(su.voteValues()) }))
	filterable.HighestUserRating.Set(u, lazy(load, func(su *seriesUser) float64 { return lo.Max(su.voteValues()) }))
	filterable.WatchedDate.Set(u, lazy(load, func(su *seriesUser) *time.Time {
		return earliest(lo.Map(su.rows.states, func(s UserSeries, _ int) *time.Time { return s.FirstWatchedAt })...)
	}))
	filterable.LastWatchedDate.Set(u, lazy(load, func(su *seriesUser) *time.Time {
		return latest(lo.Map(su.rows.states, func(s UserSeries, _ int) *time.Time { return s.LastWatchedAt })...)
	}))
}
