package filterable

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type Season string

const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonFall   Season = "Fall"
)

// Seasons in calendar order.
var AllSeasons = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall}

// ParseSeason parses a season name case-insensitively. "Autumn" is accepted for Fall.
func ParseSeason(s string) (Season, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "autumn") {
		return SeasonFall, nil
	}
	season, ok := lo.Find(AllSeasons, func(season Season) bool {
		return strings.EqualFold(string(season), s)
	})
	if !ok {
		return "", errors.Errorf("invalid season %q", s)
	}
	return season, nil
}

// Valid reports whether s is one of the four seasons.
func (s Season) Valid() bool {
	return lo.Contains(AllSeasons, s)
}

// SeasonOf returns the anime season a date falls into.
func SeasonOf(t time.Time) Season {
	return AllSeasons[(int(t.Month())-1)/3]
}

// YearSeason is one season of one year.
type YearSeason struct {
	Year   int
	Season Season
}

// SeasonsBetween lists every season from start to end inclusive.
func SeasonsBetween(start, end time.Time) []YearSeason {
	if end.Before(start) {
		start, end = end, start
	}
	var result []YearSeason
	cur := YearSeason{Year: start.Year(), Season: SeasonOf(start)}
	last := YearSeason{Year: end.Year(), Season: SeasonOf(end)}
	for {
		result = append(result, cur)
		if cur == last {
			return result
		}
		idx := lo.IndexOf(AllSeasons, cur.Season) + 1
		if idx == len(AllSeasons) {
			cur = YearSeason{Year: cur.Year + 1, Season: AllSeasons[0]}
		} else {
			cur = YearSeason{Year: cur.Year, Season: AllSeasons[idx]}
		}
	}
}

// YearsBetween lists every year from start to end inclusive.
func YearsBetween(start, end time.Time) []int {
	from, to := start.Year(), end.Year()
	if to < from {
		from, to = to, from
	}
	return lo.RangeFrom(from, to-from+1)
}

// ContainsFold reports whether set contains v, ignoring case.
func ContainsFold(set []string, v string) bool {
	return lo.ContainsBy(set, func(item string) bool {
		return strings.EqualFold(item, v)
	})
}

// UnionFold merges sets keeping the first spelling of case-insensitive duplicates.
func UnionFold(sets ...[]string) []string {
	return lo.UniqBy(lo.Flatten(sets), strings.ToLower)
}

// IntersectFold keeps the values present in every set, ignoring case.
func IntersectFold(sets ...[]string) []string {
	if len(sets) == 0 {
		return nil
	}
	return lo.Filter(UnionFold(sets[0]), func(v string, _ int) bool {
		return lo.EveryBy(sets[1:], func(set []string) bool {
			return ContainsFold(set, v)
		})
	})
}
