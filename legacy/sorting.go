package legacy

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/theplant/animefilter/expression"
	"github.com/theplant/animefilter/sorting"
)

// SortingCriteria is the legacy sort key enum.
type SortingCriteria int

const (
	SortSeriesAddedDate       SortingCriteria = 1
	SortEpisodeAddedDate      SortingCriteria = 2
	SortEpisodeAirDate        SortingCriteria = 3
	SortEpisodeWatchedDate    SortingCriteria = 4
	SortSeriesName            SortingCriteria = 5
	SortYear                  SortingCriteria = 6
	SortSeriesCount           SortingCriteria = 7
	SortUnwatchedEpisodeCount SortingCriteria = 8
	SortMissingEpisodeCount   SortingCriteria = 9
	SortUserRating            SortingCriteria = 10
	SortAniDBRating           SortingCriteria = 11
	SortSortName              SortingCriteria = 12
	SortGroupFilterName       SortingCriteria = 13
)

var sortingSelectors = map[SortingCriteria]expression.Expression{
	SortSeriesAddedDate:       expression.AddedDate{},
	SortEpisodeAddedDate:      expression.LastAddedDate{},
	SortEpisodeAirDate:        expression.LastAirDate{},
	SortEpisodeWatchedDate:    expression.LastWatchedDate{},
	SortSeriesName:            expression.Name{},
	SortYear:                  expression.AirDate{},
	SortSeriesCount:           expression.SeriesCount{},
	SortUnwatchedEpisodeCount: expression.UnwatchedEpisodeCount{},
	SortMissingEpisodeCount:   expression.MissingEpisodeCount{},
	SortUserRating:            expression.HighestUserRating{},
	SortAniDBRating:           expression.AverageAniDBRating{},
	SortSortName:              expression.SortingName{},
	SortGroupFilterName:       expression.SortingName{},
}

// Sorting is one legacy sort key.
type Sorting struct {
	Criteria   SortingCriteria
	Descending bool
}

// ConvertSorting maps legacy sort keys to a sort chain in the same order.
func ConvertSorting(keys []Sorting) (sorting.Criteria, error) {
	criteria := make(sorting.Criteria, 0, len(keys))
	for i, key := range keys {
		selector, ok := sortingSelectors[key.Criteria]
		if !ok {
			return nil, errors.Wrapf(ErrInvalidParameter, "sort key %d has unknown criteria %d", i, key.Criteria)
		}
		criteria = append(criteria, sorting.Key{Selector: selector, Descending: key.Descending})
	}
	return criteria, nil
}

// ParseSorting parses the stored form "criteria;direction|criteria;direction",
// where direction 1 is ascending and 2 descending, e.g. "5;1|11;2".
func ParseSorting(s string) ([]Sorting, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var keys []Sorting
	for _, item := range strings.Split(s, "|") {
		parts := strings.Split(strings.TrimSpace(item), ";")
		if len(parts) != 2 {
			return nil, errors.Wrapf(ErrInvalidParameter, "sort key %q", item)
		}
		criteria, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidParameter, "sort criteria %q", parts[0])
		}
		var descending bool
		switch parts[1] {
		case "1":
		case "2":
			descending = true
		default:
			return nil, errors.Wrapf(ErrInvalidParameter, "sort direction %q", parts[1])
		}
		keys = append(keys, Sorting{Criteria: SortingCriteria(criteria), Descending: descending})
	}
	return keys, nil
}
