package legacy

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/theplant/animefilter/expression"
	"github.com/theplant/animefilter/filterable"
)

// DateLayouts are the accepted date parameter layouts.
var DateLayouts = []string{"20060102", "2006-01-02"}

// ConvertConditions converts conditions into one conjunction in their
// original order. With suppressErrors a condition that fails to convert is
// dropped, except for deprecated conditions which always fail. It returns
// nil when nothing remains.
func ConvertConditions(conditions []Condition, suppressErrors bool) (expression.Bool, error) {
	var converted []expression.Bool
	for i, c := range conditions {
		expr, err := ConvertCondition(c)
		if err != nil {
			if suppressErrors && !errors.Is(err, ErrDeprecated) {
				continue
			}
			return nil, &ConversionError{Index: i, Condition: c, Err: err}
		}
		converted = append(converted, expr)
	}
	return expression.AllOf(converted...), nil
}

// ConvertCondition converts one condition.
func ConvertCondition(c Condition) (expression.Bool, error) {
	switch c.Type {
	case ConditionCompletedSeries:
		return toggle(c, expression.Not{Expression: expression.HasMissingEpisodes{}})
	case ConditionMissingEpisodes:
		return toggle(c, expression.HasMissingEpisodes{})
	case ConditionMissingEpisodesCollecting:
		return toggle(c, expression.HasMissingEpisodesCollecting{})
	case ConditionHasUnwatchedEpisodes:
		return toggle(c, expression.HasUnwatchedEpisodes{})
	case ConditionAllEpisodesWatched:
		return toggle(c, expression.Not{Expression: expression.HasUnwatchedEpisodes{}})
	case ConditionHasWatchedEpisodes:
		return toggle(c, expression.HasWatchedEpisodes{})
	case ConditionUserVoted:
		return toggle(c, expression.HasPermanentVotes{})
	case ConditionUserVotedAny:
		return toggle(c, expression.HasVotes{})
	case ConditionFavourite:
		return toggle(c, expression.IsFavorite{})
	case ConditionFinishedAiring:
		return toggle(c, expression.IsFinished{})
	case ConditionAssignedTvDBInfo:
		return toggle(c, expression.HasTvDBLink{})
	case ConditionAssignedMovieDBInfo:
		return toggle(c, expression.HasTMDbLink{})
	case ConditionAssignedTvDBOrMovieDBInfo:
		return toggle(c, expression.Or{Left: expression.HasTvDBLink{}, Right: expression.HasTMDbLink{}})
	case ConditionAssignedTraktInfo:
		return toggle(c, expression.HasTraktLink{})

	case ConditionTag:
		return stringSet(c, func(v string) expression.Bool { return expression.HasTag{Tag: v} }, nil)
	case ConditionCustomTags:
		return stringSet(c, func(v string) expression.Bool { return expression.HasCustomTag{Tag: v} }, nil)
	case ConditionAnimeType:
		return stringSet(c, func(v string) expression.Bool { return expression.HasAnimeType{AnimeType: v} }, nil)
	case ConditionReleaseGroup:
		return stringSet(c, func(v string) expression.Bool { return expression.HasReleaseGroup{ReleaseGroup: v} }, nil)
	case ConditionVideoQuality:
		return stringSet(c,
			func(v string) expression.Bool { return expression.HasVideoSource{Source: v} },
			func(v string) expression.Bool { return expression.HasSharedVideoSource{Source: v} },
		)
	case ConditionAudioLanguage:
		return stringSet(c,
			func(v string) expression.Bool { return expression.HasAudioLanguage{Language: v} },
			func(v string) expression.Bool { return expression.HasSharedAudioLanguage{Language: v} },
		)
	case ConditionSubtitleLanguage:
		return stringSet(c,
			func(v string) expression.Bool { return expression.HasSubtitleLanguage{Language: v} },
			func(v string) expression.Bool { return expression.HasSharedSubtitleLanguage{Language: v} },
		)
	case ConditionYear:
		return year(c)
	case ConditionSeason:
		return season(c)

	case ConditionAirDate:
		return dateCondition(c, expression.AirDate{})
	case ConditionLatestEpisodeAirDate:
		return dateCondition(c, expression.LastAirDate{})
	case ConditionSeriesCreatedDate:
		return dateCondition(c, expression.AddedDate{})
	case ConditionEpisodeAddedDate:
		return dateCondition(c, expression.LastAddedDate{})
	case ConditionEpisodeWatchedDate:
		return dateCondition(c, expression.LastWatchedDate{})

	case ConditionAniDBRating:
		return numberCondition(c, expression.HighestAniDBRating{})
	case ConditionUserRating:
		return numberCondition(c, expression.HighestUserRating{})
	case ConditionEpisodeCount:
		return numberCondition(c, expression.EpisodeCount{})

	case ConditionStudio, ConditionAnimeGroup:
		return nil, errors.Wrapf(ErrUnsupportedCondition, "%s", c.Type)
	case ConditionAssignedMALInfo:
		return nil, errors.Wrapf(ErrDeprecated, "%s", c.Type)
	}
	return nil, errors.Wrapf(ErrUnsupportedCondition, "%s", c.Type)
}

func invalidOperator(c Condition) error {
	return errors.Wrapf(ErrInvalidOperator, "%s does not support %s", c.Type, c.Operator)
}

func toggle(c Condition, expr expression.Bool) (expression.Bool, error) {
	switch c.Operator {
	case OperatorInclude:
		return expr, nil
	case OperatorExclude:
		return negate(expr), nil
	}
	return nil, invalidOperator(c)
}

func negate(expr expression.Bool) expression.Bool {
	if not, ok := expr.(expression.Not); ok {
		return not.Expression
	}
	return expression.Not{Expression: expr}
}

// splitList splits a comma separated parameter, dropping empty items.
func splitList(parameter string) []string {
	return lo.FilterMap(strings.Split(parameter, ","), func(item string, _ int) (string, bool) {
		item = strings.TrimSpace(item)
		return item, item != ""
	})
}

func stringSet(c Condition, anyFile, allFiles func(v string) expression.Bool) (expression.Bool, error) {
	values := splitList(c.Parameter)
	if len(values) == 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "%s needs at least one value", c.Type)
	}
	build := anyFile
	switch c.Operator {
	case OperatorInclude, OperatorIn, OperatorExclude, OperatorNotIn:
	case OperatorInAllEpisodes, OperatorNotInAllEpisodes:
		if allFiles == nil {
			return nil, invalidOperator(c)
		}
		build = allFiles
	default:
		return nil, invalidOperator(c)
	}

	expr := expression.AnyOf(lo.Map(values, func(v string, _ int) expression.Bool { return build(v) })...)
	switch c.Operator {
	case OperatorExclude, OperatorNotIn, OperatorNotInAllEpisodes:
		return expression.Not{Expression: expr}, nil
	}
	return expr, nil
}

func year(c Condition) (expression.Bool, error) {
	var years []expression.Bool
	for _, item := range splitList(c.Parameter) {
		y, err := strconv.Atoi(item)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidParameter, "year %q", item)
		}
		years = append(years, expression.InYear{Year: y})
	}
	return set(c, years)
}

// season parses items such as "Winter 2024".
func season(c Condition) (expression.Bool, error) {
	var seasons []expression.Bool
	for _, item := range splitList(c.Parameter) {
		parts := strings.Fields(item)
		if len(parts) != 2 {
			return nil, errors.Wrapf(ErrInvalidParameter, "season %q", item)
		}
		s, err := filterable.ParseSeason(parts[0])
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidParameter, "season %q", item)
		}
		y, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidParameter, "season year %q", item)
		}
		seasons = append(seasons, expression.InSeason{Year: y, Season: s})
	}
	return set(c, seasons)
}

func set(c Condition, items []expression.Bool) (expression.Bool, error) {
	if len(items) == 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "%s needs at least one value", c.Type)
	}
	switch c.Operator {
	case OperatorInclude, OperatorIn:
		return expression.AnyOf(items...), nil
	case OperatorExclude, OperatorNotIn:
		return expression.Not{Expression: expression.AnyOf(items...)}, nil
	}
	return nil, invalidOperator(c)
}

// ParseDate parses a date parameter in any of DateLayouts, in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrInvalidParameter, "date %q", s)
}

// maxLastXDays is the longest window a time.Duration can hold.
const maxLastXDays = math.MaxInt64 / int64(expression.Day)

func dateCondition(c Condition, selector expression.Date) (expression.Bool, error) {
	switch c.Operator {
	case OperatorLastXDays:
		days, err := strconv.Atoi(strings.TrimSpace(c.Parameter))
		if err != nil || days < 0 || int64(days) > maxLastXDays {
			return nil, errors.Wrapf(ErrInvalidParameter, "days %q", c.Parameter)
		}
		return expression.DateGreaterThanEquals{
			Left:  selector,
			Right: expression.DateSubtract{Base: expression.EndOfToday(), Span: time.Duration(days) * expression.Day},
		}, nil
	case OperatorGreaterThan, OperatorLessThan:
		t, err := ParseDate(c.Parameter)
		if err != nil {
			return nil, err
		}
		if c.Operator == OperatorGreaterThan {
			return expression.DateGreaterThan{Left: selector, Right: expression.DateValue{Value: t}}, nil
		}
		return expression.DateLessThan{Left: selector, Right: expression.DateValue{Value: t}}, nil
	}
	return nil, invalidOperator(c)
}

// numberCondition keeps the stored operand order: the operator compares the
// parameter to the selector, so GreaterThan becomes value < selector.
func numberCondition(c Condition, selector expression.Number) (expression.Bool, error) {
	switch c.Operator {
	case OperatorGreaterThan, OperatorLessThan, OperatorEquals, OperatorNotEquals:
	default:
		return nil, invalidOperator(c)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Parameter), 64)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidParameter, "number %q", c.Parameter)
	}
	value := expression.NumberValue{Value: v}
	switch c.Operator {
	case OperatorGreaterThan:
		return expression.NumberLessThan{Left: value, Right: selector}, nil
	case OperatorLessThan:
		return expression.NumberGreaterThan{Left: value, Right: selector}, nil
	case OperatorEquals:
		return expression.NumberEquals{Left: selector, Right: value}, nil
	}
	return expression.NumberNotEquals{Left: selector, Right: value}, nil
}
