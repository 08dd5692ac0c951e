package expression

import (
	"math"
	"regexp"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/theplant/animefilter/filterable"
)

// Evaluate evaluates a boolean expression against env. Dependencies are
// checked up front, so a user dependent expression fails with
// ErrUserInfoRequired even when evaluation would short-circuit.
func Evaluate(e Bool, env *Env) (bool, error) {
	if e == nil {
		return true, nil
	}
	if err := CheckEnv(e, env); err != nil {
		return false, err
	}
	return EvalBool(e, env)
}

// CheckEnv reports whether env carries what e depends on.
func CheckEnv(e Expression, env *Env) error {
	if IsUserDependent(e) && env.UserInfo == nil {
		return errors.Wrapf(ErrUserInfoRequired, "evaluate %s", e.Kind())
	}
	if IsTimeDependent(e) && env.Now.IsZero() {
		return errors.Wrapf(ErrNowRequired, "evaluate %s", e.Kind())
	}
	return nil
}

// EvalBool evaluates a boolean node.
func EvalBool(e Bool, env *Env) (bool, error) {
	switch n := e.(type) {
	case And:
		l, err := EvalBool(n.Left, env)
		if err != nil || !l {
			return false, err
		}
		return EvalBool(n.Right, env)
	case Or:
		l, err := EvalBool(n.Left, env)
		if err != nil || l {
			return l, err
		}
		return EvalBool(n.Right, env)
	case Xor:
		l, err := EvalBool(n.Left, env)
		if err != nil {
			return false, err
		}
		r, err := EvalBool(n.Right, env)
		if err != nil {
			return false, err
		}
		return l != r, nil
	case Not:
		v, err := EvalBool(n.Expression, env)
		return !v && err == nil, err

	case NumberEquals:
		return compareNumbers(n.Left, n.Right, env, func(l, r float64) bool { return l == r })
	case NumberNotEquals:
		return compareNumbers(n.Left, n.Right, env, func(l, r float64) bool { return l != r })
	case NumberGreaterThan:
		return compareNumbers(n.Left, n.Right, env, func(l, r float64) bool { return l > r })
	case NumberGreaterThanEquals:
		return compareNumbers(n.Left, n.Right, env, func(l, r float64) bool { return l >= r })
	case NumberLessThan:
		return compareNumbers(n.Left, n.Right, env, func(l, r float64) bool { return l < r })
	case NumberLessThanEquals:
		return compareNumbers(n.Left, n.Right, env, func(l, r float64) bool { return l <= r })

	case DateEquals:
		return compareDates(n.Left, n.Right, env, sameDay)
	case DateNotEquals:
		return compareDates(n.Left, n.Right, env, func(l, r time.Time) bool { return !sameDay(l, r) })
	case DateGreaterThan:
		return compareDates(n.Left, n.Right, env, func(l, r time.Time) bool { return l.After(r) })
	case DateGreaterThanEquals:
		return compareDates(n.Left, n.Right, env, func(l, r time.Time) bool { return !l.Before(r) })
	case DateLessThan:
		return compareDates(n.Left, n.Right, env, func(l, r time.Time) bool { return l.Before(r) })
	case DateLessThanEquals:
		return compareDates(n.Left, n.Right, env, func(l, r time.Time) bool { return !l.After(r) })

	case StringEquals:
		return compareStrings(n.Left, n.Right, env, strings.EqualFold)
	case StringNotEquals:
		return compareStrings(n.Left, n.Right, env, func(l, r string) bool { return !strings.EqualFold(l, r) })
	case StringContains:
		return compareStrings(n.Left, n.Right, env, func(l, r string) bool {
			return strings.Contains(strings.ToLower(l), strings.ToLower(r))
		})
	case StringStartsWith:
		return compareStrings(n.Left, n.Right, env, func(l, r string) bool {
			return strings.HasPrefix(strings.ToLower(l), strings.ToLower(r))
		})
	case StringEndsWith:
		return compareStrings(n.Left, n.Right, env, func(l, r string) bool {
			return strings.HasSuffix(strings.ToLower(l), strings.ToLower(r))
		})
	case StringRegex:
		l, err := EvalString(n.Left, env)
		if err != nil {
			return false, err
		}
		r, err := EvalString(n.Right, env)
		if err != nil {
			return false, err
		}
		re, err := compileRegex(r)
		if err != nil {
			return false, err
		}
		return re.MatchString(l), nil

	case HasTag:
		return containsFact(filterable.Tags, env, n.Tag)
	case HasCustomTag:
		return containsFact(filterable.CustomTags, env, n.Tag)
	case HasAudioLanguage:
		return containsFact(filterable.AudioLanguages, env, n.Language)
	case HasSharedAudioLanguage:
		return containsFact(filterable.SharedAudioLanguages, env, n.Language)
	case HasSubtitleLanguage:
		return containsFact(filterable.SubtitleLanguages, env, n.Language)
	case HasSharedSubtitleLanguage:
		return containsFact(filterable.SharedSubtitleLanguages, env, n.Language)
	case HasVideoSource:
		return containsFact(filterable.VideoSources, env, n.Source)
	case HasSharedVideoSource:
		return containsFact(filterable.SharedVideoSources, env, n.Source)
	case HasAnimeType:
		return containsFact(filterable.AnimeTypes, env, n.AnimeType)
	case HasReleaseGroup:
		return containsFact(filterable.ReleaseGroups, env, n.ReleaseGroup)
	case InYear:
		years, err := filterable.Years.Get(env.Filterable)
		return lo.Contains(years, n.Year), err
	case InSeason:
		seasons, err := filterable.Seasons.Get(env.Filterable)
		return lo.Contains(seasons, filterable.YearSeason{Year: n.Year, Season: n.Season}), err
	case HasMissingEpisodes:
		v, err := filterable.MissingEpisodes.Get(env.Filterable)
		return v > 0, err
	case HasMissingEpisodesCollecting:
		v, err := filterable.MissingEpisodesCollecting.Get(env.Filterable)
		return v > 0, err
	case IsFinished:
		return filterable.IsFinished.Get(env.Filterable)
	case IsAiring:
		return isAiring(env)
	case HasTvDBLink:
		return filterable.HasTvDBLink.Get(env.Filterable)
	case HasMissingTvDBLink:
		return filterable.HasMissingTvDBLink.Get(env.Filterable)
	case HasTMDbLink:
		return filterable.HasTMDbLink.Get(env.Filterable)
	case HasMissingTMDbLink:
		return filterable.HasMissingTMDbLink.Get(env.Filterable)
	case HasTraktLink:
		return filterable.HasTraktLink.Get(env.Filterable)
	case HasMissingTraktLink:
		return filterable.HasMissingTraktLink.Get(env.Filterable)

	case HasUnwatchedEpisodes:
		return userFact(filterable.UnwatchedEpisodes, env, func(v int) bool { return v > 0 })
	case HasWatchedEpisodes:
		return userFact(filterable.WatchedEpisodes, env, func(v int) bool { return v > 0 })
	case IsFavorite:
		return userFact(filterable.IsFavorite, env, identity[bool])
	case HasVotes:
		return userFact(filterable.HasVotes, env, identity[bool])
	case HasPermanentVotes:
		return userFact(filterable.HasPermanentVotes, env, identity[bool])
	case MissingPermanentVotes:
		return userFact(filterable.MissingPermanentVotes, env, identity[bool])
	}
	return false, errors.Errorf("cannot evaluate %T as a boolean", e)
}

// EvalNumber evaluates a numeric node.
func EvalNumber(e Number, env *Env) (float64, error) {
	switch n := e.(type) {
	case NumberValue:
		return n.Value, nil
	case SeriesCount:
		return intFact(filterable.SeriesCount, env)
	case EpisodeCount:
		return intFact(filterable.EpisodeCount, env)
	case TotalEpisodeCount:
		return intFact(filterable.TotalEpisodeCount, env)
	case MissingEpisodeCount:
		return intFact(filterable.MissingEpisodes, env)
	case MissingEpisodeCollectingCount:
		return intFact(filterable.MissingEpisodesCollecting, env)
	case LowestAniDBRating:
		return filterable.LowestAniDBRating.Get(env.Filterable)
	case HighestAniDBRating:
		return filterable.HighestAniDBRating.Get(env.Filterable)
	case AverageAniDBRating:
		return filterable.AverageAniDBRating.Get(env.Filterable)
	case AudioLanguageCount:
		return countFact(filterable.AudioLanguages, env)
	case SubtitleLanguageCount:
		return countFact(filterable.SubtitleLanguages, env)
	case VideoSourceCount:
		return countFact(filterable.VideoSources, env)
	case TagCount:
		return countFact(filterable.Tags, env)
	case WatchedEpisodeCount:
		return userFact(filterable.WatchedEpisodes, env, intToFloat)
	case UnwatchedEpisodeCount:
		return userFact(filterable.UnwatchedEpisodes, env, intToFloat)
	case LowestUserRating:
		return userFact(filterable.LowestUserRating, env, identity[float64])
	case HighestUserRating:
		return userFact(filterable.HighestUserRating, env, identity[float64])
	case DateDiff:
		l, err := EvalDate(n.Left, env)
		if err != nil {
			return 0, err
		}
		r, err := EvalDate(n.Right, env)
		if err != nil {
			return 0, err
		}
		if l == nil || r == nil {
			return 0, nil
		}
		return math.Round(l.Sub(*r).Hours()/24*1e6) / 1e6, nil
	}
	return 0, errors.Errorf("cannot evaluate %T as a number", e)
}

// EvalDate evaluates a date node. A nil result is an unknown date.
func EvalDate(e Date, env *Env) (*time.Time, error) {
	switch n := e.(type) {
	case DateValue:
		return lo.ToPtr(n.Value), nil
	case AirDate:
		return filterable.AirDate.Get(env.Filterable)
	case LastAirDate:
		return filterable.LastAirDate.Get(env.Filterable)
	case AddedDate:
		return filterable.AddedDate.Get(env.Filterable)
	case LastAddedDate:
		return filterable.LastAddedDate.Get(env.Filterable)
	case WatchedDate:
		return userFact(filterable.WatchedDate, env, identity[*time.Time])
	case LastWatchedDate:
		return userFact(filterable.LastWatchedDate, env, identity[*time.Time])
	case Today:
		now, err := env.now()
		if err != nil {
			return nil, err
		}
		y, m, d := now.Date()
		return lo.ToPtr(time.Date(y, m, d, 0, 0, 0, 0, now.Location())), nil
	case DateAdd:
		return shiftDate(n.Base, n.Span, env)
	case DateSubtract:
		return shiftDate(n.Base, -n.Span, env)
	}
	return nil, errors.Errorf("cannot evaluate %T as a date", e)
}

// EvalString evaluates a string node.
func EvalString(e String, env *Env) (string, error) {
	switch n := e.(type) {
	case StringValue:
		return n.Value, nil
	case Name:
		return filterable.Name.Get(env.Filterable)
	case SortingName:
		return filterable.SortingName.Get(env.Filterable)
	}
	return "", errors.Errorf("cannot evaluate %T as a string", e)
}

// Eval evaluates any node and returns its value as any.
func Eval(e Expression, env *Env) (any, error) {
	switch n := e.(type) {
	case Bool:
		return EvalBool(n, env)
	case Number:
		return EvalNumber(n, env)
	case Date:
		return EvalDate(n, env)
	case String:
		return EvalString(n, env)
	}
	return nil, errors.Errorf("cannot evaluate %T", e)
}

func compareNumbers(left, right Number, env *Env, cmp func(l, r float64) bool) (bool, error) {
	l, err := EvalNumber(left, env)
	if err != nil {
		return false, err
	}
	r, err := EvalNumber(right, env)
	if err != nil {
		return false, err
	}
	return cmp(l, r), nil
}

func compareDates(left, right Date, env *Env, cmp func(l, r time.Time) bool) (bool, error) {
	l, err := EvalDate(left, env)
	if err != nil {
		return false, err
	}
	r, err := EvalDate(right, env)
	if err != nil {
		return false, err
	}
	if l == nil || r == nil {
		return false, nil
	}
	return cmp(*l, *r), nil
}

func compareStrings(left, right String, env *Env, cmp func(l, r string) bool) (bool, error) {
	l, err := EvalString(left, env)
	if err != nil {
		return false, err
	}
	r, err := EvalString(right, env)
	if err != nil {
		return false, err
	}
	return cmp(l, r), nil
}

func sameDay(l, r time.Time) bool {
	r = r.In(l.Location())
	ly, lm, ld := l.Date()
	ry, rm, rd := r.Date()
	return ly == ry && lm == rm && ld == rd
}

func shiftDate(base Date, span time.Duration, env *Env) (*time.Time, error) {
	t, err := EvalDate(base, env)
	if err != nil || t == nil {
		return nil, err
	}
	return lo.ToPtr(t.Add(span)), nil
}

func containsFact(attr filterable.Attribute[[]string], env *Env, v string) (bool, error) {
	set, err := attr.Get(env.Filterable)
	if err != nil {
		return false, err
	}
	return filterable.ContainsFold(set, v), nil
}

func intFact(attr filterable.Attribute[int], env *Env) (float64, error) {
	v, err := attr.Get(env.Filterable)
	return float64(v), err
}

func countFact(attr filterable.Attribute[[]string], env *Env) (float64, error) {
	v, err := attr.Get(env.Filterable)
	return float64(len(v)), err
}

func intToFloat(v int) float64 { return float64(v) }

func userFact[T, R any](attr filterable.UserAttribute[T], env *Env, convert func(T) R) (R, error) {
	var zero R
	info, err := env.userInfo()
	if err != nil {
		return zero, err
	}
	v, err := attr.Get(info)
	if err != nil {
		return zero, err
	}
	return convert(v), nil
}

func isAiring(env *Env) (bool, error) {
	now, err := env.now()
	if err != nil {
		return false, err
	}
	first, err := filterable.AirDate.Get(env.Filterable)
	if err != nil || first == nil || first.After(now) {
		return false, err
	}
	last, err := filterable.LastAirDate.Get(env.Filterable)
	if err != nil {
		return false, err
	}
	return last == nil || !last.Before(now), nil
}

// regexCacheSize bounds how many compiled patterns are kept across evaluations.
const regexCacheSize = 256

var regexCache = lo.Must(lru.New[string, *regexp.Regexp](regexCacheSize))

func compileRegex(pattern string) (*regexp.Regexp, error) {
	if re, ok := regexCache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid pattern %q", pattern)
	}
	regexCache.Add(pattern, re)
	return re, nil
}

func identity[T any](v T) T { return v }
