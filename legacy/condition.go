// Package legacy converts pre-expression filter definitions, lists of
// (condition type, operator, parameter) triples, into expression trees.
package legacy

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ConditionType is the legacy condition enum. Values match the stored numbers.
type ConditionType int

const (
	ConditionCompletedSeries           ConditionType = 1
	ConditionMissingEpisodes           ConditionType = 2
	ConditionHasUnwatchedEpisodes      ConditionType = 3
	ConditionAllEpisodesWatched        ConditionType = 4
	ConditionUserVoted                 ConditionType = 5
	ConditionTag                       ConditionType = 6
	ConditionAirDate                   ConditionType = 7
	ConditionStudio                    ConditionType = 8
	ConditionAssignedTvDBInfo          ConditionType = 9
	ConditionReleaseGroup              ConditionType = 11
	ConditionAnimeType                 ConditionType = 12
	ConditionVideoQuality              ConditionType = 13
	ConditionFavourite                 ConditionType = 14
	ConditionAnimeGroup                ConditionType = 15
	ConditionAniDBRating               ConditionType = 16
	ConditionUserRating                ConditionType = 17
	ConditionSeriesCreatedDate         ConditionType = 18
	ConditionEpisodeAddedDate          ConditionType = 19
	ConditionEpisodeWatchedDate        ConditionType = 20
	ConditionFinishedAiring            ConditionType = 21
	ConditionMissingEpisodesCollecting ConditionType = 22
	ConditionAudioLanguage             ConditionType = 23
	ConditionSubtitleLanguage          ConditionType = 24
	ConditionAssignedTvDBOrMovieDBInfo ConditionType = 25
	ConditionAssignedMovieDBInfo       ConditionType = 26
	ConditionUserVotedAny              ConditionType = 27
	ConditionHasWatchedEpisodes        ConditionType = 28
	ConditionAssignedMALInfo           ConditionType = 29
	ConditionEpisodeCount              ConditionType = 30
	ConditionCustomTags                ConditionType = 31
	ConditionLatestEpisodeAirDate      ConditionType = 32
	ConditionYear                      ConditionType = 34
	ConditionSeason                    ConditionType = 35
	ConditionAssignedTraktInfo         ConditionType = 36
)

var conditionTypeNames = map[ConditionType]string{
	ConditionCompletedSeries:           "CompletedSeries",
	ConditionMissingEpisodes:           "MissingEpisodes",
	ConditionHasUnwatchedEpisodes:      "HasUnwatchedEpisodes",
	ConditionAllEpisodesWatched:        "AllEpisodesWatched",
	ConditionUserVoted:                 "UserVoted",
	ConditionTag:                       "Tag",
	ConditionAirDate:                   "AirDate",
	ConditionStudio:                    "Studio",
	ConditionAssignedTvDBInfo:          "AssignedTvDBInfo",
	ConditionReleaseGroup:              "ReleaseGroup",
	ConditionAnimeType:                 "AnimeType",
	ConditionVideoQuality:              "VideoQuality",
	ConditionFavourite:                 "Favourite",
	ConditionAnimeGroup:                "AnimeGroup",
	ConditionAniDBRating:               "AniDBRating",
	ConditionUserRating:                "UserRating",
	ConditionSeriesCreatedDate:         "SeriesCreatedDate",
	ConditionEpisodeAddedDate:          "EpisodeAddedDate",
	ConditionEpisodeWatchedDate:        "EpisodeWatchedDate",
	ConditionFinishedAiring:            "FinishedAiring",
	ConditionMissingEpisodesCollecting: "MissingEpisodesCollecting",
	ConditionAudioLanguage:             "AudioLanguage",
	ConditionSubtitleLanguage:          "SubtitleLanguage",
	ConditionAssignedTvDBOrMovieDBInfo: "AssignedTvDBOrMovieDBInfo",
	ConditionAssignedMovieDBInfo:       "AssignedMovieDBInfo",
	ConditionUserVotedAny:              "UserVotedAny",
	ConditionHasWatchedEpisodes:        "HasWatchedEpisodes",
	ConditionAssignedMALInfo:           "AssignedMALInfo",
	ConditionEpisodeCount:              "EpisodeCount",
	ConditionCustomTags:                "CustomTags",
	ConditionLatestEpisodeAirDate:      "LatestEpisodeAirDate",
	ConditionYear:                      "Year",
	ConditionSeason:                    "Season",
	ConditionAssignedTraktInfo:         "AssignedTraktInfo",
}

func (t ConditionType) String() string {
	if name, ok := conditionTypeNames[t]; ok {
		return name
	}
	return "ConditionType(" + strconv.Itoa(int(t)) + ")"
}

// ParseConditionType accepts a name, ignoring case, or a number.
func ParseConditionType(s string) (ConditionType, error) {
	v, err := parseEnum(s, conditionTypeNames)
	if err != nil {
		return 0, errors.Wrap(err, "condition type")
	}
	return v, nil
}

// Operator is the legacy condition operator enum.
type Operator int

const (
	OperatorInclude          Operator = 1
	OperatorExclude          Operator = 2
	OperatorGreaterThan      Operator = 3
	OperatorLessThan         Operator = 4
	OperatorEquals           Operator = 5
	OperatorNotEquals        Operator = 6
	OperatorIn               Operator = 7
	OperatorNotIn            Operator = 8
	OperatorLastXDays        Operator = 9
	OperatorInAllEpisodes    Operator = 10
	OperatorNotInAllEpisodes Operator = 11
)

var operatorNames = map[Operator]string{
	OperatorInclude:          "Include",
	OperatorExclude:          "Exclude",
	OperatorGreaterThan:      "GreaterThan",
	OperatorLessThan:         "LessThan",
	OperatorEquals:           "Equals",
	OperatorNotEquals:        "NotEquals",
	OperatorIn:               "In",
	OperatorNotIn:            "NotIn",
	OperatorLastXDays:        "LastXDays",
	OperatorInAllEpisodes:    "InAllEpisodes",
	OperatorNotInAllEpisodes: "NotInAllEpisodes",
}

func (o Operator) String() string {
	if name, ok := operatorNames[o]; ok {
		return name
	}
	return "Operator(" + strconv.Itoa(int(o)) + ")"
}

// ParseOperator accepts a name, ignoring case, or a number.
func ParseOperator(s string) (Operator, error) {
	v, err := parseEnum(s, operatorNames)
	if err != nil {
		return 0, errors.Wrap(err, "operator")
	}
	return v, nil
}

func parseEnum[T ~int](s string, names map[T]string) (T, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if _, ok := names[T(n)]; !ok {
			return 0, errors.Errorf("unknown value %d", n)
		}
		return T(n), nil
	}
	for v, name := range names {
		if strings.EqualFold(name, s) {
			return v, nil
		}
	}
	return 0, errors.Errorf("unknown value %q", s)
}

// Condition is one legacy filter condition.
type Condition struct {
	Type      ConditionType `mapstructure:"ConditionType" json:"ConditionType" yaml:"ConditionType"`
	Operator  Operator      `mapstructure:"ConditionOperator" json:"ConditionOperator" yaml:"ConditionOperator"`
	Parameter string        `mapstructure:"ConditionParameter" json:"ConditionParameter" yaml:"ConditionParameter"`
}

func (c Condition) String() string {
	return c.Type.String() + " " + c.Operator.String() + " " + strconv.Quote(c.Parameter)
}
