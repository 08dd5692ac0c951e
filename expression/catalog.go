package expression

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/theplant/animefilter/filterable"
)

// ParameterType describes the shape of a node parameter.
type ParameterType string

const (
	ParameterExpression ParameterType = "Expression"
	ParameterString     ParameterType = "String"
	ParameterNumber     ParameterType = "Number"
	ParameterInteger    ParameterType = "Integer"
	ParameterDate       ParameterType = "Date"
	ParameterTimeSpan   ParameterType = "TimeSpan"
	ParameterSeason     ParameterType = "Season"
)

// Parameter is one constructor parameter of a node.
type Parameter struct {
	Name string        `json:"name"`
	Type ParameterType `json:"type"`
	// Result is the required evaluation type of an Expression parameter.
	Result ResultType `json:"result,omitempty"`
}

// Info is the static, self describing metadata of a node kind.
type Info struct {
	Kind          Kind        `json:"kind"`
	Name          string      `json:"name"`
	Group         Group       `json:"group"`
	Result        ResultType  `json:"result"`
	TimeDependent bool        `json:"timeDependent"`
	UserDependent bool        `json:"userDependent"`
	Deprecated    bool        `json:"deprecated"`
	Description   string      `json:"description"`
	Parameters    []Parameter `json:"parameters"`
}

type entry struct {
	proto Expression
	info  Info
}

var entries = []entry{
	{And{}, Info{Name: "And", Group: GroupLogic, Description: "Passes when both expressions pass."}},
	{Or{}, Info{Name: "Or", Group: GroupLogic, Description: "Passes when either expression passes."}},
	{Xor{}, Info{Name: "Xor", Group: GroupLogic, Description: "Passes when exactly one expression passes."}},
	{Not{}, Info{Name: "Not", Group: GroupLogic, Description: "Inverts the expression."}},

	{NumberEquals{}, Info{Name: "Number equals", Group: GroupLogic, Description: "Passes when both numbers are equal."}},
	{NumberNotEquals{}, Info{Name: "Number not equals", Group: GroupLogic, Description: "Passes when the numbers differ."}},
	{NumberGreaterThan{}, Info{Name: "Number greater than", Group: GroupLogic, Description: "Passes when the left number is greater than the right number."}},
	{NumberGreaterThanEquals{}, Info{Name: "Number greater than or equals", Group: GroupLogic, Description: "Passes when the left number is greater than or equal to the right number."}},
	{NumberLessThan{}, Info{Name: "Number less than", Group: GroupLogic, Description: "Passes when the left number is less than the right number."}},
	{NumberLessThanEquals{}, Info{Name: "Number less than or equals", Group: GroupLogic, Description: "Passes when the left number is less than or equal to the right number."}},
	{DateEquals{}, Info{Name: "Date equals", Group: GroupLogic, Description: "Passes when both dates fall on the same day. Empty dates never pass."}},
	{DateNotEquals{}, Info{Name: "Date not equals", Group: GroupLogic, Description: "Passes when the dates fall on different days. Empty dates never pass."}},
	{DateGreaterThan{}, Info{Name: "Date after", Group: GroupLogic, Description: "Passes when the left date is after the right date."}},
	{DateGreaterThanEquals{}, Info{Name: "Date after or at", Group: GroupLogic, Description: "Passes when the left date is not before the right date."}},
	{DateLessThan{}, Info{Name: "Date before", Group: GroupLogic, Description: "Passes when the left date is before the right date."}},
	{DateLessThanEquals{}, Info{Name: "Date before or at", Group: GroupLogic, Description: "Passes when the left date is not after the right date."}},
	{StringEquals{}, Info{Name: "Text equals", Group: GroupLogic, Description: "Passes when both texts are equal, ignoring case."}},
	{StringNotEquals{}, Info{Name: "Text not equals", Group: GroupLogic, Description: "Passes when the texts differ, ignoring case."}},
	{StringContains{}, Info{Name: "Text contains", Group: GroupLogic, Description: "Passes when the left text contains the right text, ignoring case."}},
	{StringStartsWith{}, Info{Name: "Text starts with", Group: GroupLogic, Description: "Passes when the left text starts with the right text, ignoring case."}},
	{StringEndsWith{}, Info{Name: "Text ends with", Group: GroupLogic, Description: "Passes when the left text ends with the right text, ignoring case."}},
	{StringRegex{}, Info{Name: "Text matches", Group: GroupLogic, Description: "Passes when the left text matches the regular expression on the right, ignoring case."}},

	{HasTag{}, Info{Name: "Has tag", Group: GroupInfo, Description: "Passes when the entity has the tag."}},
	{HasCustomTag{}, Info{Name: "Has custom tag", Group: GroupInfo, Description: "Passes when the entity has the custom tag."}},
	{HasAudioLanguage{}, Info{Name: "Has audio language", Group: GroupInfo, Description: "Passes when any file has the audio language."}},
	{HasSharedAudioLanguage{}, Info{Name: "Has audio language in all files", Group: GroupInfo, Description: "Passes when every file has the audio language."}},
	{HasSubtitleLanguage{}, Info{Name: "Has subtitle language", Group: GroupInfo, Description: "Passes when any file has the subtitle language."}},
	{HasSharedSubtitleLanguage{}, Info{Name: "Has subtitle language in all files", Group: GroupInfo, Description: "Passes when every file has the subtitle language."}},
	{HasVideoSource{}, Info{Name: "Has video source", Group: GroupInfo, Description: "Passes when any file comes from the source, e.g. BluRay or Web."}},
	{HasSharedVideoSource{}, Info{Name: "Has video source in all files", Group: GroupInfo, Description: "Passes when every file comes from the source."}},
	{HasAnimeType{}, Info{Name: "Has anime type", Group: GroupInfo, Description: "Passes when the entity has the anime type, e.g. TVSeries or Movie."}},
	{HasReleaseGroup{}, Info{Name: "Has release group", Group: GroupInfo, Description: "Passes when any file was released by the group."}},
	{InYear{}, Info{Name: "In year", Group: GroupInfo, Description: "Passes when the entity aired in the year."}},
	{InSeason{}, Info{Name: "In season", Group: GroupInfo, Description: "Passes when the entity aired in the season of the year."}},
	{HasMissingEpisodes{}, Info{Name: "Has missing episodes", Group: GroupInfo, Description: "Passes when episodes are missing from the collection."}},
	{HasMissingEpisodesCollecting{}, Info{Name: "Has missing episodes from collecting groups", Group: GroupInfo, Description: "Passes when episodes released by groups already collected are missing."}},
	{IsFinished{}, Info{Name: "Is finished", Group: GroupInfo, Description: "Passes when the entity finished airing."}},
	{IsAiring{}, Info{Name: "Is airing", Group: GroupInfo, TimeDependent: true, Description: "Passes when the entity is airing now."}},
	{HasTvDBLink{}, Info{Name: "Has TvDB link", Group: GroupInfo, Deprecated: true, Description: "Passes when the entity is linked to TvDB."}},
	{HasMissingTvDBLink{}, Info{Name: "Has missing TvDB link", Group: GroupInfo, Deprecated: true, Description: "Passes when the entity should be linked to TvDB but is not."}},
	{HasTMDbLink{}, Info{Name: "Has TMDB link", Group: GroupInfo, Description: "Passes when the entity is linked to TMDB."}},
	{HasMissingTMDbLink{}, Info{Name: "Has missing TMDB link", Group: GroupInfo, Description: "Passes when the entity should be linked to TMDB but is not."}},
	{HasTraktLink{}, Info{Name: "Has Trakt link", Group: GroupInfo, Description: "Passes when the entity is linked to Trakt."}},
	{HasMissingTraktLink{}, Info{Name: "Has missing Trakt link", Group: GroupInfo, Description: "Passes when the entity should be linked to Trakt but is not."}},
	{HasUnwatchedEpisodes{}, Info{Name: "Has unwatched episodes", Group: GroupInfo, UserDependent: true, Description: "Passes when the user has unwatched episodes."}},
	{HasWatchedEpisodes{}, Info{Name: "Has watched episodes", Group: GroupInfo, UserDependent: true, Description: "Passes when the user watched any episode."}},
	{IsFavorite{}, Info{Name: "Is favorite", Group: GroupInfo, UserDependent: true, Description: "Passes when the user marked the entity as favorite."}},
	{HasVotes{}, Info{Name: "Has votes", Group: GroupInfo, UserDependent: true, Description: "Passes when the user voted."}},
	{HasPermanentVotes{}, Info{Name: "Has permanent votes", Group: GroupInfo, UserDependent: true, Description: "Passes when the user gave a permanent vote."}},
	{MissingPermanentVotes{}, Info{Name: "Missing permanent votes", Group: GroupInfo, UserDependent: true, Description: "Passes when a finished series has no permanent vote from the user."}},

	{SeriesCount{}, Info{Name: "Series count", Group: GroupSelector, Description: "Number of series."}},
	{EpisodeCount{}, Info{Name: "Episode count", Group: GroupSelector, Description: "Number of episodes in the collection."}},
	{TotalEpisodeCount{}, Info{Name: "Total episode count", Group: GroupSelector, Description: "Number of episodes, collected or not."}},
	{MissingEpisodeCount{}, Info{Name: "Missing episode count", Group: GroupSelector, Description: "Number of missing episodes."}},
	{MissingEpisodeCollectingCount{}, Info{Name: "Missing episode count from collecting groups", Group: GroupSelector, Description: "Number of missing episodes released by groups already collected."}},
	{LowestAniDBRating{}, Info{Name: "Lowest AniDB rating", Group: GroupSelector, Description: "Lowest AniDB rating among the series."}},
	{HighestAniDBRating{}, Info{Name: "Highest AniDB rating", Group: GroupSelector, Description: "Highest AniDB rating among the series."}},
	{AverageAniDBRating{}, Info{Name: "Average AniDB rating", Group: GroupSelector, Description: "Average AniDB rating of the series."}},
	{AudioLanguageCount{}, Info{Name: "Audio language count", Group: GroupSelector, Description: "Number of distinct audio languages."}},
	{SubtitleLanguageCount{}, Info{Name: "Subtitle language count", Group: GroupSelector, Description: "Number of distinct subtitle languages."}},
	{VideoSourceCount{}, Info{Name: "Video source count", Group: GroupSelector, Description: "Number of distinct video sources."}},
	{TagCount{}, Info{Name: "Tag count", Group: GroupSelector, Description: "Number of tags."}},
	{WatchedEpisodeCount{}, Info{Name: "Watched episode count", Group: GroupSelector, UserDependent: true, Description: "Number of episodes the user watched."}},
	{UnwatchedEpisodeCount{}, Info{Name: "Unwatched episode count", Group: GroupSelector, UserDependent: true, Description: "Number of episodes the user has not watched."}},
	{LowestUserRating{}, Info{Name: "Lowest user rating", Group: GroupSelector, UserDependent: true, Description: "Lowest vote of the user."}},
	{HighestUserRating{}, Info{Name: "Highest user rating", Group: GroupSelector, UserDependent: true, Description: "Highest vote of the user."}},
	{NumberValue{}, Info{Name: "Number", Group: GroupSelector, Description: "A constant number."}},
	{AirDate{}, Info{Name: "Air date", Group: GroupSelector, Description: "First air date."}},
	{LastAirDate{}, Info{Name: "Last air date", Group: GroupSelector, Description: "Last air date."}},
	{AddedDate{}, Info{Name: "Added date", Group: GroupSelector, Description: "Date the entity was added to the collection."}},
	{LastAddedDate{}, Info{Name: "Last added date", Group: GroupSelector, Description: "Date an episode was last added to the collection."}},
	{WatchedDate{}, Info{Name: "Watched date", Group: GroupSelector, UserDependent: true, Description: "Date the user first watched an episode."}},
	{LastWatchedDate{}, Info{Name: "Last watched date", Group: GroupSelector, UserDependent: true, Description: "Date the user last watched an episode."}},
	{DateValue{}, Info{Name: "Date", Group: GroupSelector, Description: "A constant date."}},
	{Name{}, Info{Name: "Name", Group: GroupSelector, Description: "Preferred title."}},
	{SortingName{}, Info{Name: "Sorting name", Group: GroupSelector, Description: "Title normalized for alphabetic ordering."}},
	{StringValue{}, Info{Name: "Text", Group: GroupSelector, Description: "A constant text."}},

	{Today{}, Info{Name: "Today", Group: GroupFunction, TimeDependent: true, Description: "Start of the current day."}},
	{DateAdd{}, Info{Name: "Date add", Group: GroupFunction, Description: "Adds a time span to a date."}},
	{DateSubtract{}, Info{Name: "Date subtract", Group: GroupFunction, Description: "Subtracts a time span from a date."}},
	{DateDiff{}, Info{Name: "Date difference", Group: GroupFunction, Description: "Number of days between two dates."}},
}

type nodeType struct {
	info *Info
	typ  reflect.Type
	// indexes of child expression fields and of plain parameter fields
	children []int
	params   []int
}

var (
	nodeTypesByKind = map[Kind]*nodeType{}
	nodeTypesByType = map[reflect.Type]*nodeType{}

	expressionType = reflect.TypeOf((*Expression)(nil)).Elem()
	resultTypes    = map[reflect.Type]ResultType{
		reflect.TypeOf((*Bool)(nil)).Elem():   ResultBool,
		reflect.TypeOf((*Number)(nil)).Elem(): ResultNumber,
		reflect.TypeOf((*Date)(nil)).Elem():   ResultDate,
		reflect.TypeOf((*String)(nil)).Elem(): ResultString,
	}
	parameterTypes = map[reflect.Type]ParameterType{
		reflect.TypeOf(""):                    ParameterString,
		reflect.TypeOf(float64(0)):            ParameterNumber,
		reflect.TypeOf(0):                     ParameterInteger,
		reflect.TypeOf(time.Time{}):           ParameterDate,
		reflect.TypeOf(time.Duration(0)):      ParameterTimeSpan,
		reflect.TypeOf(filterable.Season("")): ParameterSeason,
	}
)

func init() {
	for i := range entries {
		e := &entries[i]
		typ := reflect.TypeOf(e.proto)
		if typ.Kind() != reflect.Struct {
			panic(fmt.Sprintf("expression: %s must be a struct value", typ))
		}
		kind := e.proto.Kind()
		if _, ok := nodeTypesByKind[kind]; ok {
			panic(fmt.Sprintf("expression: duplicate kind %s", kind))
		}

		nt := &nodeType{info: &e.info, typ: typ}
		e.info.Kind = kind
		e.info.Result = ResultOf(e.proto)
		e.info.Parameters = []Parameter{}
		for idx := 0; idx < typ.NumField(); idx++ {
			field := typ.Field(idx)
			if field.Anonymous || !field.IsExported() {
				continue
			}
			if field.Type.Kind() == reflect.Interface && field.Type.Implements(expressionType) {
				nt.children = append(nt.children, idx)
				e.info.Parameters = append(e.info.Parameters, Parameter{
					Name:   field.Name,
					Type:   ParameterExpression,
					Result: resultTypes[field.Type],
				})
				continue
			}
			pt, ok := parameterTypes[field.Type]
			if !ok {
				panic(fmt.Sprintf("expression: unsupported parameter type %s on %s.%s", field.Type, kind, field.Name))
			}
			nt.params = append(nt.params, idx)
			e.info.Parameters = append(e.info.Parameters, Parameter{Name: field.Name, Type: pt})
		}
		nodeTypesByKind[kind] = nt
		nodeTypesByType[typ] = nt
	}
}

func lookup(e Expression) *nodeType {
	nt, ok := nodeTypesByType[reflect.TypeOf(e)]
	if !ok {
		// the set is closed, so this is a programming error
		panic(fmt.Sprintf("expression: unregistered node type %T", e))
	}
	return nt
}

// Describe returns the metadata of the node's kind.
func Describe(e Expression) Info {
	return *lookup(e).info
}

// Lookup returns the metadata of a kind.
func Lookup(kind Kind) (Info, bool) {
	nt, ok := nodeTypesByKind[kind]
	if !ok {
		return Info{}, false
	}
	return *nt.info, true
}

var groupOrder = map[Group]int{GroupLogic: 0, GroupInfo: 1, GroupSelector: 2, GroupFunction: 3}

// Catalog lists every node kind, ordered by group then name, for building
// filter editors without hardcoding kinds.
func Catalog() []Info {
	infos := lo.Map(entries, func(e entry, _ int) Info {
		return e.info
	})
	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].Group != infos[j].Group {
			return groupOrder[infos[i].Group] < groupOrder[infos[j].Group]
		}
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// ResultOf returns the evaluation type of a node.
func ResultOf(e Expression) ResultType {
	switch e.(type) {
	case Bool:
		return ResultBool
	case Number:
		return ResultNumber
	case Date:
		return ResultDate
	case String:
		return ResultString
	}
	return ""
}
