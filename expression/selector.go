package expression

import "time"

type SeriesCount struct{ numberNode }

func (SeriesCount) Kind() Kind { return "SeriesCount" }

type EpisodeCount struct{ numberNode }

func (EpisodeCount) Kind() Kind { return "EpisodeCount" }

type TotalEpisodeCount struct{ numberNode }

func (TotalEpisodeCount) Kind() Kind { return "TotalEpisodeCount" }

type MissingEpisodeCount struct{ numberNode }

func (MissingEpisodeCount) Kind() Kind { return "MissingEpisodeCount" }

type MissingEpisodeCollectingCount struct{ numberNode }

func (MissingEpisodeCollectingCount) Kind() Kind { return "MissingEpisodeCollectingCount" }

type LowestAniDBRating struct{ numberNode }

func (LowestAniDBRating) Kind() Kind { return "LowestAniDBRating" }

type HighestAniDBRating struct{ numberNode }

func (HighestAniDBRating) Kind() Kind { return "HighestAniDBRating" }

type AverageAniDBRating struct{ numberNode }

func (AverageAniDBRating) Kind() Kind { return "AverageAniDBRating" }

type AudioLanguageCount struct{ numberNode }

func (AudioLanguageCount) Kind() Kind { return "AudioLanguageCount" }

type SubtitleLanguageCount struct{ numberNode }

func (SubtitleLanguageCount) Kind() Kind { return "SubtitleLanguageCount" }

type VideoSourceCount struct{ numberNode }

func (VideoSourceCount) Kind() Kind { return "VideoSourceCount" }

type TagCount struct{ numberNode }

func (TagCount) Kind() Kind { return "TagCount" }

type WatchedEpisodeCount struct{ numberNode }

func (WatchedEpisodeCount) Kind() Kind { return "WatchedEpisodeCount" }

type UnwatchedEpisodeCount struct{ numberNode }

func (UnwatchedEpisodeCount) Kind() Kind { return "UnwatchedEpisodeCount" }

type LowestUserRating struct{ numberNode }

func (LowestUserRating) Kind() Kind { return "LowestUserRating" }

type HighestUserRating struct{ numberNode }

func (HighestUserRating) Kind() Kind { return "HighestUserRating" }

// NumberValue is a numeric constant.
type NumberValue struct {
	numberNode
	Value float64
}

func (NumberValue) Kind() Kind { return "NumberValue" }

type AirDate struct{ dateNode }

func (AirDate) Kind() Kind { return "AirDate" }

type LastAirDate struct{ dateNode }

func (LastAirDate) Kind() Kind { return "LastAirDate" }

type AddedDate struct{ dateNode }

func (AddedDate) Kind() Kind { return "AddedDate" }

type LastAddedDate struct{ dateNode }

func (LastAddedDate) Kind() Kind { return "LastAddedDate" }

type WatchedDate struct{ dateNode }

func (WatchedDate) Kind() Kind { return "WatchedDate" }

type LastWatchedDate struct{ dateNode }

func (LastWatchedDate) Kind() Kind { return "LastWatchedDate" }

// DateValue is a date constant.
type DateValue struct {
	dateNode
	Value time.Time
}

func (DateValue) Kind() Kind { return "DateValue" }

type Name struct{ stringNode }

func (Name) Kind() Kind { return "Name" }

type SortingName struct{ stringNode }

func (SortingName) Kind() Kind { return "SortingName" }

// StringValue is a string constant.
type StringValue struct {
	stringNode
	Value string
}

func (StringValue) Kind() Kind { return "StringValue" }
