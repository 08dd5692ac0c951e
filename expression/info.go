package expression

import "github.com/theplant/animefilter/filterable"

type HasTag struct {
	boolNode
	Tag string
}

func (HasTag) Kind() Kind { return "HasTag" }

type HasCustomTag struct {
	boolNode
	Tag string
}

func (HasCustomTag) Kind() Kind { return "HasCustomTag" }

type HasAudioLanguage struct {
	boolNode
	Language string
}

func (HasAudioLanguage) Kind() Kind { return "HasAudioLanguage" }

type HasSharedAudioLanguage struct {
	boolNode
	Language string
}

func (HasSharedAudioLanguage) Kind() Kind { return "HasSharedAudioLanguage" }

type HasSubtitleLanguage struct {
	boolNode
	Language string
}

func (HasSubtitleLanguage) Kind() Kind { return "HasSubtitleLanguage" }

type HasSharedSubtitleLanguage struct {
	boolNode
	Language string
}

func (HasSharedSubtitleLanguage) Kind() Kind { return "HasSharedSubtitleLanguage" }

type HasVideoSource struct {
	boolNode
	Source string
}

func (HasVideoSource) Kind() Kind { return "HasVideoSource" }

type HasSharedVideoSource struct {
	boolNode
	Source string
}

func (HasSharedVideoSource) Kind() Kind { return "HasSharedVideoSource" }

type HasAnimeType struct {
	boolNode
	AnimeType string
}

func (HasAnimeType) Kind() Kind { return "HasAnimeType" }

type HasReleaseGroup struct {
	boolNode
	ReleaseGroup string
}

func (HasReleaseGroup) Kind() Kind { return "HasReleaseGroup" }

type InYear struct {
	boolNode
	Year int
}

func (InYear) Kind() Kind { return "InYear" }

type InSeason struct {
	boolNode
	Year   int
	Season filterable.Season
}

func (InSeason) Kind() Kind { return "InSeason" }

type HasMissingEpisodes struct{ boolNode }

func (HasMissingEpisodes) Kind() Kind { return "HasMissingEpisodes" }

type HasMissingEpisodesCollecting struct{ boolNode }

func (HasMissingEpisodesCollecting) Kind() Kind { return "HasMissingEpisodesCollecting" }

type IsFinished struct{ boolNode }

func (IsFinished) Kind() Kind { return "IsFinished" }

// IsAiring is true between the first and last air date, inclusive, at evaluation time.
type IsAiring struct{ boolNode }

func (IsAiring) Kind() Kind { return "IsAiring" }

type HasTvDBLink struct{ boolNode }

func (HasTvDBLink) Kind() Kind { return "HasTvDBLink" }

type HasMissingTvDBLink struct{ boolNode }

func (HasMissingTvDBLink) Kind() Kind { return "HasMissingTvDBLink" }

type HasTMDbLink struct{ boolNode }

func (HasTMDbLink) Kind() Kind { return "HasTMDbLink" }

type HasMissingTMDbLink struct{ boolNode }

func (HasMissingTMDbLink) Kind() Kind { return "HasMissingTMDbLink" }

type HasTraktLink struct{ boolNode }

func (HasTraktLink) Kind() Kind { return "HasTraktLink" }

type HasMissingTraktLink struct{ boolNode }

func (HasMissingTraktLink) Kind() Kind { return "HasMissingTraktLink" }

type HasUnwatchedEpisodes struct{ boolNode }

func (HasUnwatchedEpisodes) Kind() Kind { return "HasUnwatchedEpisodes" }

type HasWatchedEpisodes struct{ boolNode }

func (HasWatchedEpisodes) Kind() Kind { return "HasWatchedEpisodes" }

type IsFavorite struct{ boolNode }

func (IsFavorite) Kind() Kind { return "IsFavorite" }

type HasVotes struct{ boolNode }

func (HasVotes) Kind() Kind { return "HasVotes" }

type HasPermanentVotes struct{ boolNode }

func (HasPermanentVotes) Kind() Kind { return "HasPermanentVotes" }

type MissingPermanentVotes struct{ boolNode }

func (MissingPermanentVotes) Kind() Kind { return "MissingPermanentVotes" }
