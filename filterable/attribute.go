package filterable

import "time"

type attributeKey struct {
	id   int
	name string
}

var (
	entityAttributeNames []string
	userAttributeNames   []string
)

// Attribute identifies an entity scoped fact of type T.
type Attribute[T any] struct {
	key attributeKey
}

func newAttribute[T any](name string) Attribute[T] {
	entityAttributeNames = append(entityAttributeNames, name)
	return Attribute[T]{key: attributeKey{id: len(entityAttributeNames) - 1, name: name}}
}

// Name returns the attribute name.
func (a Attribute[T]) Name() string {
	return a.key.name
}

// Set registers the closure computing the attribute for f.
// The closure runs at most once, on the first Get.
func (a Attribute[T]) Set(f *Filterable, compute func() (T, error)) {
	f.facts.set(a.key, func() (any, error) {
		return compute()
	})
}

// SetValue registers an already known value.
func (a Attribute[T]) SetValue(f *Filterable, v T) {
	a.Set(f, Value(v))
}

// Get returns the memoized attribute value, computing it on first access.
// It panics with *MissingAttributeError when the adapter never supplied the attribute.
func (a Attribute[T]) Get(f *Filterable) (T, error) {
	v, err := f.facts.get(a.key, false)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// UserAttribute identifies a fact scoped to an entity and a user.
type UserAttribute[T any] struct {
	key attributeKey
}

func newUserAttribute[T any](name string) UserAttribute[T] {
	userAttributeNames = append(userAttributeNames, name)
	return UserAttribute[T]{key: attributeKey{id: len(userAttributeNames) - 1, name: name}}
}

func (a UserAttribute[T]) Name() string {
	return a.key.name
}

func (a UserAttribute[T]) Set(u *UserInfo, compute func() (T, error)) {
	u.facts.set(a.key, func() (any, error) {
		return compute()
	})
}

func (a UserAttribute[T]) SetValue(u *UserInfo, v T) {
	a.Set(u, Value(v))
}

func (a UserAttribute[T]) Get(u *UserInfo) (T, error) {
	v, err := u.facts.get(a.key, true)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Value wraps a constant as a fact closure.
func Value[T any](v T) func() (T, error) {
	return func() (T, error) {
		return v, nil
	}
}

// Entity facts.
var (
	Name        = newAttribute[string]("Name")
	SortingName = newAttribute[string]("SortingName")

	Names                   = newAttribute[[]string]("Names")
	Tags                    = newAttribute[[]string]("Tags")
	CustomTags              = newAttribute[[]string]("CustomTags")
	AudioLanguages          = newAttribute[[]string]("AudioLanguages")
	SharedAudioLanguages    = newAttribute[[]string]("SharedAudioLanguages")
	SubtitleLanguages       = newAttribute[[]string]("SubtitleLanguages")
	SharedSubtitleLanguages = newAttribute[[]string]("SharedSubtitleLanguages")
	VideoSources            = newAttribute[[]string]("VideoSources")
	SharedVideoSources      = newAttribute[[]string]("SharedVideoSources")
	AnimeTypes              = newAttribute[[]string]("AnimeTypes")
	ReleaseGroups           = newAttribute[[]string]("ReleaseGroups")
	Resolutions             = newAttribute[[]string]("Resolutions")
	Years                   = newAttribute[[]int]("Years")
	Seasons                 = newAttribute[[]YearSeason]("Seasons")

	SeriesCount               = newAttribute[int]("SeriesCount")
	EpisodeCount              = newAttribute[int]("EpisodeCount")
	TotalEpisodeCount         = newAttribute[int]("TotalEpisodeCount")
	MissingEpisodes           = newAttribute[int]("MissingEpisodes")
	MissingEpisodesCollecting = newAttribute[int]("MissingEpisodesCollecting")

	LowestAniDBRating  = newAttribute[float64]("LowestAniDBRating")
	HighestAniDBRating = newAttribute[float64]("HighestAniDBRating")
	AverageAniDBRating = newAttribute[float64]("AverageAniDBRating")

	HasTvDBLink         = newAttribute[bool]("HasTvDBLink")
	HasMissingTvDBLink  = newAttribute[bool]("HasMissingTvDBLink")
	HasTMDbLink         = newAttribute[bool]("HasTMDbLink")
	HasMissingTMDbLink  = newAttribute[bool]("HasMissingTMDbLink")
	HasTraktLink        = newAttribute[bool]("HasTraktLink")
	HasMissingTraktLink = newAttribute[bool]("HasMissingTraktLink")
	IsFinished          = newAttribute[bool]("IsFinished")

	AirDate       = newAttribute[*time.Time]("AirDate")
	LastAirDate   = newAttribute[*time.Time]("LastAirDate")
	AddedDate     = newAttribute[*time.Time]("AddedDate")
	LastAddedDate = newAttribute[*time.Time]("LastAddedDate")
)

// User facts.
var (
	IsFavorite            = newUserAttribute[bool]("IsFavorite")
	HasVotes              = newUserAttribute[bool]("HasVotes")
	HasPermanentVotes     = newUserAttribute[bool]("HasPermanentVotes")
	MissingPermanentVotes = newUserAttribute[bool]("MissingPermanentVotes")
	WatchedEpisodes       = newUserAttribute[int]("WatchedEpisodes")
	UnwatchedEpisodes     = newUserAttribute[int]("UnwatchedEpisodes")
	LowestUserRating      = newUserAttribute[float64]("LowestUserRating")
	HighestUserRating     = newUserAttribute[float64]("HighestUserRating")
	WatchedDate           = newUserAttribute[*time.Time]("WatchedDate")
	LastWatchedDate       = newUserAttribute[*time.Time]("LastWatchedDate")
)

// AttributeNames lists every entity fact name in declaration order.
func AttributeNames() []string {
	return append([]string(nil), entityAttributeNames...)
}

// UserAttributeNames lists every user fact name in declaration order.
func UserAttributeNames() []string {
	return append([]string(nil), userAttributeNames...)
}
