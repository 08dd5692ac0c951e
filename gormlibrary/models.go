package gormlibrary

import (
	"time"

	"gorm.io/datatypes"
)

// Link providers stored in ExternalLink.Provider and AnimeSeries.DisabledLinks.
const (
	ProviderTvDB  = "tvdb"
	ProviderTMDb  = "tmdb"
	ProviderTrakt = "trakt"
)

// AnimeGroup groups related series. Groups may nest; filters see top level groups.
type AnimeGroup struct {
	ID          uint   `gorm:"primaryKey"`
	ParentID    *uint  `gorm:"index"`
	Name        string `gorm:"type:text;not null"`
	SortingName string `gorm:"type:text;not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AnimeGroup) TableName() string { return "anime_groups" }

// AnimeSeries is one series with its collection statistics.
type AnimeSeries struct {
	ID          uint   `gorm:"primaryKey"`
	GroupID     uint   `gorm:"not null;index"`
	Name        string `gorm:"type:text;not null"`
	SortingName string `gorm:"type:text;not null;index"`
	Titles      datatypes.JSONSlice[string]
	AnimeType   string `gorm:"type:text"`

	AirDate *time.Time
	EndDate *time.Time

	EpisodeCount              int
	TotalEpisodeCount         int
	MissingEpisodes           int
	MissingEpisodesCollecting int
	Rating                    float64

	CustomTags              datatypes.JSONSlice[string]
	AudioLanguages          datatypes.JSONSlice[string]
	SharedAudioLanguages    datatypes.JSONSlice[string]
	SubtitleLanguages       datatypes.JSONSlice[string]
	SharedSubtitleLanguages datatypes.JSONSlice[string]
	VideoSources            datatypes.JSONSlice[string]
	SharedVideoSources      datatypes.JSONSlice[string]
	ReleaseGroups           datatypes.JSONSlice[string]
	Resolutions             datatypes.JSONSlice[string]
	// DisabledLinks lists providers the series is not expected to be linked to.
	DisabledLinks datatypes.JSONSlice[string]

	LastEpisodeAddedAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Tags  []Tag          `gorm:"many2many:series_tags;"`
	Links []ExternalLink `gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE"`
}

func (AnimeSeries) TableName() string { return "anime_series" }

type Tag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"type:text;not null;uniqueIndex"`
}

func (Tag) TableName() string { return "tags" }

type ExternalLink struct {
	ID         uint   `gorm:"primaryKey"`
	SeriesID   uint   `gorm:"not null;index"`
	Provider   string `gorm:"type:text;not null"`
	ExternalID string `gorm:"type:text;not null"`
}

func (ExternalLink) TableName() string { return "external_links" }

// UserSeries is the watch state of one user for one series.
type UserSeries struct {
	UserID          uint `gorm:"primaryKey"`
	SeriesID        uint `gorm:"primaryKey"`
	WatchedEpisodes int
	FirstWatchedAt  *time.Time
	LastWatchedAt   *time.Time
}

func (UserSeries) TableName() string { return "user_series" }

type UserGroup struct {
	UserID   uint `gorm:"primaryKey"`
	GroupID  uint `gorm:"primaryKey"`
	Favorite bool
}

func (UserGroup) TableName() string { return "user_groups" }

type Vote struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;index:idx_user_series_votes"`
	SeriesID  uint `gorm:"not null;index:idx_user_series_votes"`
	Value     float64
	Permanent bool
	CreatedAt time.Time
}

func (Vote) TableName() string { return "votes" }

// FilterPreset stores a preset with its expression and sort chain in the
// tagged-union JSON form.
type FilterPreset struct {
	ID                 uint   `gorm:"primaryKey"`
	ParentID           *uint  `gorm:"index"`
	Name               string `gorm:"type:text;not null"`
	Expression         datatypes.JSON
	Sorting            datatypes.JSON
	ApplyAtSeriesLevel bool
	Hidden             bool
	Locked             bool
	Directory          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FilterPreset) TableName() string { return "filter_presets" }

// Models lists every model in migration order.
func Models() []any {
	return []any{
		&AnimeGroup{},
		&Tag{},
		&AnimeSeries{},
		&ExternalLink{},
		&UserSeries{},
		&UserGroup{},
		&Vote{},
		&FilterPreset{},
	}
}
