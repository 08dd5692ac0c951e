package animefilter

import (
	"context"

	"github.com/theplant/animefilter/filterable"
)

// SeriesRef identifies one series and its parent group.
type SeriesRef struct {
	SeriesID int
	GroupID  int
}

// Source is the read-only library snapshot the evaluator filters. It
// enumerates entities and builds their fact bags; how facts are computed is
// up to the implementation.
type Source interface {
	Series(ctx context.Context) ([]SeriesRef, error)
	Groups(ctx context.Context) ([]int, error)
	SeriesByGroup(ctx context.Context, groupID int) ([]int, error)

	// Every call must return a fresh bag; bags are never shared between evaluations.
	SeriesFilterable(ctx context.Context, seriesID int) (*filterable.Filterable, error)
	SeriesUserInfo(ctx context.Context, seriesID, userID int) (*filterable.UserInfo, error)
	GroupFilterable(ctx context.Context, groupID int) (*filterable.Filterable, error)
	GroupUserInfo(ctx context.Context, groupID, userID int) (*filterable.UserInfo, error)
}

// Snapshotter is implemented by sources that can share reads across the calls
// of one evaluation. The evaluator makes every call with the returned context.
type Snapshotter interface {
	Snapshot(ctx context.Context) context.Context
}
