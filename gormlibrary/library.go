// Package gormlibrary stores an anime library in a relational database
// through gorm and exposes it as an animefilter.Source.
package gormlibrary

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/theplant/animefilter"
	"github.com/theplant/animefilter/filterable"
)

// maxGroupDepth bounds parent walks so a corrupt cycle cannot spin forever.
const maxGroupDepth = 64

// Library reads facts from the database lazily. A bag only queries the rows it
// needs the first time one of its facts is read.
type Library struct {
	db  *gorm.DB
	now func() time.Time
}

var (
	_ animefilter.Source      = (*Library)(nil)
	_ animefilter.Snapshotter = (*Library)(nil)
)

type Option func(*Library)

// WithClock sets the clock used for date derived facts such as IsFinished.
func WithClock(now func() time.Time) Option {
	return func(l *Library) {
		l.now = now
	}
}

// nowFor prefers the time pinned on ctx by animefilter.WithNow.
func (l *Library) nowFor(ctx context.Context) time.Time {
	if now, ok := animefilter.GetNow(ctx); ok {
		return now
	}
	return l.now()
}

func New(db *gorm.DB, opts ...Option) *Library {
	l := &Library{db: db, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// groupTree is the group hierarchy, read with a single query.
type groupTree struct {
	groups   map[uint]AnimeGroup
	roots    map[uint]uint
	children map[uint][]uint
	topLevel []uint
}

func (l *Library) loadGroupTree(ctx context.Context) (*groupTree, error) {
	var groups []AnimeGroup
	if err := l.db.WithContext(ctx).Order("id").Find(&groups).Error; err != nil {
		return nil, errors.Wrap(err, "load groups")
	}

	tree := &groupTree{
		groups:   lo.KeyBy(groups, func(g AnimeGroup) uint { return g.ID }),
		roots:    make(map[uint]uint, len(groups)),
		children: map[uint][]uint{},
	}
	for _, g := range groups {
		if g.ParentID == nil {
			tree.topLevel = append(tree.topLevel, g.ID)
			continue
		}
		tree.children[*g.ParentID] = append(tree.children[*g.ParentID], g.ID)
	}
	for _, g := range groups {
		id := g.ID
		for depth := 0; ; depth++ {
			if depth > maxGroupDepth {
				return nil, errors.Errorf("group %d: parent chain is too deep or cyclic", g.ID)
			}
			parent, ok := tree.groups[id]
			if !ok || parent.ParentID == nil {
				break
			}
			id = *parent.ParentID
		}
		tree.roots[g.ID] = id
	}
	return tree, nil
}

// members returns groupID and all groups nested below it.
func (t *groupTree) members(groupID uint) ([]uint, error) {
	if _, ok := t.groups[groupID]; !ok {
		return nil, errors.Wrapf(gorm.ErrRecordNotFound, "group %d", groupID)
	}
	members := []uint{groupID}
	seen := map[uint]bool{groupID: true}
	for i := 0; i < len(members); i++ {
		for _, child := range t.children[members[i]] {
			if !seen[child] {
				seen[child] = true
				members = append(members, child)
			}
		}
	}
	slices.Sort(members)
	return members, nil
}

type ctxKeySnapshot struct{}

type snapshot struct {
	tree func() (*groupTree, error)
}

// Snapshot returns a context whose calls share one read of the group
// hierarchy. Calls made without it read the hierarchy every time.
func (l *Library) Snapshot(ctx context.Context) context.Context {
	s := &snapshot{
		tree: sync.OnceValues(func() (*groupTree, error) {
			return l.loadGroupTree(ctx)
		}),
	}
	return context.WithValue(ctx, ctxKeySnapshot{}, s)
}

func (l *Library) groupTree(ctx context.Context) (*groupTree, error) {
	if s, ok := ctx.Value(ctxKeySnapshot{}).(*snapshot); ok {
		return s.tree()
	}
	return l.loadGroupTree(ctx)
}

func (l *Library) Series(ctx context.Context) ([]animefilter.SeriesRef, error) {
	tree, err := l.groupTree(ctx)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ID      uint
		GroupID uint
	}
	if err := l.db.WithContext(ctx).Model(&AnimeSeries{}).Select("id", "group_id").Order("id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "load series")
	}

	refs := make([]animefilter.SeriesRef, 0, len(rows))
	for _, row := range rows {
		root, ok := tree.roots[row.GroupID]
		if !ok {
			return nil, errors.Errorf("series %d: group %d does not exist", row.ID, row.GroupID)
		}
		refs = append(refs, animefilter.SeriesRef{SeriesID: int(row.ID), GroupID: int(root)})
	}
	return refs, nil
}

// Groups lists the top level groups.
func (l *Library) Groups(ctx context.Context) ([]int, error) {
	tree, err := l.groupTree(ctx)
	if err != nil {
		return nil, err
	}
	return animefilter.IDsAs[uint, int](tree.topLevel), nil
}

// SeriesByGroup lists the series of a group including its nested groups.
func (l *Library) SeriesByGroup(ctx context.Context, groupID int) ([]int, error) {
	tree, err := l.groupTree(ctx)
	if err != nil {
		return nil, err
	}
	members, err := tree.members(uint(groupID))
	if err != nil {
		return nil, err
	}
	var ids []uint
	if err := l.db.WithContext(ctx).Model(&AnimeSeries{}).Where("group_id IN ?", members).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, errors.Wrapf(err, "load series of group %d", groupID)
	}
	return animefilter.IDsAs[uint, int](ids), nil
}

func (l *Library) loadSeries(ctx context.Context, id uint) func() (*AnimeSeries, error) {
	return sync.OnceValues(func() (*AnimeSeries, error) {
		var s AnimeSeries
		if err := l.db.WithContext(ctx).Preload("Tags").Preload("Links").First(&s, id).Error; err != nil {
			return nil, errors.Wrapf(err, "load series %d", id)
		}
		return &s, nil
	})
}

type groupRows struct {
	group  AnimeGroup
	series []AnimeSeries
}

func (l *Library) loadGroup(ctx context.Context, id uint) func() (*groupRows, error) {
	return sync.OnceValues(func() (*groupRows, error) {
		tree, err := l.groupTree(ctx)
		if err != nil {
			return nil, err
		}
		members, err := tree.members(id)
		if err != nil {
			return nil, errors.Wrap(err, "load group")
		}
		rows := groupRows{group: tree.groups[id]}
		if err := l.db.WithContext(ctx).Preload("Tags").Preload("Links").
			Where("group_id IN ?", members).Order("id").Find(&rows.series).Error; err != nil {
			return nil, errors.Wrapf(err, "load series of group %d", id)
		}
		return &rows, nil
	})
}

func (l *Library) SeriesFilterable(ctx context.Context, seriesID int) (*filterable.Filterable, error) {
	f := filterable.New(seriesID)
	setSeriesFacts(f, l.loadSeries(ctx, uint(seriesID)), l.nowFor(ctx))
	return f, nil
}

func (l *Library) GroupFilterable(ctx context.Context, groupID int) (*filterable.Filterable, error) {
	f := filterable.New(groupID)
	setGroupFacts(f, l.loadGroup(ctx, uint(groupID)), l.nowFor(ctx))
	return f, nil
}

type userRows struct {
	states   []UserSeries
	votes    []Vote
	favorite bool
}

func (l *Library) loadUserRows(ctx context.Context, userID, groupID uint, seriesIDs []uint) (*userRows, error) {
	var rows userRows
	db := l.db.WithContext(ctx)
	if err := db.Where("user_id = ? AND series_id IN ?", userID, seriesIDs).Find(&rows.states).Error; err != nil {
		return nil, errors.Wrapf(err, "load watch state of user %d", userID)
	}
	if err := db.Where("user_id = ? AND series_id IN ?", userID, seriesIDs).Order("id").Find(&rows.votes).Error; err != nil {
		return nil, errors.Wrapf(err, "load votes of user %d", userID)
	}
	var groups []UserGroup
	if err := db.Where("user_id = ? AND group_id = ?", userID, groupID).Limit(1).Find(&groups).Error; err != nil {
		return nil, errors.Wrapf(err, "load favorites of user %d", userID)
	}
	rows.favorite = len(groups) > 0 && groups[0].Favorite
	return &rows, nil
}

// SeriesUserInfo builds the user facts of one series. Favorites are kept per
// top level group, so a series is a favorite when its group is.
func (l *Library) SeriesUserInfo(ctx context.Context, seriesID, userID int) (*filterable.UserInfo, error) {
	u := filterable.NewUserInfo(seriesID, userID)
	series := l.loadSeries(ctx, uint(seriesID))
	load := sync.OnceValues(func() (*seriesUser, error) {
		s, err := series()
		if err != nil {
			return nil, err
		}
		tree, err := l.groupTree(ctx)
		if err != nil {
			return nil, err
		}
		rows, err := l.loadUserRows(ctx, uint(userID), tree.roots[s.GroupID], []uint{s.ID})
		if err != nil {
			return nil, err
		}
		return &seriesUser{series: []AnimeSeries{*s}, rows: rows}, nil
	})
	setUserFacts(u, load, l.nowFor(ctx))
	return u, nil
}

func (l *Library) GroupUserInfo(ctx context.Context, groupID, userID int) (*filterable.UserInfo, error) {
	u := filterable.NewUserInfo(groupID, userID)
	group := l.loadGroup(ctx, uint(groupID))
	load := sync.OnceValues(func() (*seriesUser, error) {
		g, err := group()
		if err != nil {
			return nil, err
		}
		ids := lo.Map(g.series, func(s AnimeSeries, _ int) uint { return s.ID })
		rows, err := l.loadUserRows(ctx, uint(userID), g.group.ID, ids)
		if err != nil {
			return nil, err
		}
		return &seriesUser{series: g.series, rows: rows}, nil
	})
	setUserFacts(u, load, l.nowFor(ctx))
	return u, nil
}
