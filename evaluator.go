// Package animefilter evaluates saved filter presets against an anime
// library snapshot and returns the matching groups and series in order.
package animefilter

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/theplant/animefilter/expression"
	"github.com/theplant/animefilter/internal/hook"
	"github.com/theplant/animefilter/sorting"
)

type EvaluateRequest struct {
	Preset *Preset
	// UserID is required when the preset reads user facts.
	UserID *int
}

type Evaluator interface {
	Evaluate(ctx context.Context, req *EvaluateRequest) (*Result, error)
}

type EvaluatorFunc func(ctx context.Context, req *EvaluateRequest) (*Result, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, req *EvaluateRequest) (*Result, error) {
	return f(ctx, req)
}

// Middleware is a wrapper for Evaluator (middleware pattern)
type Middleware func(next Evaluator) Evaluator

type evaluator struct {
	source      Source
	logger      *slog.Logger
	concurrency int
	clock       func() time.Time
	limits      *expression.ComplexityLimits
	middlewares []func(next Evaluator) Evaluator
}

type Option func(e *evaluator)

// WithLogger sets the logger used for debug output. Nothing is logged by default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *evaluator) {
		e.logger = logger
	}
}

// WithConcurrency bounds how many entities are evaluated in parallel.
// Values below 2 evaluate sequentially.
func WithConcurrency(n int) Option {
	return func(e *evaluator) {
		e.concurrency = n
	}
}

// WithClock sets the clock used when the context carries no pinned time.
func WithClock(clock func() time.Time) Option {
	return func(e *evaluator) {
		e.clock = clock
	}
}

// WithComplexityLimits rejects presets whose expression exceeds limits.
func WithComplexityLimits(limits *expression.ComplexityLimits) Option {
	return func(e *evaluator) {
		e.limits = limits
	}
}

// WithMiddleware wraps the evaluator. The first middleware is the outermost.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(e *evaluator) {
		for _, mw := range middlewares {
			e.middlewares = append(e.middlewares, mw)
		}
	}
}

func New(source Source, opts ...Option) Evaluator {
	if source == nil {
		panic("source must be set")
	}

	e := &evaluator{
		source: source,
		logger: slog.New(slog.DiscardHandler),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	var ev Evaluator = EvaluatorFunc(e.evaluate)
	chain := hook.Chain(e.middlewares...)
	if chain != nil {
		ev = chain(ev)
	}
	return ev
}

// record is one evaluated entity: a series, or a group with NoSeries.
type record struct {
	seriesID int
	groupID  int
	env      *expression.Env
}

func (e *evaluator) evaluate(ctx context.Context, req *EvaluateRequest) (*Result, error) {
	if req == nil || req.Preset == nil {
		return nil, errors.New("preset must be set")
	}
	preset := req.Preset

	if err := preset.Validate(); err != nil {
		return nil, errors.Wrapf(err, "preset %d", preset.ID)
	}
	if err := expression.CheckComplexity(preset.Expression, e.limits); err != nil {
		return nil, errors.Wrapf(err, "preset %d", preset.ID)
	}

	userDependent := preset.IsUserDependent()
	if userDependent && req.UserID == nil {
		return nil, errors.Wrapf(expression.ErrUserInfoRequired, "preset %d needs a user", preset.ID)
	}

	now, ok := GetNow(ctx)
	if !ok {
		now = e.clock()
		// sources read the same instant through GetNow
		ctx = WithNow(ctx, now)
	}
	if s, ok := e.source.(Snapshotter); ok {
		ctx = s.Snapshot(ctx)
	}

	records, err := e.enumerate(ctx, preset.ApplyAtSeriesLevel)
	if err != nil {
		return nil, err
	}

	var userID *int
	if userDependent {
		userID = req.UserID
	}
	matched := make([]bool, len(records))
	// Fact bags may load lazily while sorting, after the worker context is done,
	// so they are built on the request context.
	err = e.forEach(ctx, len(records), func(_ context.Context, i int) error {
		r := records[i]
		env, err := e.buildEnv(ctx, r, userID, now, preset.ApplyAtSeriesLevel)
		if err != nil {
			return err
		}
		r.env = env
		ok, err := expression.Evaluate(preset.Expression, env)
		if err != nil {
			return errors.Wrapf(err, "evaluate group %d series %d", r.groupID, r.seriesID)
		}
		matched[i] = ok
		return nil
	})
	if err != nil {
		return nil, err
	}

	kept := lo.Filter(records, func(_ *record, i int) bool { return matched[i] })
	e.logger.DebugContext(ctx, "filtered entities",
		"preset", preset.ID,
		"seriesLevel", preset.ApplyAtSeriesLevel,
		"total", len(records),
		"matched", len(kept),
	)

	kept, err = sorting.Order(preset.Sorting, kept, func(r *record) *expression.Env { return r.env })
	if err != nil {
		return nil, errors.Wrapf(err, "sort preset %d", preset.ID)
	}

	result := groupRecords(kept)
	if !preset.ApplyAtSeriesLevel {
		for i := range result.Groups {
			group := &result.Groups[i]
			seriesIDs, err := e.source.SeriesByGroup(ctx, group.GroupID)
			if err != nil {
				return nil, errors.Wrapf(err, "list series of group %d", group.GroupID)
			}
			group.SeriesIDs = seriesIDs
		}
	}
	return result, nil
}

func (e *evaluator) enumerate(ctx context.Context, seriesLevel bool) ([]*record, error) {
	if seriesLevel {
		refs, err := e.source.Series(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "list series")
		}
		return lo.Map(refs, func(ref SeriesRef, _ int) *record {
			return &record{seriesID: ref.SeriesID, groupID: ref.GroupID}
		}), nil
	}
	groupIDs, err := e.source.Groups(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list groups")
	}
	return lo.Map(groupIDs, func(id int, _ int) *record {
		return &record{seriesID: NoSeries, groupID: id}
	}), nil
}

func (e *evaluator) buildEnv(ctx context.Context, r *record, userID *int, now time.Time, seriesLevel bool) (*expression.Env, error) {
	env := &expression.Env{Now: now}
	var err error
	if seriesLevel {
		if env.Filterable, err = e.source.SeriesFilterable(ctx, r.seriesID); err != nil {
			return nil, errors.Wrapf(err, "load series %d", r.seriesID)
		}
		if userID != nil {
			if env.UserInfo, err = e.source.SeriesUserInfo(ctx, r.seriesID, *userID); err != nil {
				return nil, errors.Wrapf(err, "load series %d user %d", r.seriesID, *userID)
			}
		}
		return env, nil
	}
	if env.Filterable, err = e.source.GroupFilterable(ctx, r.groupID); err != nil {
		return nil, errors.Wrapf(err, "load group %d", r.groupID)
	}
	if userID != nil {
		if env.UserInfo, err = e.source.GroupUserInfo(ctx, r.groupID, *userID); err != nil {
			return nil, errors.Wrapf(err, "load group %d user %d", r.groupID, *userID)
		}
	}
	return env, nil
}

// forEach runs fn for every index, in parallel when concurrency allows.
// Each index owns its record, so fn never shares a fact bag.
func (e *evaluator) forEach(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if e.concurrency < 2 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return errors.Wrap(err, "evaluation canceled")
			}
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Wrap(err, "evaluation canceled")
			}
			return fn(gctx, i)
		})
	}
	return g.Wait()
}

// groupRecords groups by parent keeping the order of first appearance.
func groupRecords(records []*record) *Result {
	result := &Result{Groups: []GroupResult{}}
	index := map[int]int{}
	for _, r := range records {
		i, ok := index[r.groupID]
		if !ok {
			i = len(result.Groups)
			index[r.groupID] = i
			result.Groups = append(result.Groups, GroupResult{GroupID: r.groupID})
		}
		if r.seriesID != NoSeries {
			result.Groups[i].SeriesIDs = append(result.Groups[i].SeriesIDs, r.seriesID)
		}
	}
	return result
}
