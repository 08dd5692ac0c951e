package animefilter

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/theplant/animefilter/expression"
	"github.com/theplant/animefilter/sorting"
)

// LogEvaluations logs one line per evaluation with its outcome and duration.
func LogEvaluations(logger *slog.Logger) Middleware {
	if logger == nil {
		panic("logger must be set")
	}
	return func(next Evaluator) Evaluator {
		return EvaluatorFunc(func(ctx context.Context, req *EvaluateRequest) (*Result, error) {
			start := time.Now()
			result, err := next.Evaluate(ctx, req)

			attrs := []any{"duration", time.Since(start)}
			if req != nil && req.Preset != nil {
				attrs = append(attrs,
					"preset", req.Preset.ID,
					"name", req.Preset.Name,
					"seriesLevel", req.Preset.ApplyAtSeriesLevel,
				)
			}
			if req != nil && req.UserID != nil {
				attrs = append(attrs, "user", *req.UserID)
			}
			if err != nil {
				logger.ErrorContext(ctx, "evaluate preset", append(attrs, "error", err)...)
				return nil, err
			}
			logger.InfoContext(ctx, "evaluate preset", append(attrs,
				"groups", len(result.Groups),
				"series", result.SeriesCount(),
			)...)
			return result, nil
		})
	}
}

// EnsureSorting applies criteria to presets that carry no sort chain.
// The caller's preset is not modified.
func EnsureSorting(criteria sorting.Criteria) Middleware {
	if len(criteria) == 0 {
		panic("criteria cannot be empty")
	}
	return func(next Evaluator) Evaluator {
		return EvaluatorFunc(func(ctx context.Context, req *EvaluateRequest) (*Result, error) {
			if req != nil && req.Preset != nil && len(req.Preset.Sorting) == 0 {
				preset := *req.Preset
				preset.Sorting = criteria
				req = &EvaluateRequest{Preset: &preset, UserID: req.UserID}
			}
			return next.Evaluate(ctx, req)
		})
	}
}

// EnsureComplexity rejects presets whose expression exceeds limits before
// any entity is loaded.
func EnsureComplexity(limits *expression.ComplexityLimits) Middleware {
	return func(next Evaluator) Evaluator {
		return EvaluatorFunc(func(ctx context.Context, req *EvaluateRequest) (*Result, error) {
			if req != nil && req.Preset != nil {
				if err := expression.CheckComplexity(req.Preset.Expression, limits); err != nil {
					return nil, errors.Wrapf(err, "preset %d", req.Preset.ID)
				}
			}
			return next.Evaluate(ctx, req)
		})
	}
}
