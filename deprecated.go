package animefilter

import (
	"context"

	"github.com/pkg/errors"

	"github.com/theplant/animefilter/expression"
)

// ErrDeprecatedExpression is returned by RejectDeprecated.
var ErrDeprecatedExpression = errors.New("preset uses deprecated expressions")

// RejectDeprecated fails presets that use deprecated nodes, such as TvDB
// link checks, instead of evaluating them.
func RejectDeprecated() Middleware {
	return func(next Evaluator) Evaluator {
		return EvaluatorFunc(func(ctx context.Context, req *EvaluateRequest) (*Result, error) {
			if req != nil && req.Preset != nil && expression.IsDeprecated(req.Preset.Expression) {
				return nil, errors.Wrapf(ErrDeprecatedExpression, "preset %d", req.Preset.ID)
			}
			return next.Evaluate(ctx, req)
		})
	}
}
