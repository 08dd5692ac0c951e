package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateComplexity(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expression
		expected *ComplexityResult
	}{
		{
			name:     "nil",
			expr:     nil,
			expected: &ComplexityResult{},
		},
		{
			name:     "leaf",
			expr:     HasTag{Tag: "Mecha"},
			expected: &ComplexityResult{Depth: 1, Nodes: 1},
		},
		{
			name: "comparison",
			expr: NumberGreaterThan{Left: TagCount{}, Right: NumberValue{Value: 1}},
			expected: &ComplexityResult{
				Depth: 2,
				Nodes: 3,
			},
		},
		{
			name: "or chain counts branches once",
			expr: AnyOf(HasTag{Tag: "a"}, HasTag{Tag: "b"}, HasTag{Tag: "c"}, HasTag{Tag: "d"}),
			expected: &ComplexityResult{
				Depth:            4,
				Nodes:            7,
				LogicalOperators: 3,
				LogicalDepth:     3,
				OrBranches:       4,
			},
		},
		{
			name: "not over and",
			expr: Not{Expression: And{Left: IsFinished{}, Right: Or{Left: HasVotes{}, Right: IsFavorite{}}}},
			expected: &ComplexityResult{
				Depth:            4,
				Nodes:            6,
				LogicalOperators: 3,
				LogicalDepth:     3,
				OrBranches:       2,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateComplexity(tt.expr))
		})
	}
}

func TestCheckComplexity(t *testing.T) {
	expr := AnyOf(HasTag{Tag: "a"}, HasTag{Tag: "b"}, HasTag{Tag: "c"})

	require.NoError(t, CheckComplexity(expr, nil))
	require.NoError(t, CheckComplexity(expr, DefaultLimits))

	tests := []struct {
		name   string
		limits *ComplexityLimits
		errMsg string
	}{
		{"depth", &ComplexityLimits{MaxDepth: 2}, "depth 3 exceeds limit 2"},
		{"nodes", &ComplexityLimits{MaxNodes: 4}, "node count 5 exceeds limit 4"},
		{"logical operators", &ComplexityLimits{MaxLogicalOperators: 1}, "logical operator count 2 exceeds limit 1"},
		{"logical depth", &ComplexityLimits{MaxLogicalDepth: 1}, "logical nesting depth 2 exceeds limit 1"},
		{"or branches", &ComplexityLimits{MaxOrBranches: 2}, "Or branches 3 exceeds limit 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckComplexity(expr, tt.limits)
			require.ErrorIs(t, err, ErrComplexity)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
