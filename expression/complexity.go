package expression

import (
	"github.com/pkg/errors"
)

// ComplexityLimits defines limits for expression complexity.
// A value of 0 means no limit for that metric.
type ComplexityLimits struct {
	MaxDepth            int // Maximum nesting depth of nodes
	MaxNodes            int // Maximum total number of nodes
	MaxLogicalOperators int // Maximum number of logical operators (And/Or/Xor/Not)
	MaxLogicalDepth     int // Maximum nesting depth of logical operators
	MaxOrBranches       int // Maximum branches in a single chain of Or operators
}

// ComplexityResult contains the calculated complexity metrics of an expression.
type ComplexityResult struct {
	Depth            int // Deepest nesting level reached
	Nodes            int // Total number of nodes
	LogicalOperators int // Total number of logical operators
	LogicalDepth     int // Deepest logical operator nesting
	OrBranches       int // Maximum branches found in any Or chain
}

// Predefined complexity limits
var (
	// DefaultLimits provides reasonable defaults for user authored presets.
	DefaultLimits = &ComplexityLimits{
		MaxDepth:            32,
		MaxNodes:            256,
		MaxLogicalOperators: 64,
		MaxLogicalDepth:     24,
		MaxOrBranches:       32,
	}

	// StrictLimits provides tighter limits for presets received from untrusted clients.
	StrictLimits = &ComplexityLimits{
		MaxDepth:            12,
		MaxNodes:            64,
		MaxLogicalOperators: 16,
		MaxLogicalDepth:     8,
		MaxOrBranches:       8,
	}

	// RelaxedLimits provides looser limits for converted legacy presets.
	RelaxedLimits = &ComplexityLimits{
		MaxDepth:            128,
		MaxNodes:            1024,
		MaxLogicalOperators: 256,
		MaxLogicalDepth:     96,
		MaxOrBranches:       128,
	}
)

// CheckComplexity validates that an expression doesn't exceed the specified limits.
// Returns an error wrapping ErrComplexity describing which limit was exceeded.
// If limits is nil, no validation is performed.
func CheckComplexity(e Expression, limits *ComplexityLimits) error {
	if limits == nil || e == nil {
		return nil
	}

	result := CalculateComplexity(e)

	if limits.MaxDepth > 0 && result.Depth > limits.MaxDepth {
		return errors.Wrapf(ErrComplexity, "depth %d exceeds limit %d", result.Depth, limits.MaxDepth)
	}
	if limits.MaxNodes > 0 && result.Nodes > limits.MaxNodes {
		return errors.Wrapf(ErrComplexity, "node count %d exceeds limit %d", result.Nodes, limits.MaxNodes)
	}
	if limits.MaxLogicalOperators > 0 && result.LogicalOperators > limits.MaxLogicalOperators {
		return errors.Wrapf(ErrComplexity, "logical operator count %d exceeds limit %d", result.LogicalOperators, limits.MaxLogicalOperators)
	}
	if limits.MaxLogicalDepth > 0 && result.LogicalDepth > limits.MaxLogicalDepth {
		return errors.Wrapf(ErrComplexity, "logical nesting depth %d exceeds limit %d", result.LogicalDepth, limits.MaxLogicalDepth)
	}
	if limits.MaxOrBranches > 0 && result.OrBranches > limits.MaxOrBranches {
		return errors.Wrapf(ErrComplexity, "Or branches %d exceeds limit %d", result.OrBranches, limits.MaxOrBranches)
	}

	return nil
}

// CalculateComplexity analyzes an expression and returns its complexity metrics.
func CalculateComplexity(e Expression) *ComplexityResult {
	result := &ComplexityResult{}
	if e != nil {
		calculateComplexityRecursive(e, 1, 0, false, result)
	}
	return result
}

func calculateComplexityRecursive(e Expression, depth int, logicalDepth int, inOr bool, result *ComplexityResult) {
	result.Nodes++
	if depth > result.Depth {
		result.Depth = depth
	}

	switch e.(type) {
	case And, Or, Xor, Not:
		result.LogicalOperators++
		logicalDepth++
		if logicalDepth > result.LogicalDepth {
			result.LogicalDepth = logicalDepth
		}
	}

	if or, ok := e.(Or); ok && !inOr {
		// Or chains built by AnyOf nest; count the whole chain as one operator.
		if branches := orBranches(or); branches > result.OrBranches {
			result.OrBranches = branches
		}
	}

	_, isOr := e.(Or)
	for _, child := range Children(e) {
		calculateComplexityRecursive(child, depth+1, logicalDepth, isOr, result)
	}
}

func orBranches(e Bool) int {
	or, ok := e.(Or)
	if !ok {
		return 1
	}
	return orBranches(or.Left) + orBranches(or.Right)
}
