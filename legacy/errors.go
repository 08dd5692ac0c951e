package legacy

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidOperator is returned when an operator does not apply to a condition type.
	ErrInvalidOperator = errors.New("invalid operator for condition")
	// ErrInvalidParameter is returned when a parameter cannot be parsed.
	ErrInvalidParameter = errors.New("invalid condition parameter")
	// ErrUnsupportedCondition is returned for condition types without an expression equivalent.
	ErrUnsupportedCondition = errors.New("unsupported condition")
	// ErrDeprecated is returned for removed condition types. It is never suppressed.
	ErrDeprecated = errors.New("deprecated condition")
)

// ConversionError reports which condition failed to convert.
type ConversionError struct {
	Index     int
	Condition Condition
	Err       error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("condition %d (%s): %v", e.Index, e.Condition, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
