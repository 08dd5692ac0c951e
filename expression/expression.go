// Package expression implements the filter language: a closed set of typed
// nodes, their static catalog, evaluation against fact bags, structural
// equality and the persisted tagged-union form.
package expression

import (
	"time"

	"github.com/pkg/errors"

	"github.com/theplant/animefilter/filterable"
)

var (
	// ErrUserInfoRequired is returned when a user dependent node is evaluated without user facts.
	ErrUserInfoRequired = errors.New("expression requires user info")
	// ErrNowRequired is returned when a time dependent node is evaluated without a clock.
	ErrNowRequired = errors.New("expression requires the current time")
	// ErrUnknownKind is returned when a document names a node kind that does not exist.
	ErrUnknownKind = errors.New("unknown expression kind")
	// ErrComplexity is returned when an expression exceeds complexity limits.
	ErrComplexity = errors.New("expression too complex")
)

// Kind is the stable discriminant of a node.
type Kind string

// Group is the taxonomy group of a node.
type Group string

const (
	GroupInfo     Group = "Info"
	GroupLogic    Group = "Logic"
	GroupFunction Group = "Function"
	GroupSelector Group = "Selector"
)

// ResultType is the evaluation type of a node.
type ResultType string

const (
	ResultBool   ResultType = "Bool"
	ResultNumber ResultType = "Number"
	ResultDate   ResultType = "Date"
	ResultString ResultType = "String"
)

// Expression is implemented by every node of the catalog.
// The set is closed: the marker methods are unexported.
type Expression interface {
	Kind() Kind
	expressionMarker()
}

// Bool is a node evaluating to a boolean.
type Bool interface {
	Expression
	boolMarker()
}

// Number is a node evaluating to a number.
type Number interface {
	Expression
	numberMarker()
}

// Date is a node evaluating to a nullable date.
type Date interface {
	Expression
	dateMarker()
}

// String is a node evaluating to a string.
type String interface {
	Expression
	stringMarker()
}

type boolNode struct{}

func (boolNode) expressionMarker() {}
func (boolNode) boolMarker()       {}

type numberNode struct{}

func (numberNode) expressionMarker() {}
func (numberNode) numberMarker()     {}

type dateNode struct{}

func (dateNode) expressionMarker() {}
func (dateNode) dateMarker()       {}

type stringNode struct{}

func (stringNode) expressionMarker() {}
func (stringNode) stringMarker()     {}

// Env carries everything an evaluation may read.
type Env struct {
	Filterable *filterable.Filterable
	// UserInfo is required by user dependent nodes only.
	UserInfo *filterable.UserInfo
	// Now is required by time dependent nodes only.
	Now time.Time
}

func (env *Env) userInfo() (*filterable.UserInfo, error) {
	if env.UserInfo == nil {
		return nil, ErrUserInfoRequired
	}
	return env.UserInfo, nil
}

func (env *Env) now() (time.Time, error) {
	if env.Now.IsZero() {
		return time.Time{}, ErrNowRequired
	}
	return env.Now, nil
}
