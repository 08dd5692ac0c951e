// Package sorting orders filtered entities by a chain of selector keys.
package sorting

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/theplant/animefilter/expression"
)

// Key is one link of a sort chain.
type Key struct {
	Selector   expression.Expression
	Descending bool
}

// Criteria is an ordered sort chain: the first key is the primary order and
// each following key breaks ties of the keys before it.
type Criteria []Key

// Default is the order applied when a preset has no sort chain.
var Default = Criteria{{Selector: expression.SortingName{}}}

// Asc returns an ascending key.
func Asc(selector expression.Expression) Key {
	return Key{Selector: selector}
}

// Desc returns a descending key.
func Desc(selector expression.Expression) Key {
	return Key{Selector: selector, Descending: true}
}

// Then returns a copy of c with keys appended.
func (c Criteria) Then(keys ...Key) Criteria {
	return append(slices.Clone(c), keys...)
}

// Validate reports keys whose selector is missing or cannot be evaluated.
func (c Criteria) Validate() error {
	for i, key := range c {
		if key.Selector == nil {
			return errors.Errorf("sort key %d has no selector", i)
		}
		if err := expression.Validate(key.Selector); err != nil {
			return errors.Wrapf(err, "sort key %d", i)
		}
	}
	return nil
}

// IsUserDependent reports whether any key reads user facts.
func (c Criteria) IsUserDependent() bool {
	return lo.SomeBy(c, func(key Key) bool { return expression.IsUserDependent(key.Selector) })
}

// IsTimeDependent reports whether any key reads the clock.
func (c Criteria) IsTimeDependent() bool {
	return lo.SomeBy(c, func(key Key) bool { return expression.IsTimeDependent(key.Selector) })
}

// Equal reports whether both chains have structurally equal keys in the same order.
func Equal(a, b Criteria) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Descending != b[i].Descending || !expression.Equal(a[i].Selector, b[i].Selector) {
			return false
		}
	}
	return true
}

// Order returns items stably sorted by criteria, or by Default when criteria
// is empty. Each selector is evaluated once per item against envOf(item).
func Order[T any](criteria Criteria, items []T, envOf func(item T) *expression.Env) ([]T, error) {
	if len(criteria) == 0 {
		criteria = Default
	}
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	type row struct {
		item T
		keys []any
	}
	rows := make([]row, len(items))
	for i, item := range items {
		env := envOf(item)
		keys := make([]any, len(criteria))
		for k, key := range criteria {
			if err := expression.CheckEnv(key.Selector, env); err != nil {
				return nil, errors.Wrapf(err, "sort key %d", k)
			}
			v, err := expression.Eval(key.Selector, env)
			if err != nil {
				return nil, errors.Wrapf(err, "sort key %d", k)
			}
			keys[k] = v
		}
		rows[i] = row{item: item, keys: keys}
	}

	slices.SortStableFunc(rows, func(a, b row) int {
		for k, key := range criteria {
			c := compareValues(a.keys[k], b.keys[k])
			if key.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})

	return lo.Map(rows, func(r row, _ int) T { return r.item }), nil
}

// compareValues orders evaluated selector values. Unknown dates sort before known ones.
func compareValues(a, b any) int {
	switch a := a.(type) {
	case float64:
		return cmp.Compare(a, b.(float64))
	case string:
		return strings.Compare(strings.ToLower(a), strings.ToLower(b.(string)))
	case bool:
		bb := b.(bool)
		switch {
		case a == bb:
			return 0
		case !a:
			return -1
		}
		return 1
	case *time.Time:
		bt := b.(*time.Time)
		switch {
		case a == nil && bt == nil:
			return 0
		case a == nil:
			return -1
		case bt == nil:
			return 1
		}
		return a.Compare(*bt)
	}
	return 0
}
